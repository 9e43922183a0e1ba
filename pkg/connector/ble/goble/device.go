package goble

import (
	"context"
	"errors"
	"fmt"

	goble "github.com/go-ble/ble"

	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

type device struct {
	client goble.Client
}

func (d *device) Service(_ context.Context, uuid string) (ble.Service, error) {
	services, err := d.client.DiscoverServices([]goble.UUID{goble.MustParse(uuid)})
	if err != nil {
		return nil, fmt.Errorf("ble: failed to enumerate device services: %s", err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("ble: failed to discover service")
	}
	return &service{client: d.client, service: services[0]}, nil
}

func (d *device) Close() error {
	client := d.client
	d.client = nil

	err1 := client.ClearSubscriptions()
	err2 := client.CancelConnection()
	return errors.Join(err1, err2)
}
