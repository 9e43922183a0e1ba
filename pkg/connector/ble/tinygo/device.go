package tinygo

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

type device struct {
	client *bluetooth.Device
}

func (d *device) Service(_ context.Context, uuid string) (ble.Service, error) {
	services, err := d.client.DiscoverServices([]bluetooth.UUID{mustParseUUID(uuid)})
	if err != nil {
		return nil, fmt.Errorf("ble: failed to enumerate device services: %s", err)
	}
	if len(services) != 1 {
		return nil, fmt.Errorf("ble: failed to discover service")
	}
	return &service{client: d.client, service: services[0]}, nil
}

func (d *device) Close() error {
	client := d.client
	d.client = nil
	return client.Disconnect()
}
