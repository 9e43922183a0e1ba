// Package goble implements the ble.Adapter interface on top of github.com/go-ble/ble. This is the
// preferred backend on Linux, where it talks to the HCI socket directly.
package goble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goble "github.com/go-ble/ble"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

var serviceUUID = goble.MustParse(protocol.ServiceUUID)

func NewAdapter(id string) (ble.Adapter, error) {
	device, err := newDevice(id)
	if err != nil {
		return nil, fmt.Errorf("ble: failed to create device: %s", err)
	}
	return &adapter{device: device}, nil
}

type adapter struct {
	device goble.Device
}

func (a *adapter) ScanBeacon(ctx context.Context, address string) (*ble.Beacon, error) {
	var result *ble.Beacon
	err := a.scan(ctx, func(adv goble.Advertisement, stop func()) {
		if !strings.EqualFold(adv.Addr().String(), address) {
			return
		}
		result = advertisementToBeacon(adv)
		stop()
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ctx.Err()
	}
	return result, nil
}

func (a *adapter) ScanAmplifiers(ctx context.Context, found func(*ble.Beacon)) error {
	return a.scan(ctx, func(adv goble.Advertisement, _ func()) {
		if !advertisesService(adv, serviceUUID) {
			return
		}
		found(advertisementToBeacon(adv))
	})
}

func (a *adapter) scan(ctx context.Context, handler func(adv goble.Advertisement, stop func())) error {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	err := a.device.Scan(scanCtx, false, func(adv goble.Advertisement) {
		handler(adv, cancel)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (a *adapter) Connect(ctx context.Context, beacon *ble.Beacon) (ble.Device, error) {
	client, err := a.device.Dial(ctx, goble.NewAddr(beacon.Address))
	if err != nil {
		return nil, err
	}
	log.Debug("Dialed %s", beacon.Address)
	return &device{client: client}, nil
}

func (a *adapter) Close() error {
	if a.device == nil {
		return nil
	}
	device := a.device
	a.device = nil
	return device.Stop()
}

func advertisementToBeacon(adv goble.Advertisement) *ble.Beacon {
	return &ble.Beacon{
		Address:     adv.Addr().String(),
		LocalName:   adv.LocalName(),
		RSSI:        int16(adv.RSSI()),
		Connectable: adv.Connectable(),
	}
}

func advertisesService(adv goble.Advertisement, uuid goble.UUID) bool {
	for _, service := range adv.Services() {
		if service.Equal(uuid) {
			return true
		}
	}
	return false
}
