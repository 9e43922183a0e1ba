// Package tinygo implements the ble.Adapter interface on top of tinygo.org/x/bluetooth. It works
// on Linux (BlueZ over D-Bus), macOS, and Windows.
package tinygo

import (
	"context"
	"strings"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

func mustParseUUID(uuid string) bluetooth.UUID {
	parsed, err := bluetooth.ParseUUID(uuid)
	if err != nil {
		panic(err)
	}
	return parsed
}

var serviceUUID = mustParseUUID(protocol.ServiceUUID)

func NewAdapter(id string) (ble.Adapter, error) {
	device, err := newAdapter(id)
	if err != nil {
		return nil, err
	}
	if err = device.Enable(); err != nil {
		return nil, err
	}
	return &adapter{device: device}, nil
}

type adapter struct {
	device *bluetooth.Adapter
}

func (a *adapter) stopScan() {
	if err := a.device.StopScan(); err != nil {
		if strings.Contains(err.Error(), "no scan in progress") {
			return
		}
		log.Warning("ble: failed to stop scan: %+v", err)
	}
}

func (a *adapter) ScanBeacon(ctx context.Context, address string) (*ble.Beacon, error) {
	var result *ble.Beacon
	err := a.scan(ctx, func(sr bluetooth.ScanResult, stop func()) {
		if !strings.EqualFold(sr.Address.String(), address) {
			return
		}
		result = scanResultToBeacon(sr)
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
	return a.scan(ctx, func(sr bluetooth.ScanResult, _ func()) {
		if !sr.HasServiceUUID(serviceUUID) {
			return
		}
		found(scanResultToBeacon(sr))
	})
}

// scan runs a blocking bluetooth.Adapter scan, stopping it when ctx ends or the handler asks to.
// The library has no context support of its own, so cancellation is bridged through StopScan.
func (a *adapter) scan(ctx context.Context, handler func(sr bluetooth.ScanResult, stop func())) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-scanCtx.Done()
		a.stopScan()
	}()

	return a.device.Scan(func(_ *bluetooth.Adapter, sr bluetooth.ScanResult) {
		handler(sr, cancel)
	})
}

func (a *adapter) Connect(ctx context.Context, beacon *ble.Beacon) (ble.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := bluetooth.ConnectionParams{}
	if deadline, ok := ctx.Deadline(); ok {
		params.ConnectionTimeout = bluetooth.NewDuration(time.Until(deadline))
	}

	addr, err := parseAddress(beacon.Address)
	if err != nil {
		return nil, err
	}

	client, err := a.device.Connect(addr, params)
	if err != nil {
		return nil, err
	}
	return &device{client: &client}, nil
}

func (a *adapter) Close() error {
	a.device = nil
	return nil
}

func scanResultToBeacon(sr bluetooth.ScanResult) *ble.Beacon {
	return &ble.Beacon{
		Address:     sr.Address.String(),
		LocalName:   sr.LocalName(),
		RSSI:        sr.RSSI,
		Connectable: true,
	}
}
