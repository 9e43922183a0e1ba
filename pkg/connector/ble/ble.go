// Package ble connects to Sinilink amplifiers over BLE GATT. It provides the transport handle
// consumed by package amplifier and a discovery helper that finds amplifiers by their service
// UUID. The actual radio access is delegated to an Adapter backend.
package ble

import (
	"context"
	"fmt"
	"sync"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/amplifier"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

// Connection is a live GATT connection to one amplifier. It implements amplifier.Device.
type Connection struct {
	address string
	device  Device
	service Service
	command Characteristic

	lock       sync.Mutex
	subscribed bool
}

// NewConnection scans for the amplifier with the given address and connects to it.
func NewConnection(ctx context.Context, address string, adapter Adapter) (*Connection, error) {
	beacon, err := adapter.ScanBeacon(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", protocol.ErrDeviceNotFound, err)
	}
	if beacon == nil {
		return nil, protocol.ErrDeviceNotFound
	}
	return NewConnectionFromBeacon(ctx, beacon, adapter)
}

// NewConnectionFromBeacon connects to a previously discovered beacon.
func NewConnectionFromBeacon(ctx context.Context, beacon *Beacon, adapter Adapter) (*Connection, error) {
	if !beacon.Connectable {
		return nil, fmt.Errorf("ble: beacon %s is not connectable", beacon.Address)
	}

	device, err := adapter.Connect(ctx, beacon)
	if err != nil {
		return nil, fmt.Errorf("ble: failed to connect to %s: %w", beacon.Address, err)
	}

	service, err := device.Service(ctx, protocol.ServiceUUID)
	if err != nil {
		closeQuietly(device)
		return nil, fmt.Errorf("ble: failed to discover amplifier service: %w", err)
	}

	command, err := service.Characteristic(protocol.CommandUUID)
	if err != nil {
		closeQuietly(device)
		return nil, fmt.Errorf("ble: failed to discover command characteristic: %w", err)
	}

	return &Connection{
		address: beacon.Address,
		device:  device,
		service: service,
		command: command,
	}, nil
}

func closeQuietly(device Device) {
	if err := device.Close(); err != nil {
		log.Warning("ble: failed to close device: %s", err)
	}
}

// Address returns the peripheral address this connection is bound to.
func (c *Connection) Address() string {
	return c.address
}

// WriteCommand writes a command frame to the command characteristic with acknowledgment
// requested.
func (c *Connection) WriteCommand(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	log.Debug("TX: %02x", frame)
	n, err := c.command.Write(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return fmt.Errorf("ble: wrote %d of %d bytes", n, len(frame))
	}
	return nil
}

// ReadCommand reads the command characteristic. The amplifier responds to the read by emitting a
// status notification; the read payload itself carries nothing useful and is discarded.
func (c *Connection) ReadCommand(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, err := c.command.Read(); err != nil {
		return err
	}
	return nil
}

// Subscribe registers handler for frames on the status characteristic.
func (c *Connection) Subscribe(handler func(p []byte)) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.service.Notify(protocol.StatusUUID, handler); err != nil {
		return err
	}
	c.subscribed = true
	return nil
}

// Close unsubscribes from status notifications and releases the connection.
func (c *Connection) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.device == nil {
		return nil
	}
	if c.subscribed {
		if err := c.service.StopNotify(protocol.StatusUUID); err != nil {
			log.Warning("ble: failed to stop notifications: %s", err)
		}
		c.subscribed = false
	}
	device := c.device
	c.device = nil
	return device.Close()
}

// Connector resolves amplifier addresses into live connections. It implements
// amplifier.Connector.
type Connector struct {
	adapter Adapter
}

func NewConnector(adapter Adapter) *Connector {
	return &Connector{adapter: adapter}
}

func (c *Connector) Connect(ctx context.Context, address string) (amplifier.Device, error) {
	return NewConnection(ctx, address, c.adapter)
}

// ScanAmplifiers collects amplifiers advertising the service UUID until ctx ends or limit devices
// have been found (limit <= 0 means no limit). Duplicate advertisements are folded by address.
func ScanAmplifiers(ctx context.Context, adapter Adapter, limit int) ([]*Beacon, error) {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lock sync.Mutex
	seen := make(map[string]*Beacon)
	var beacons []*Beacon

	err := adapter.ScanAmplifiers(scanCtx, func(beacon *Beacon) {
		lock.Lock()
		defer lock.Unlock()
		if _, ok := seen[beacon.Address]; ok {
			return
		}
		seen[beacon.Address] = beacon
		beacons = append(beacons, beacon)
		log.Debug("Found amplifier %s (%s) RSSI %d", beacon.Address, beacon.LocalName, beacon.RSSI)
		if limit > 0 && len(beacons) >= limit {
			cancel()
		}
	})
	if err != nil && scanCtx.Err() == nil {
		return nil, err
	}

	lock.Lock()
	defer lock.Unlock()
	return beacons, nil
}
