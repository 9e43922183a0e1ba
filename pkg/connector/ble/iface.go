package ble

import "context"

// Beacon describes an advertising amplifier.
type Beacon struct {
	Address     string
	LocalName   string
	RSSI        int16
	Connectable bool
}

// Adapter abstracts a BLE backend. Implementations live in the goble and tinygo subpackages; the
// cli package selects the platform default.
type Adapter interface {
	// ScanBeacon scans until it finds the device with the given address, the context ends, or an
	// adapter error occurs.
	ScanBeacon(ctx context.Context, address string) (*Beacon, error)
	// ScanAmplifiers reports every device advertising the amplifier service until the context
	// ends. Repeated advertisements from one device may be reported more than once.
	ScanAmplifiers(ctx context.Context, found func(*Beacon)) error
	// Connect dials a previously discovered beacon.
	Connect(ctx context.Context, beacon *Beacon) (Device, error)
	Close() error
}

// Device is a connected peripheral.
type Device interface {
	Service(ctx context.Context, uuid string) (Service, error)
	Close() error
}

// Service exposes the characteristics of one GATT service.
type Service interface {
	// Notify subscribes callback to notifications from the given characteristic.
	Notify(uuid string, callback func(buf []byte)) error
	// StopNotify cancels a Notify subscription.
	StopNotify(uuid string) error
	// Characteristic returns a handle for reads and writes.
	Characteristic(uuid string) (Characteristic, error)
}

// Characteristic is a read/write GATT characteristic handle.
type Characteristic interface {
	// Write writes p and returns the number of bytes written. Backends request delivery
	// acknowledgment where the platform exposes it; the tinygo backend on Linux (BlueZ central
	// role) can only perform unacknowledged writes.
	Write(p []byte) (int, error)
	// Read reads the characteristic's current value.
	Read() ([]byte, error)
}
