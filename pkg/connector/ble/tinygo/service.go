package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

type service struct {
	client  *bluetooth.Device
	service bluetooth.DeviceService
}

func (s *service) Notify(uuid string, callback func(buf []byte)) error {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return err
	}
	if err := characteristic.EnableNotifications(callback); err != nil {
		return fmt.Errorf("ble: failed to subscribe to notifications: %s", err)
	}
	return nil
}

func (s *service) StopNotify(uuid string) error {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return err
	}
	return characteristic.EnableNotifications(nil)
}

func (s *service) Characteristic(uuid string) (ble.Characteristic, error) {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return nil, err
	}
	return &gattChar{characteristic: characteristic}, nil
}

func (s *service) discover(uuid string) (bluetooth.DeviceCharacteristic, error) {
	characteristics, err := s.service.DiscoverCharacteristics([]bluetooth.UUID{mustParseUUID(uuid)})
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("ble: failed to discover service characteristics: %s", err)
	}
	if len(characteristics) == 0 {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("ble: characteristic %s not found", uuid)
	}
	return characteristics[0], nil
}

type gattChar struct {
	characteristic bluetooth.DeviceCharacteristic
}

var _ ble.Characteristic = (*gattChar)(nil)

// Write requests acknowledged delivery where the platform allows it. The BlueZ central role only
// exposes unacknowledged writes; see the per-OS deviceCharacteristicWrite alias.
func (c *gattChar) Write(p []byte) (int, error) {
	return deviceCharacteristicWrite(c.characteristic, p)
}

func (c *gattChar) Read() ([]byte, error) {
	buffer := make([]byte, 32)
	n, err := c.characteristic.Read(buffer)
	if err != nil {
		return nil, err
	}
	return buffer[:n], nil
}
