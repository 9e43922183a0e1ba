package goble

import (
	"fmt"

	goble "github.com/go-ble/ble"

	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

type service struct {
	client  goble.Client
	service *goble.Service
}

func (s *service) Notify(uuid string, callback func(buf []byte)) error {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return err
	}
	if err := s.client.Subscribe(characteristic, false, callback); err != nil {
		return fmt.Errorf("ble: failed to subscribe to notifications: %s", err)
	}
	return nil
}

func (s *service) StopNotify(uuid string) error {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return err
	}
	return s.client.Unsubscribe(characteristic, false)
}

func (s *service) Characteristic(uuid string) (ble.Characteristic, error) {
	characteristic, err := s.discover(uuid)
	if err != nil {
		return nil, err
	}
	return &gattChar{client: s.client, characteristic: characteristic}, nil
}

func (s *service) discover(uuidStr string) (*goble.Characteristic, error) {
	uuid := goble.MustParse(uuidStr)
	characteristics, err := s.client.DiscoverCharacteristics([]goble.UUID{uuid}, s.service)
	if err != nil {
		return nil, fmt.Errorf("ble: failed to discover service characteristics: %s", err)
	}

	var characteristic *goble.Characteristic
	for _, char := range characteristics {
		if char.UUID.Equal(uuid) {
			characteristic = char
			break
		}
	}
	if characteristic == nil {
		return nil, fmt.Errorf("ble: characteristic %s not found", uuidStr)
	}

	if _, err := s.client.DiscoverDescriptors(nil, characteristic); err != nil {
		return nil, fmt.Errorf("ble: couldn't fetch descriptors: %s", err)
	}
	return characteristic, nil
}

type gattChar struct {
	client         goble.Client
	characteristic *goble.Characteristic
}

var _ ble.Characteristic = (*gattChar)(nil)

// Write requests acknowledged delivery; the amplifier expects response-mode writes.
func (c *gattChar) Write(p []byte) (int, error) {
	if err := c.client.WriteCharacteristic(c.characteristic, p, false); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *gattChar) Read() ([]byte, error) {
	return c.client.ReadCharacteristic(c.characteristic)
}
