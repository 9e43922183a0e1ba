package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return bluetooth.NewAdapter(id), nil
	}
	return bluetooth.DefaultAdapter, nil
}

// BlueZ's central role offers no acknowledged write.
var (
	deviceCharacteristicWrite = bluetooth.DeviceCharacteristic.WriteWithoutResponse
)

func parseAddress(address string) (bluetooth.Address, error) {
	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("ble: failed to parse MAC address: %s", err)
	}
	return bluetooth.Address{
		MACAddress: bluetooth.MACAddress{MAC: mac},
	}, nil
}
