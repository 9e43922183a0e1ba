package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/sinilink-community/amplifier-command/internal/log"
)

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		log.Warning("Windows does not support specifying a Bluetooth adapter ID")
	}
	return bluetooth.DefaultAdapter, nil
}

var (
	deviceCharacteristicWrite = bluetooth.DeviceCharacteristic.Write
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
