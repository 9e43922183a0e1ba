package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/sinilink-community/amplifier-command/internal/log"
)

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		log.Warning("Darwin does not support specifying a Bluetooth adapter ID")
	}
	return bluetooth.DefaultAdapter, nil
}

var (
	deviceCharacteristicWrite = bluetooth.DeviceCharacteristic.Write
)

// Darwin identifies peripherals by UUID rather than MAC address.
func parseAddress(address string) (bluetooth.Address, error) {
	uuid, err := bluetooth.ParseUUID(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("ble: failed to parse device UUID: %s", err)
	}
	return bluetooth.Address{UUID: uuid}, nil
}
