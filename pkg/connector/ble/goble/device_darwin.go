package goble

import (
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/darwin"

	"github.com/sinilink-community/amplifier-command/internal/log"
)

func newDevice(id string) (ble.Device, error) {
	if id != "" {
		log.Warning("Darwin does not support specifying a Bluetooth adapter ID")
	}
	return darwin.NewDevice()
}
