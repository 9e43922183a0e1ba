package goble

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/go-ble/ble/linux/hci/cmd"
)

const bleTimeout = 20 * time.Second

// The amplifier advertises roughly every 200ms; an aggressive scan window keeps discovery fast.
var scanParams = cmd.LESetScanParameters{
	LEScanType:           1,    // Active scanning
	LEScanInterval:       0x10, // 10ms
	LEScanWindow:         0x10, // 10ms
	OwnAddressType:       0,    // Static
	ScanningFilterPolicy: 2,    // Basic filtered
}

func newDevice(id string) (ble.Device, error) {
	options := []ble.Option{
		ble.OptListenerTimeout(bleTimeout),
		ble.OptDialerTimeout(bleTimeout),
		ble.OptScanParams(scanParams),
	}
	if id != "" {
		hci, err := hciDeviceID(id)
		if err != nil {
			return nil, err
		}
		options = append(options, ble.OptDeviceID(hci))
	}
	return linux.NewDevice(options...)
}

func hciDeviceID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "hci"))
	if err != nil {
		return 0, fmt.Errorf("ble: invalid adapter ID %q (expected e.g. \"hci0\")", id)
	}
	return n, nil
}
