package goble

import (
	"errors"

	"github.com/go-ble/ble"
)

func newDevice(_ string) (ble.Device, error) {
	return nil, errors.New("the go-ble backend is not supported on Windows; use the tinygo backend")
}
