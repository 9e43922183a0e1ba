package cli

import (
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble/goble"
)

// newAdapter opens the Bluetooth adapter identified by id (e.g., "hci0"), or the default adapter
// when id is empty. Linux uses the go-ble HCI socket backend.
func newAdapter(id string) (ble.Adapter, error) {
	return goble.NewAdapter(id)
}
