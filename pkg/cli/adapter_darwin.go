package cli

import (
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble/tinygo"
)

// newAdapter opens the default Bluetooth adapter. macOS goes through CoreBluetooth, which does not
// expose adapter selection, so id is ignored.
func newAdapter(id string) (ble.Adapter, error) {
	return tinygo.NewAdapter(id)
}
