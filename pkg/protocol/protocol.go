// Package protocol implements the Sinilink amplifier BLE wire format.
//
// The amplifier exposes a single GATT service with a write characteristic (commands) and a notify
// characteristic (status). Outbound commands are fixed-length frames terminated by an additive
// checksum. Inbound status frames are positional and carry no checksum.
package protocol

const (
	// ServiceUUID identifies the amplifier's GATT service in advertisements.
	ServiceUUID = "0000ae00-0000-1000-8000-00805f9b34fb"
	// CommandUUID accepts command writes. Reading this characteristic provokes the device into
	// emitting a status notification; the literal read payload is not meaningful.
	CommandUUID = "0000ae10-0000-1000-8000-00805f9b34fb"
	// StatusUUID is the notify characteristic carrying status frames.
	StatusUUID = "0000ae04-0000-1000-8000-00805f9b34fb"
)

// Native volume range of the device.
const (
	VolumeMin = 1
	VolumeMax = 31
)

const (
	frameHeader     = 0x7e
	volumeSetKind   = 0x0f
	volumeSetOp     = 0x1d
	inputSelectKind = 0x05

	volumeSetLength   = 15
	inputSelectLength = 5
)

// Status frames are interpreted positionally. These offsets are inferred from observed traffic;
// there is no vendor protocol document confirming them. Keep the assumption isolated here.
const (
	statusInputIndex  = 4
	statusVolumeIndex = 5
)

// Checksum returns the additive mod-256 checksum of p, as appended to every outbound frame.
func Checksum(p []byte) byte {
	var sum byte
	for _, b := range p {
		sum += b
	}
	return sum
}

// EncodeVolumeSet builds the 15-byte Volume-Set frame for a native volume level in
// [VolumeMin, VolumeMax]. Returns ErrInvalidVolume for out-of-range levels.
func EncodeVolumeSet(volume uint8) ([]byte, error) {
	if volume < VolumeMin || volume > VolumeMax {
		return nil, ErrInvalidVolume
	}
	frame := make([]byte, 0, volumeSetLength)
	frame = append(frame, frameHeader, volumeSetKind, volumeSetOp, volume)
	frame = frame[:volumeSetLength-1] // zero padding
	return append(frame, Checksum(frame)), nil
}

// EncodeInputSelect builds the 5-byte Input-Select frame. Input codes are device-defined and
// passed through unvalidated.
func EncodeInputSelect(code uint8) []byte {
	frame := []byte{frameHeader, inputSelectKind, code, 0x00}
	return append(frame, Checksum(frame))
}

// StatusUpdate holds the fields recovered from a status frame. A frame shorter than the expected
// offsets simply leaves the corresponding field unset; absence is the signal, not an error.
type StatusUpdate struct {
	Volume    uint8
	VolumeSet bool
	Input     uint8
	InputSet  bool
}

// DecodeNotification interprets an inbound status frame. Never fails: short frames yield an
// empty update.
func DecodeNotification(p []byte) StatusUpdate {
	var update StatusUpdate
	if len(p) > statusInputIndex {
		update.Input = p[statusInputIndex]
		update.InputSet = true
	}
	if len(p) > statusVolumeIndex {
		update.Volume = p[statusVolumeIndex]
		update.VolumeSet = true
	}
	return update
}
