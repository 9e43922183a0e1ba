package amplifier

import "github.com/sinilink-community/amplifier-command/pkg/protocol"

// InputSource identifies one of the amplifier's selectable inputs.
type InputSource int

const (
	// SourceUnknown covers device codes this client has no name for. The raw code is preserved in
	// the Snapshot so it is not silently dropped.
	SourceUnknown InputSource = iota
	SourceAux
	SourceBluetooth
	SourceSoundcard
	SourceUSB
)

var sourceNames = map[InputSource]string{
	SourceAux:       "aux",
	SourceBluetooth: "bt",
	SourceSoundcard: "sndcard",
	SourceUSB:       "usb",
}

var sourceCodes = map[InputSource]uint8{
	SourceAux:       0x16,
	SourceBluetooth: 0x14,
	SourceSoundcard: 0x15,
	SourceUSB:       0x04,
}

var codeSources = map[uint8]InputSource{}

func init() {
	for source, code := range sourceCodes {
		codeSources[code] = source
	}
}

func (s InputSource) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return "unknown"
}

// Code returns the device code for s. ok is false for SourceUnknown.
func (s InputSource) Code() (code uint8, ok bool) {
	code, ok = sourceCodes[s]
	return
}

// SourceFromCode maps a device code to an InputSource. Codes outside the known set map to
// SourceUnknown.
func SourceFromCode(code uint8) InputSource {
	if source, ok := codeSources[code]; ok {
		return source
	}
	return SourceUnknown
}

// SourceFromName maps a user-facing name (as returned by String) to an InputSource.
func SourceFromName(name string) (InputSource, bool) {
	for source, n := range sourceNames {
		if n == name {
			return source, true
		}
	}
	return SourceUnknown, false
}

// Sources lists the selectable inputs in a stable order.
func Sources() []InputSource {
	return []InputSource{SourceAux, SourceBluetooth, SourceSoundcard, SourceUSB}
}

// Snapshot is the most recently known amplifier state, authoritative only as of the last processed
// status notification. The zero value is the empty snapshot of a fresh or disconnected session.
type Snapshot struct {
	Volume      uint8 // native units, [protocol.VolumeMin, protocol.VolumeMax]
	VolumeKnown bool
	InputCode   uint8
	InputKnown  bool

	// Available is true only while the link is up and at least one field is known.
	Available bool
}

// Input maps the snapshot's raw input code. Returns SourceUnknown when the input has not been
// reported yet; check InputKnown to distinguish the two cases.
func (s Snapshot) Input() InputSource {
	if !s.InputKnown {
		return SourceUnknown
	}
	return SourceFromCode(s.InputCode)
}

// VolumeFraction is the presentation-layer view of the volume as a fraction of the device's
// native maximum. The native level remains the source of truth.
func (s Snapshot) VolumeFraction() (float64, bool) {
	if !s.VolumeKnown {
		return 0, false
	}
	return float64(s.Volume) / float64(protocol.VolumeMax), true
}
