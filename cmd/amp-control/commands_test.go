package main

import (
	"errors"
	"testing"

	"github.com/sinilink-community/amplifier-command/pkg/amplifier"
)

func TestGetVolume(t *testing.T) {
	type params struct {
		str   string
		level uint8
		err   error
	}
	testCases := []params{
		{str: "1", level: 1},
		{str: "31", level: 31},
		{str: "20", level: 20},
		{str: "0", err: ErrInvalidVolume},
		{str: "32", err: ErrInvalidVolume},
		{str: "-3", err: ErrInvalidVolume},
		{str: "loud", err: ErrInvalidVolume},
		{str: "", err: ErrInvalidVolume},
		{str: "100%", level: 31},
		{str: "50%", level: 16},
		{str: "0%", level: 1},
		{str: "101%", err: ErrInvalidVolume},
		{str: "-1%", err: ErrInvalidVolume},
		{str: "ten%", err: ErrInvalidVolume},
	}
	for _, test := range testCases {
		level, err := GetVolume(test.str)
		if !errors.Is(err, test.err) {
			t.Errorf("expected '%s' to result in error %s, but got %s", test.str, test.err, err)
		} else if test.level != level {
			t.Errorf("expected GetVolume('%s') = %d, but got %d", test.str, test.level, level)
		}
	}
}

func TestGetSource(t *testing.T) {
	type params struct {
		str    string
		source amplifier.InputSource
		code   uint8
		isErr  bool
	}
	testCases := []params{
		{str: "aux", source: amplifier.SourceAux, code: 0x16},
		{str: "bt", source: amplifier.SourceBluetooth, code: 0x14},
		{str: "sndcard", source: amplifier.SourceSoundcard, code: 0x15},
		{str: "usb", source: amplifier.SourceUSB, code: 0x04},
		{str: "0x14", source: amplifier.SourceBluetooth, code: 0x14},
		{str: "22", source: amplifier.SourceAux, code: 0x16},
		{str: "0xff", source: amplifier.SourceUnknown, code: 0xff},
		{str: "vinyl", isErr: true},
		{str: "0x1234", isErr: true},
		{str: "", isErr: true},
	}
	for _, test := range testCases {
		source, code, err := GetSource(test.str)
		if (err != nil) != test.isErr {
			t.Errorf("source string '%s' gave unexpected err = %s", test.str, err)
			continue
		}
		if test.isErr {
			continue
		}
		if source != test.source || code != test.code {
			t.Errorf("source string '%s' gave (%s, 0x%02x) instead of (%s, 0x%02x)", test.str, source, code, test.source, test.code)
		}
	}
}

func TestFormatSnapshot(t *testing.T) {
	type params struct {
		snapshot amplifier.Snapshot
		want     string
	}
	testCases := []params{
		{
			snapshot: amplifier.Snapshot{Volume: 20, VolumeKnown: true, InputCode: 0x15, InputKnown: true, Available: true},
			want:     "volume 20/31 source sndcard (online)",
		},
		{
			snapshot: amplifier.Snapshot{InputCode: 0x14, InputKnown: true},
			want:     "volume ?/31 source bt (offline)",
		},
		{
			snapshot: amplifier.Snapshot{},
			want:     "volume ?/31 source ? (offline)",
		},
	}
	for _, test := range testCases {
		if got := formatSnapshot(test.snapshot); got != test.want {
			t.Errorf("formatSnapshot(%+v) = %q, want %q", test.snapshot, got, test.want)
		}
	}
}
