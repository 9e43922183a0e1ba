package amplifier

import "testing"

func TestSourceCodeRoundTrip(t *testing.T) {
	for _, source := range Sources() {
		code, ok := source.Code()
		if !ok {
			t.Fatalf("selectable source %s has no device code", source)
		}
		if got := SourceFromCode(code); got != source {
			t.Errorf("SourceFromCode(%#02x) = %s, want %s", code, got, source)
		}
		if got, ok := SourceFromName(source.String()); !ok || got != source {
			t.Errorf("SourceFromName(%q) = %s, %v", source.String(), got, ok)
		}
	}
}

func TestUnknownCodesStable(t *testing.T) {
	for _, code := range []uint8{0x00, 0xff, 0x17} {
		first := SourceFromCode(code)
		second := SourceFromCode(code)
		if first != SourceUnknown || second != SourceUnknown {
			t.Errorf("code %#02x: expected stable SourceUnknown, got %s then %s", code, first, second)
		}
	}
	if _, ok := SourceUnknown.Code(); ok {
		t.Error("SourceUnknown must not map back to a device code")
	}
	if SourceUnknown.String() != "unknown" {
		t.Errorf("unexpected name for SourceUnknown: %q", SourceUnknown)
	}
}

func TestVolumeFraction(t *testing.T) {
	s := Snapshot{}
	if _, ok := s.VolumeFraction(); ok {
		t.Error("empty snapshot reported a volume fraction")
	}
	s = Snapshot{Volume: 31, VolumeKnown: true}
	if fraction, ok := s.VolumeFraction(); !ok || fraction != 1.0 {
		t.Errorf("expected full volume fraction 1.0, got %f (%v)", fraction, ok)
	}
	s.Volume = 20
	fraction, _ := s.VolumeFraction()
	if fraction < 0.64 || fraction > 0.65 {
		t.Errorf("expected 20/31, got %f", fraction)
	}
}

func TestSnapshotInput(t *testing.T) {
	s := Snapshot{}
	if s.Input() != SourceUnknown {
		t.Error("empty snapshot must report SourceUnknown")
	}
	s = Snapshot{InputCode: 0x15, InputKnown: true}
	if s.Input() != SourceSoundcard {
		t.Errorf("expected soundcard, got %s", s.Input())
	}
	s.InputCode = 0x42
	if s.Input() != SourceUnknown {
		t.Errorf("unrecognized code must map to SourceUnknown, got %s", s.Input())
	}
}
