package amplifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sinilink-community/amplifier-command/pkg/amplifier"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

func TestCoordinatorRefresh(t *testing.T) {
	amp, _, device := newTestSession()
	device.onRead = func() {
		device.notify([]byte{0, 0, 0, 0, 0x16, 0x0f})
	}
	coordinator := amplifier.NewCoordinator(amp)

	snapshot, err := coordinator.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %s", err)
	}
	if !snapshot.Available {
		t.Error("expected an available snapshot")
	}
	if snapshot.Volume != 0x0f || snapshot.Input() != amplifier.SourceAux {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
}

func TestCoordinatorFailureForcesDisconnect(t *testing.T) {
	amp, _, device := newTestSession()
	if err := amp.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %s", err)
	}
	device.notify([]byte{0, 0, 0, 0, 0x16, 0x0f})
	device.mu.Lock()
	device.readErr = errLinkFailure
	device.mu.Unlock()

	coordinator := amplifier.NewCoordinator(amp)
	snapshot, err := coordinator.Refresh(context.Background())
	if !errors.Is(err, protocol.ErrUpdateFailed) {
		t.Fatalf("expected ErrUpdateFailed, got %v", err)
	}
	if snapshot != (amplifier.Snapshot{}) {
		t.Errorf("failed refresh returned state as if fresh: %+v", snapshot)
	}
	if amp.Connected() {
		t.Error("expected coordinator to force a disconnect")
	}
	if amp.State() != (amplifier.Snapshot{}) {
		t.Error("expected empty snapshot after forced disconnect")
	}
}

func TestCoordinatorRunStopsWithContext(t *testing.T) {
	amp, _, device := newTestSession()
	device.onRead = func() {
		device.notify([]byte{0, 0, 0, 0, 0x16, 0x0f})
	}
	coordinator := amplifier.NewCoordinator(amp)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := coordinator.Run(ctx, 10*time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline, got %v", err)
	}
	device.mu.Lock()
	reads := device.readCount
	device.mu.Unlock()
	if reads < 2 {
		t.Errorf("expected repeated refreshes, observed %d reads", reads)
	}
}
