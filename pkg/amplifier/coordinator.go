package amplifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

// Coordinator produces consistent (volume, input) refreshes for hosts that poll. On any failure it
// forces a disconnect so the next access starts from a clean slate, rather than letting stale data
// pass for fresh.
type Coordinator struct {
	amp *Amplifier
}

func NewCoordinator(amp *Amplifier) *Coordinator {
	return &Coordinator{amp: amp}
}

// Refresh requests a volume refresh followed by an input refresh. The two run in sequence; they
// share the one physical link. Returns the snapshot after both complete, or a
// protocol.ErrUpdateFailed-wrapped error after forcing a disconnect.
func (c *Coordinator) Refresh(ctx context.Context) (Snapshot, error) {
	if _, _, err := c.amp.RefreshVolume(ctx); err != nil {
		return c.fail(err)
	}
	if _, _, err := c.amp.RefreshInput(ctx); err != nil {
		return c.fail(err)
	}
	return c.amp.State(), nil
}

func (c *Coordinator) fail(err error) (Snapshot, error) {
	log.Warning("amplifier: refresh cycle failed, forcing disconnect: %s", err)
	c.amp.Disconnect()
	return Snapshot{}, fmt.Errorf("%w: %s", protocol.ErrUpdateFailed, err)
}

// Run refreshes at the given interval until ctx ends. Hosts with their own scheduler should call
// Refresh directly instead.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := c.Refresh(ctx); err != nil {
			log.Warning("amplifier: periodic refresh failed: %s", err)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
