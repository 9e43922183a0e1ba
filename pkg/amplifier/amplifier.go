// Package amplifier maintains a session with a Sinilink BLE amplifier: it owns the physical link,
// serializes all operations against it, and reconciles device state from status notifications.
package amplifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

// DefaultRefreshTimeout bounds the wait for the status notification provoked by a refresh. On
// timeout the last-known state is returned; stale data is not an error.
const DefaultRefreshTimeout = 500 * time.Millisecond

// Device is a live connection handle to the amplifier. Implementations must already be subscribed
// to nothing; Subscribe is called exactly once per handle, and Close releases the subscription
// along with the connection.
type Device interface {
	// WriteCommand writes a command frame with delivery acknowledgment requested.
	WriteCommand(ctx context.Context, frame []byte) error
	// ReadCommand reads the command characteristic. The response payload is not meaningful; the
	// read's only purpose is to provoke the device into emitting a status notification.
	ReadCommand(ctx context.Context) error
	// Subscribe registers the handler for status notifications.
	Subscribe(handler func(p []byte)) error
	// Close unsubscribes and releases the connection.
	Close() error
}

// Connector resolves a device address into a live connection handle.
type Connector interface {
	Connect(ctx context.Context, address string) (Device, error)
}

// StateCallback receives the full current snapshot whenever a status notification changes it.
// Callbacks run synchronously on the notification path and must not call back into the Amplifier;
// defer command issuance to another goroutine.
type StateCallback func(s Snapshot)

type subscriber struct {
	id       int
	callback StateCallback
}

// Amplifier is a session with a single amplifier. All methods are safe for concurrent use; every
// operation that touches the link is serialized through one mutual-exclusion region, so at most
// one BLE operation is in flight at any time.
type Amplifier struct {
	address   string
	connector Connector

	// link is a capacity-1 semaphore covering connect, disconnect, write, and read. A channel
	// rather than a sync.Mutex so acquisition can be abandoned when the caller's context ends.
	link chan struct{}

	refreshLock    sync.Mutex
	refreshTimeout time.Duration

	stateLock sync.Mutex
	device    Device
	snapshot  Snapshot
	notified  chan struct{} // closed and replaced on every decoded notification
	subs      []subscriber
	nextSubID int
}

// New creates a session bound to address. No connection is made until the first operation that
// needs one.
func New(connector Connector, address string) *Amplifier {
	return &Amplifier{
		address:        address,
		connector:      connector,
		link:           make(chan struct{}, 1),
		refreshTimeout: DefaultRefreshTimeout,
		notified:       make(chan struct{}),
	}
}

// Address returns the device address this session is bound to.
func (a *Amplifier) Address() string {
	return a.address
}

// SetRefreshTimeout overrides DefaultRefreshTimeout.
func (a *Amplifier) SetRefreshTimeout(timeout time.Duration) {
	a.refreshLock.Lock()
	defer a.refreshLock.Unlock()
	if timeout > 0 {
		a.refreshTimeout = timeout
	}
}

// State returns the current snapshot.
func (a *Amplifier) State() Snapshot {
	a.stateLock.Lock()
	defer a.stateLock.Unlock()
	return a.snapshot
}

// Connected reports whether the session holds a live connection handle.
func (a *Amplifier) Connected() bool {
	a.stateLock.Lock()
	defer a.stateLock.Unlock()
	return a.device != nil
}

// Subscribe registers a callback for state changes and returns a function that removes it.
// Subscribers are invoked in registration order.
func (a *Amplifier) Subscribe(callback StateCallback) (cancel func()) {
	a.stateLock.Lock()
	defer a.stateLock.Unlock()
	id := a.nextSubID
	a.nextSubID++
	a.subs = append(a.subs, subscriber{id: id, callback: callback})
	return func() {
		a.stateLock.Lock()
		defer a.stateLock.Unlock()
		for i, sub := range a.subs {
			if sub.id == id {
				a.subs = append(a.subs[:i], a.subs[i+1:]...)
				return
			}
		}
	}
}

func (a *Amplifier) acquireLink(ctx context.Context) error {
	select {
	case a.link <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Amplifier) releaseLink() {
	<-a.link
}

// Connect establishes the connection if one is not already up. Idempotent: when connected it
// returns immediately without touching the transport. A concurrent caller blocks on the link
// region until the in-flight attempt completes and then observes its result, rather than starting
// a duplicate attempt.
func (a *Amplifier) Connect(ctx context.Context) error {
	if err := a.acquireLink(ctx); err != nil {
		return err
	}
	defer a.releaseLink()
	_, err := a.connectLocked(ctx)
	return err
}

// connectLocked dials, subscribes to status notifications, and primes state with one read of the
// command characteristic. Callers must hold the link region. Any mid-sequence failure tears down
// the partially established handle and leaves the session cleanly disconnected.
func (a *Amplifier) connectLocked(ctx context.Context) (Device, error) {
	a.stateLock.Lock()
	device := a.device
	a.stateLock.Unlock()
	if device != nil {
		return device, nil
	}

	log.Debug("Connecting to amplifier %s...", a.address)
	device, err := a.connector.Connect(ctx, a.address)
	if err != nil {
		return nil, fmt.Errorf("amplifier: failed to connect to %s: %w", a.address, err)
	}

	if err := device.Subscribe(a.handleNotification); err != nil {
		closeDevice(device)
		return nil, fmt.Errorf("amplifier: failed to subscribe to status notifications: %w", err)
	}

	a.stateLock.Lock()
	a.device = device
	a.stateLock.Unlock()

	// The device reports its state via notification, not unsolicited; provoke the first one.
	if err := device.ReadCommand(ctx); err != nil {
		a.teardown()
		return nil, fmt.Errorf("amplifier: failed to prime status: %w", err)
	}

	log.Info("Connected to amplifier %s", a.address)
	return device, nil
}

// Disconnect unsubscribes, releases the connection, and resets the snapshot to its empty state.
// Idempotent, and safe to call concurrently with an in-flight operation: it waits its turn in the
// link region.
func (a *Amplifier) Disconnect() {
	a.link <- struct{}{}
	defer a.releaseLink()
	a.teardown()
}

// teardown clears the handle and snapshot. Callers must hold the link region.
func (a *Amplifier) teardown() {
	a.stateLock.Lock()
	device := a.device
	a.device = nil
	a.snapshot = Snapshot{}
	close(a.notified)
	a.notified = make(chan struct{})
	a.stateLock.Unlock()

	if device != nil {
		closeDevice(device)
		log.Info("Disconnected from amplifier %s", a.address)
	}
}

func closeDevice(device Device) {
	if err := device.Close(); err != nil {
		log.Warning("amplifier: error releasing connection: %s", err)
	}
}

// SetVolume sends a Volume-Set command for a native level in
// [protocol.VolumeMin, protocol.VolumeMax], connecting first if necessary.
//
// The snapshot is deliberately not updated here: observable state always reflects
// device-confirmed truth, which arrives via the resulting notification.
func (a *Amplifier) SetVolume(ctx context.Context, volume uint8) error {
	frame, err := protocol.EncodeVolumeSet(volume)
	if err != nil {
		return err
	}
	return a.write(ctx, frame)
}

// SetInput sends an Input-Select command for a raw device code. Codes are passed through
// unvalidated; see SetSource for the named variant.
func (a *Amplifier) SetInput(ctx context.Context, code uint8) error {
	return a.write(ctx, protocol.EncodeInputSelect(code))
}

// SetSource sends an Input-Select command for a named input source.
func (a *Amplifier) SetSource(ctx context.Context, source InputSource) error {
	code, ok := source.Code()
	if !ok {
		return protocol.ErrUnknownSource
	}
	return a.SetInput(ctx, code)
}

func (a *Amplifier) write(ctx context.Context, frame []byte) error {
	if err := a.acquireLink(ctx); err != nil {
		return err
	}
	defer a.releaseLink()

	device, err := a.connectLocked(ctx)
	if err != nil {
		return err
	}

	log.Debug("TX command: %02x", frame)
	if err := device.WriteCommand(ctx, frame); err != nil {
		log.Error("amplifier: command write failed: %s", err)
		return &protocol.CommandError{
			Err:               fmt.Errorf("amplifier: command write failed: %w", err),
			PossibleSuccess:   true,
			PossibleTemporary: true,
		}
	}
	return nil
}

// RefreshVolume provokes a status notification and returns the resulting volume. known is false
// if the device has never reported one. If no notification arrives within the refresh timeout the
// last-known value is returned without error.
func (a *Amplifier) RefreshVolume(ctx context.Context) (volume uint8, known bool, err error) {
	if err := a.refresh(ctx); err != nil {
		return 0, false, err
	}
	s := a.State()
	return s.Volume, s.VolumeKnown, nil
}

// RefreshInput provokes a status notification and returns the resulting input source. Semantics
// mirror RefreshVolume.
func (a *Amplifier) RefreshInput(ctx context.Context) (source InputSource, known bool, err error) {
	if err := a.refresh(ctx); err != nil {
		return SourceUnknown, false, err
	}
	s := a.State()
	return s.Input(), s.InputKnown, nil
}

func (a *Amplifier) refresh(ctx context.Context) error {
	if err := a.acquireLink(ctx); err != nil {
		return err
	}
	device, err := a.connectLocked(ctx)
	if err != nil {
		a.releaseLink()
		return err
	}

	// Capture the notification signal before provoking, so a fast reply cannot slip between the
	// read and the wait.
	a.stateLock.Lock()
	arrived := a.notified
	a.stateLock.Unlock()

	err = device.ReadCommand(ctx)
	a.releaseLink()
	if err != nil {
		return fmt.Errorf("amplifier: status read failed: %w", err)
	}

	a.refreshLock.Lock()
	timeout := a.refreshTimeout
	a.refreshLock.Unlock()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-arrived:
	case <-timer.C:
		log.Debug("Status refresh timed out after %s; returning last-known state", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// VolumeUp raises the volume by one native step, clamped to the device range.
func (a *Amplifier) VolumeUp(ctx context.Context) error {
	return a.stepVolume(ctx, 1)
}

// VolumeDown lowers the volume by one native step, clamped to the device range.
func (a *Amplifier) VolumeDown(ctx context.Context) error {
	return a.stepVolume(ctx, -1)
}

func (a *Amplifier) stepVolume(ctx context.Context, delta int) error {
	volume, known, err := a.RefreshVolume(ctx)
	if err != nil {
		return err
	}
	if !known {
		return protocol.ErrUpdateFailed
	}
	next := int(volume) + delta
	if next < protocol.VolumeMin {
		next = protocol.VolumeMin
	} else if next > protocol.VolumeMax {
		next = protocol.VolumeMax
	}
	if next == int(volume) {
		return nil
	}
	return a.SetVolume(ctx, uint8(next))
}

// handleNotification is invoked by the transport for every inbound status frame. It updates only
// the fields present in the frame, wakes refresh waiters, and dispatches the snapshot to
// subscribers outside any lock if a field changed.
func (a *Amplifier) handleNotification(p []byte) {
	log.Debug("RX status: %02x", p)
	update := protocol.DecodeNotification(p)

	a.stateLock.Lock()
	changed := false
	if update.VolumeSet && (!a.snapshot.VolumeKnown || a.snapshot.Volume != update.Volume) {
		a.snapshot.Volume = update.Volume
		a.snapshot.VolumeKnown = true
		changed = true
	}
	if update.InputSet && (!a.snapshot.InputKnown || a.snapshot.InputCode != update.Input) {
		a.snapshot.InputCode = update.Input
		a.snapshot.InputKnown = true
		changed = true
	}
	a.snapshot.Available = a.device != nil && (a.snapshot.VolumeKnown || a.snapshot.InputKnown)
	snapshot := a.snapshot

	close(a.notified)
	a.notified = make(chan struct{})

	var callbacks []StateCallback
	if changed {
		for _, sub := range a.subs {
			callbacks = append(callbacks, sub.callback)
		}
	}
	a.stateLock.Unlock()

	for _, callback := range callbacks {
		callback(snapshot)
	}
}
