package protocol

import (
	"errors"
	"fmt"
)

// Error exposes methods useful for categorizing errors.
type Error interface {
	error

	// MayHaveSucceeded returns true if the Error was triggered by a command that might have been
	// executed. For example, if the client times out after writing a frame, it cannot tell whether
	// the amplifier applied the command before the link dropped.
	MayHaveSucceeded() bool

	// Temporary returns true if the Error might be the result of a transient condition. For
	// example, the amplifier stops advertising for a few seconds after a phone pairs with it, so
	// scan misses are usually worth retrying.
	Temporary() bool
}

var (
	// ErrDeviceNotFound indicates address resolution or discovery failed to produce a connectable
	// handle.
	ErrDeviceNotFound = NewError("amplifier is not advertising or out of range", false, true)
	// ErrNotConnected indicates the amplifier could not be reached.
	ErrNotConnected = NewError("amplifier not connected", false, false)
	// ErrInvalidVolume indicates a volume level outside the device's native range.
	ErrInvalidVolume = NewError(fmt.Sprintf("volume must be between %d and %d", VolumeMin, VolumeMax), false, false)
	// ErrUpdateFailed indicates a refresh cycle could not obtain a consistent state. The session
	// is forced into a disconnected state so the next access starts clean.
	ErrUpdateFailed = NewError("could not refresh amplifier state", false, true)
	// ErrUnknownSource indicates an input source this client has no device code for.
	ErrUnknownSource = NewError("unrecognized input source", false, false)
)

type CommandError struct {
	Err               error
	PossibleSuccess   bool
	PossibleTemporary bool
}

func NewError(message string, mayHaveSucceeded bool, temporary bool) error {
	return &CommandError{Err: errors.New(message), PossibleSuccess: mayHaveSucceeded, PossibleTemporary: temporary}
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) MayHaveSucceeded() bool {
	return e.PossibleSuccess
}

func (e *CommandError) Temporary() bool {
	return e.PossibleTemporary
}

// MayHaveSucceeded returns true if err indicates the command may have been executed but the client
// did not receive a confirmation from the amplifier.
func MayHaveSucceeded(err error) bool {
	if commErr, ok := err.(Error); ok && commErr.MayHaveSucceeded() {
		return true
	}
	return false
}

// Temporary returns true if err indicates the command failed due to possibly transient conditions
// that do not require user action to resolve.
func Temporary(err error) bool {
	if commErr, ok := err.(Error); ok && commErr.Temporary() {
		return true
	}
	return false
}

// ShouldRetry returns true if the client should retry the command that triggered an error.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(Error); ok {
		if e.MayHaveSucceeded() {
			return false
		}
		if e.Temporary() {
			return true
		}
	}
	return false
}
