package capture

import (
	"context"
	"errors"
)

// Capture error taxonomy. Both are fatal for the attempt: the session returns
// to Idle and the caller must retry manually.
var (
	// ErrPermissionDenied means microphone access was refused.
	ErrPermissionDenied = errors.New("capture: microphone permission denied")
	// ErrDevice means the recorder or stream failed after access was granted.
	ErrDevice = errors.New("capture: device failure")
	// ErrSessionActive means Start was called while a capture is underway.
	ErrSessionActive = errors.New("capture: session already active")
)

// Stream is a live microphone stream handle. Close releases the underlying
// device; the session guarantees exactly one Close per acquisition, on every
// exit path out of Capturing.
type Stream interface {
	Close() error
}

// Device is the capture boundary. Acquire requests microphone access and
// blocks until the device is granted or refused. Implementations should
// return ErrPermissionDenied or ErrDevice (possibly wrapped) on failure.
type Device interface {
	Acquire(ctx context.Context) (Stream, error)
}

// DeviceFunc adapts a function to the Device interface.
type DeviceFunc func(ctx context.Context) (Stream, error)

// Acquire calls f.
func (f DeviceFunc) Acquire(ctx context.Context) (Stream, error) { return f(ctx) }

// StreamFunc adapts a close function to the Stream interface.
type StreamFunc func() error

// Close calls f.
func (f StreamFunc) Close() error { return f() }
