// ABOUTME: Audio output interface definition
// ABOUTME: Destination owns the device handle, Session is one buffer in flight
package output

import (
	"errors"
	"time"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

var (
	// ErrOutputUnavailable is matched when the platform output cannot be created or resumed
	ErrOutputUnavailable = errors.New("audio output unavailable")

	// ErrClosed is returned when using a destination after Close
	ErrClosed = errors.New("audio output closed")

	// ErrAlreadyStarted is returned by a second Start on the same session
	ErrAlreadyStarted = errors.New("session already started")
)

// Destination is the endpoint that renders playable buffers as sound
type Destination interface {
	// NewSession binds buf to the destination without starting it
	NewSession(buf *audio.Buffer) (Session, error)

	// Close stops every session and releases the device
	Close() error
}

// Session is one run of a buffer on a destination
type Session interface {
	// Start begins playback. onEnded runs at most once, and only when the
	// buffer plays to its end on its own.
	Start(onEnded func()) error

	// Stop halts playback immediately. Once Stop returns onEnded will not
	// be called. Stopping twice is a no-op.
	Stop()

	// Frames returns the buffer length in frames
	Frames() int

	// Duration returns the buffer length in time
	Duration() time.Duration
}

// Opener creates a destination for the given format
type Opener func(format audio.Format) (Destination, error)
