// ABOUTME: In-memory audio output driven by a simulated clock
// ABOUTME: Used by tests and headless runs where no audio device exists
package output

import (
	"sync"
	"time"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

// Memory is a Destination that never touches hardware. Time only moves
// when Advance is called, so natural completion is fully deterministic.
type Memory struct {
	mu       sync.Mutex
	now      time.Duration
	sessions map[*memorySession]struct{}
	created  int
	peak     int
	closed   bool

	// OpenErr, when set, makes Opener fail with it
	OpenErr error
	// SessionErr, when set, makes NewSession fail with it
	SessionErr error
}

// NewMemory creates an idle in-memory destination
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[*memorySession]struct{}),
	}
}

// Opener returns an Opener that hands out this destination
func (m *Memory) Opener() Opener {
	return func(format audio.Format) (Destination, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.OpenErr != nil {
			return nil, m.OpenErr
		}
		m.closed = false
		return m, nil
	}
}

// NewSession binds buf without starting it
func (m *Memory) NewSession(buf *audio.Buffer) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.SessionErr != nil {
		return nil, m.SessionErr
	}

	m.created++
	return &memorySession{
		owner:    m,
		frames:   buf.Frames(),
		duration: buf.Duration(),
	}, nil
}

// Advance moves the clock forward and ends every running session whose
// buffer has been fully played. Completion callbacks run on the caller's
// goroutine before Advance returns.
func (m *Memory) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d

	var ended []func()
	for s := range m.sessions {
		if m.now-s.startedAt < s.duration {
			continue
		}
		s.over = true
		delete(m.sessions, s)
		if s.onEnded != nil {
			ended = append(ended, s.onEnded)
		}
	}
	m.mu.Unlock()

	for _, fn := range ended {
		fn()
	}
}

// Now returns the simulated time
func (m *Memory) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Active returns the number of sessions currently playing
func (m *Memory) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Peak returns the highest number of sessions ever playing at once
func (m *Memory) Peak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

// Created returns how many sessions were ever bound
func (m *Memory) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// Closed reports whether Close has been called
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close stops every running session
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for s := range m.sessions {
		s.over = true
	}
	clear(m.sessions)
	return nil
}

type memorySession struct {
	owner     *Memory
	frames    int
	duration  time.Duration
	startedAt time.Duration
	onEnded   func()
	started   bool
	over      bool
}

func (s *memorySession) Start(onEnded func()) error {
	m := s.owner
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.over || m.closed {
		return ErrClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	s.started = true
	s.startedAt = m.now
	s.onEnded = onEnded
	m.sessions[s] = struct{}{}
	m.peak = max(m.peak, len(m.sessions))

	return nil
}

func (s *memorySession) Stop() {
	m := s.owner
	m.mu.Lock()
	defer m.mu.Unlock()

	s.over = true
	delete(m.sessions, s)
}

func (s *memorySession) Frames() int {
	return s.frames
}

func (s *memorySession) Duration() time.Duration {
	return s.duration
}
