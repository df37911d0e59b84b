// ABOUTME: Narration player state machine
// ABOUTME: Decodes base64 PCM payloads and enforces exclusive play/stop on one output
package narration

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
	"github.com/amarpathshala/pathshala-go/pkg/audio/decode"
	"github.com/amarpathshala/pathshala-go/pkg/audio/output"
)

var (
	// ErrClosed is returned by Toggle after Close
	ErrClosed = errors.New("narration player closed")

	// ErrNoAudio is returned for a payload that decodes to zero frames
	ErrNoAudio = errors.New("narration payload holds no audio frames")
)

// State is what the UI renders: a play or a stop affordance
type State int

const (
	StateIdle State = iota
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config holds player configuration
type Config struct {
	// Opener creates the audio destination on first play (default: output.NewOto)
	Opener output.Opener

	// Format is the payload layout (default: audio.NarrationFormat)
	Format audio.Format

	// OnFinished is called once per playback that reaches its natural end
	OnFinished func()

	// OnStateChange is called after every transition
	OnStateChange func(State)

	// OnError is called when a play attempt fails
	OnError func(error)
}

// playback is the tagged player state: idle or *playing
type playback interface {
	state() State
}

type idle struct{}

func (idle) state() State { return StateIdle }

type playing struct {
	session output.Session
}

func (*playing) state() State { return StatePlaying }

// Player plays narration payloads one at a time
type Player struct {
	config Config

	mu     sync.Mutex
	dest   output.Destination
	now    playback
	closed bool
}

// NewPlayer creates an idle player. No audio device is opened until the
// first successful decode.
func NewPlayer(config Config) *Player {
	if config.Opener == nil {
		config.Opener = output.NewOto
	}
	if config.Format.SampleRate == 0 {
		config.Format = audio.NarrationFormat
	}

	return &Player{
		config: config,
		now:    idle{},
	}
}

// Toggle is the single play/stop control.
//
// While playing it stops the active session immediately and returns to
// idle; the payload is ignored. While idle an empty payload is a no-op,
// otherwise the payload is decoded and started. A failed attempt leaves
// the player idle, is reported through OnError and is returned.
func (p *Player) Toggle(payload string) error {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}

	if cur, ok := p.now.(*playing); ok {
		cur.session.Stop()
		p.now = idle{}
		p.mu.Unlock()

		log.Printf("Narration stopped")
		p.notifyStateChange(StateIdle)
		return nil
	}

	if payload == "" {
		p.mu.Unlock()
		return nil
	}

	err := p.start(payload)
	p.mu.Unlock()

	if err != nil {
		p.notifyError(err)
		return err
	}

	p.notifyStateChange(StatePlaying)
	return nil
}

// start runs decode, interpret, bind and start with p.mu held
func (p *Player) start(payload string) error {
	data, err := decode.Base64(payload)
	if err != nil {
		return fmt.Errorf("decode narration: %w", err)
	}

	format := p.config.Format
	if _, dropped := decode.FrameCount(len(data), format.Channels); dropped > 0 {
		log.Printf("Narration payload ends in a partial frame, dropping %d bytes", dropped)
	}

	buf, err := decode.PCM(data, format.SampleRate, format.Channels)
	if err != nil {
		return fmt.Errorf("interpret narration: %w", err)
	}
	if buf.Frames() == 0 {
		return fmt.Errorf("%w: %d bytes", ErrNoAudio, len(data))
	}

	dest, err := p.destination()
	if err != nil {
		return err
	}

	session, err := dest.NewSession(buf)
	if err != nil {
		return unavailable(err)
	}

	cur := &playing{session: session}
	if err := session.Start(func() { p.finished(cur) }); err != nil {
		session.Stop()
		return unavailable(err)
	}

	p.now = cur
	log.Printf("Narration started: %d frames, %v", session.Frames(), session.Duration())

	return nil
}

// destination opens the output once. A failed open is not remembered, so
// the next play attempt tries again; a successful one is never replaced.
func (p *Player) destination() (output.Destination, error) {
	if p.dest != nil {
		return p.dest, nil
	}

	dest, err := p.config.Opener(p.config.Format)
	if err != nil {
		return nil, unavailable(err)
	}

	p.dest = dest
	return dest, nil
}

// finished handles a natural end reported by cur's session
func (p *Player) finished(cur *playing) {
	p.mu.Lock()
	if p.now != playback(cur) {
		// stopped or replaced before the end was observed
		p.mu.Unlock()
		return
	}
	p.now = idle{}
	p.mu.Unlock()

	log.Printf("Narration finished")
	p.notifyStateChange(StateIdle)

	if p.config.OnFinished != nil {
		p.config.OnFinished()
	}
}

// Stop halts playback without starting anything. It is a no-op when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	cur, ok := p.now.(*playing)
	if !ok {
		p.mu.Unlock()
		return
	}
	cur.session.Stop()
	p.now = idle{}
	p.mu.Unlock()

	log.Printf("Narration stopped")
	p.notifyStateChange(StateIdle)
}

// State returns the current state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now.state()
}

// IsPlaying reports whether a session is active
func (p *Player) IsPlaying() bool {
	return p.State() == StatePlaying
}

// Close stops any active session and releases the audio destination
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true

	wasPlaying := false
	if cur, ok := p.now.(*playing); ok {
		cur.session.Stop()
		p.now = idle{}
		wasPlaying = true
	}

	var err error
	if p.dest != nil {
		err = p.dest.Close()
		p.dest = nil
	}
	p.mu.Unlock()

	if wasPlaying {
		p.notifyStateChange(StateIdle)
	}

	if err != nil {
		return fmt.Errorf("close audio output: %w", err)
	}
	return nil
}

func unavailable(err error) error {
	if errors.Is(err, output.ErrOutputUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", output.ErrOutputUnavailable, err)
}

// notifyStateChange calls the OnStateChange callback if set
func (p *Player) notifyStateChange(state State) {
	if p.config.OnStateChange != nil {
		p.config.OnStateChange(state)
	}
}

// notifyError calls the OnError callback if set
func (p *Player) notifyError(err error) {
	if p.config.OnError != nil {
		p.config.OnError(err)
	} else {
		log.Printf("Player error: %v", err)
	}
}
