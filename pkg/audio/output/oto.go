// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays float buffers on the system device with software volume control
package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
	"github.com/amarpathshala/pathshala-go/pkg/audio/resample"
	"github.com/ebitengine/oto/v3"
)

// pollInterval is how often a session checks whether oto has drained it
const pollInterval = 10 * time.Millisecond

// oto allows one context per process, so every Oto destination shares it
var (
	shared       sync.Mutex
	sharedCtx    *oto.Context
	sharedFormat audio.Format
	sharedUsers  int
	sharedErr    error

	newContext = oto.NewContext
)

// Oto output implementation using oto library
type Oto struct {
	mu       sync.Mutex
	otoCtx   *oto.Context
	format   audio.Format
	sessions map[*otoSession]struct{}
	volume   int
	muted    bool
	closed   bool
}

// NewOto opens the system audio device. It satisfies Opener.
func NewOto(format audio.Format) (Destination, error) {
	ctx, device, err := acquireContext(format)
	if err != nil {
		return nil, err
	}

	return &Oto{
		otoCtx:   ctx,
		format:   device,
		sessions: make(map[*otoSession]struct{}),
		volume:   100,
	}, nil
}

// acquireContext returns the shared context and the format it was opened
// with, which is the first caller's format. oto refuses a second
// NewContext call even after a failed one, so the first failure is kept
// and returned to every later caller.
func acquireContext(format audio.Format) (*oto.Context, audio.Format, error) {
	shared.Lock()
	defer shared.Unlock()

	if sharedErr != nil {
		return nil, audio.Format{}, sharedErr
	}

	if sharedCtx != nil {
		if sharedFormat.SampleRate != format.SampleRate || sharedFormat.Channels != format.Channels {
			log.Printf("Audio device already open as %s, resampling %s", sharedFormat, format)
		}
		if err := sharedCtx.Resume(); err != nil {
			return nil, audio.Format{}, fmt.Errorf("%w: resume: %v", ErrOutputUnavailable, err)
		}
		sharedUsers++
		return sharedCtx, sharedFormat, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := newContext(op)
	if err != nil {
		sharedErr = fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
		return nil, audio.Format{}, sharedErr
	}

	<-readyChan

	if err := ctx.Err(); err != nil {
		sharedErr = fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
		return nil, audio.Format{}, sharedErr
	}

	sharedCtx = ctx
	sharedFormat = format
	sharedUsers = 1

	log.Printf("Audio output initialized: %dHz, %d channels", format.SampleRate, format.Channels)

	return ctx, format, nil
}

func releaseContext() {
	shared.Lock()
	defer shared.Unlock()

	sharedUsers--
	if sharedUsers > 0 || sharedCtx == nil {
		return
	}
	if err := sharedCtx.Suspend(); err != nil {
		log.Printf("Failed to suspend audio output: %v", err)
	}
}

// NewSession binds buf to the device
func (o *Oto) NewSession(buf *audio.Buffer) (Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrClosed
	}

	if buf.NumChannels() != o.format.Channels {
		return nil, fmt.Errorf("buffer has %d channels, output has %d", buf.NumChannels(), o.format.Channels)
	}

	buf = resample.Buffer(buf, o.format.SampleRate)
	data := floatBytes(applyVolume(buf.Interleaved(), o.volume, o.muted))

	s := &otoSession{
		owner:    o,
		player:   o.otoCtx.NewPlayer(bytes.NewReader(data)),
		frames:   buf.Frames(),
		duration: buf.Duration(),
		done:     make(chan struct{}),
	}
	o.sessions[s] = struct{}{}

	return s, nil
}

func (o *Oto) forget(s *otoSession) {
	o.mu.Lock()
	delete(o.sessions, s)
	o.mu.Unlock()
}

// Close stops every session and releases the shared context
func (o *Oto) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	sessions := make([]*otoSession, 0, len(o.sessions))
	for s := range o.sessions {
		sessions = append(sessions, s)
	}
	o.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}

	releaseContext()
	return nil
}

// SetVolume sets the volume (0-100) for sessions created afterwards
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.mu.Lock()
	o.volume = volume
	o.mu.Unlock()
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state for sessions created afterwards
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	o.muted = muted
	o.mu.Unlock()
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

type otoSession struct {
	owner    *Oto
	player   *oto.Player
	frames   int
	duration time.Duration

	mu      sync.Mutex
	started bool
	over    bool
	done    chan struct{}
}

func (s *otoSession) Start(onEnded func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return ErrClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	s.player.Play()
	go s.watch(onEnded)

	return nil
}

// watch waits for oto to drain the reader, then reports the natural end
func (s *otoSession) watch(onEnded func()) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if s.player.IsPlaying() {
				continue
			}

			s.mu.Lock()
			if s.over {
				s.mu.Unlock()
				return
			}
			s.over = true
			close(s.done)
			s.mu.Unlock()

			s.release()
			if onEnded != nil {
				onEnded()
			}
			return
		}
	}
}

func (s *otoSession) Stop() {
	s.mu.Lock()
	if s.over {
		s.mu.Unlock()
		return
	}
	s.over = true
	close(s.done)
	s.mu.Unlock()

	s.player.Pause()
	s.release()
}

func (s *otoSession) release() {
	if err := s.player.Close(); err != nil {
		log.Printf("Failed to close audio player: %v", err)
	}
	s.owner.forget(s)
}

func (s *otoSession) Frames() int {
	return s.frames
}

func (s *otoSession) Duration() time.Duration {
	return s.duration
}

// floatBytes packs samples as little-endian float32
func floatBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// applyVolume applies volume and mute to samples with clipping protection
func applyVolume(samples []float32, volume int, muted bool) []float32 {
	multiplier := float32(getVolumeMultiplier(volume, muted))

	result := make([]float32, len(samples))
	for i, sample := range samples {
		scaled := sample * multiplier
		if scaled > 1 {
			scaled = 1
		} else if scaled < -1 {
			scaled = -1
		}
		result[i] = scaled
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
