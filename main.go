// ABOUTME: Entry point for the Amar Pathshala lesson player
// ABOUTME: Parses CLI flags, resolves a lesson and plays its narration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/amarpathshala/pathshala-go/internal/config"
	"github.com/amarpathshala/pathshala-go/internal/illustration"
	"github.com/amarpathshala/pathshala-go/internal/lesson"
	"github.com/amarpathshala/pathshala-go/internal/tone"
	"github.com/amarpathshala/pathshala-go/internal/ui"
	"github.com/amarpathshala/pathshala-go/internal/version"
	"github.com/amarpathshala/pathshala-go/pkg/audio"
	"github.com/amarpathshala/pathshala-go/pkg/audio/encode"
	"github.com/amarpathshala/pathshala-go/pkg/audio/output"
	"github.com/amarpathshala/pathshala-go/pkg/narration"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	configPath  = flag.String("config", "", "Path to YAML config file")
	lessonID    = flag.String("lesson", "", "Play a stored lesson by ID")
	grade       = flag.Int("grade", -1, "Grade (0 = K) of the cached lesson to open")
	subject     = flag.String("subject", "", "Subject of the cached lesson to open")
	payloadFile = flag.String("payload-file", "", "File holding a base64 narration payload")
	demo        = flag.Bool("demo", false, "Play a one second 440 Hz test tone")
	logFile     = flag.String("log-file", "", "Log file path (overrides config)")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, play once and stream logs")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(cfg.Log.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Headless mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}
	logger := newLogger(cfg.Log.Level)

	log.Printf("Starting %s %s", version.Product, version.Version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := lesson.Open(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("Failed to open lesson store: %v", err)
	}
	defer store.Close()

	// Content generation lives outside this program; only cached lessons
	// are served here.
	service := lesson.NewService(store, nil, cfg.Lesson, logger)

	current, err := resolveLesson(ctx, store, service)
	if err != nil {
		log.Fatalf("No lesson to play: %v", err)
	}
	log.Printf("Lesson: %s (grade %s, %s)", current.Title, current.Grade, current.Subject)

	// TUI setup
	var tuiProg *tea.Program
	var controls *ui.Controls

	if useTUI {
		controls = ui.NewControls()
		tuiProg, err = ui.Run(current, cfg.Audio.Volume, service.QuizAvailable(current), controls)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
	}

	// Helper to update TUI
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	dev := &device{cfg: cfg.Audio}
	finished := make(chan struct{}, 1)

	player := narration.NewPlayer(narration.Config{
		Opener: dev.open,
		OnFinished: func() {
			log.Printf("Narration finished")
			select {
			case finished <- struct{}{}:
			default:
			}
		},
		OnStateChange: func(state narration.State) {
			playing := state == narration.StatePlaying
			updateTUI(ui.StatusMsg{Playing: &playing})
		},
		OnError: func(err error) {
			log.Printf("Narration error: %v", err)
			updateTUI(ui.StatusMsg{Err: err})
		},
	})
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
		dev.stop()
	}()

	if current.ImageURL != "" {
		go fetchIllustration(ctx, cfg.Illustration, current.ImageURL, updateTUI)
	}

	if controls == nil {
		playOnce(ctx, player, current, finished)
		return
	}

	go handleControls(ctx, player, service, dev, current, controls, updateTUI)

	select {
	case <-controls.Quit:
		log.Printf("Received quit signal from TUI")
	case <-ctx.Done():
		log.Printf("Shutdown signal received")
		tuiProg.Quit()
	}

	log.Printf("Player stopped")
}

// resolveLesson picks the lesson named by the flags
func resolveLesson(ctx context.Context, store *lesson.Store, service *lesson.Service) (lesson.Lesson, error) {
	var (
		l   lesson.Lesson
		err error
	)

	switch {
	case *demo:
		buf := tone.Sine(tone.A4, time.Second, audio.NarrationFormat, 0.5)
		l = lesson.Lesson{
			Title:     "Test tone",
			Content:   "A one second 440 Hz sine wave.",
			AudioData: encode.Base64(buf),
		}
		return l, nil
	case *lessonID != "":
		l, err = store.Get(ctx, *lessonID)
	case *grade >= 0 && *subject != "":
		s, perr := lesson.ParseSubject(*subject)
		if perr != nil {
			return l, perr
		}
		l, err = service.Lesson(ctx, lesson.Grade(*grade), s)
	case *payloadFile == "":
		return l, errors.New("one of -lesson, -grade/-subject, -payload-file or -demo is required")
	}
	if err != nil {
		return l, err
	}

	if *payloadFile != "" {
		data, err := os.ReadFile(*payloadFile)
		if err != nil {
			return l, fmt.Errorf("read payload: %w", err)
		}
		l.AudioData = strings.TrimSpace(string(data))
		if l.Title == "" {
			l.Title = *payloadFile
		}
	}
	return l, nil
}

// playOnce plays the lesson narration in headless mode and waits for it
func playOnce(ctx context.Context, player *narration.Player, l lesson.Lesson, finished <-chan struct{}) {
	if !l.HasNarration() {
		log.Printf("Lesson has no narration")
		return
	}

	if err := player.Toggle(l.AudioData); err != nil {
		// Already reported through OnError
		return
	}

	select {
	case <-finished:
	case <-ctx.Done():
		log.Printf("Shutdown signal received")
		player.Stop()
	}
}

// handleControls processes requests from the TUI
func handleControls(ctx context.Context, player *narration.Player, service *lesson.Service, dev *device, l lesson.Lesson, controls *ui.Controls, updateTUI func(ui.StatusMsg)) {
	for {
		select {
		case <-controls.Toggle:
			// Failures reach the TUI through OnError
			_ = player.Toggle(l.AudioData)
		case vol := <-controls.Changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			dev.setVolume(vol.Volume, vol.Muted)
		case <-controls.Quiz:
			go func() {
				quiz, err := service.Quiz(ctx, l)
				if err != nil {
					log.Printf("Quiz error: %v", err)
					updateTUI(ui.StatusMsg{Err: err})
					return
				}
				updateTUI(ui.StatusMsg{Quiz: &quiz})
			}()
		case <-ctx.Done():
			return
		}
	}
}

func fetchIllustration(ctx context.Context, cfg config.IllustrationConfig, ref string, updateTUI func(ui.StatusMsg)) {
	cache, err := illustration.NewCache(cfg)
	if err != nil {
		log.Printf("Illustration cache unavailable: %v", err)
		return
	}

	path, err := cache.Fetch(ctx, ref)
	if err != nil {
		log.Printf("Illustration error: %v", err)
		return
	}
	updateTUI(ui.StatusMsg{Illustration: path})
}

// memoryTick is how often the silent memory backend's clock is advanced
const memoryTick = 20 * time.Millisecond

// device opens the configured output backend and applies volume to it
type device struct {
	cfg config.AudioConfig

	mu   sync.Mutex
	oto  *output.Oto
	mem  *output.Memory
	done chan struct{}
	wg   sync.WaitGroup
}

func (d *device) open(format audio.Format) (output.Destination, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.Backend == "memory" {
		if d.mem == nil {
			d.mem = output.NewMemory()
			d.done = make(chan struct{})
			d.wg.Add(1)
			go d.runClock(d.mem, d.done)
		}
		return d.mem.Opener()(format)
	}

	dest, err := output.NewOto(format)
	if err != nil {
		return nil, err
	}
	d.oto = dest.(*output.Oto)
	d.oto.SetVolume(d.cfg.Volume)
	d.oto.SetMuted(d.cfg.Muted)
	return dest, nil
}

func (d *device) setVolume(volume int, muted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cfg.Volume = volume
	d.cfg.Muted = muted
	if d.oto != nil {
		d.oto.SetVolume(volume)
		d.oto.SetMuted(muted)
	}
}

// runClock plays the memory backend in real time until done is closed
func (d *device) runClock(mem *output.Memory, done <-chan struct{}) {
	defer d.wg.Done()

	ticker := time.NewTicker(memoryTick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			mem.Advance(memoryTick)
		}
	}
}

// stop ends the memory clock and waits for it to exit
func (d *device) stop() {
	d.mu.Lock()
	if d.done != nil {
		close(d.done)
		d.done = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(log.Writer(), &slog.HandlerOptions{Level: lvl}))
}
