// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the lesson reader
package ui

import (
	"github.com/amarpathshala/pathshala-go/internal/lesson"
	tea "github.com/charmbracelet/bubbletea"
)

// ToggleMsg asks the owner to play or stop the narration
type ToggleMsg struct{}

// VolumeChangeMsg carries a volume or mute change from the keyboard
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuizRequestMsg asks the owner to generate a quiz for the lesson
type QuizRequestMsg struct{}

// QuitMsg signals that the user left the TUI
type QuitMsg struct{}

// Controls holds channels the TUI uses to talk back to its owner
type Controls struct {
	Toggle  chan ToggleMsg
	Changes chan VolumeChangeMsg
	Quiz    chan QuizRequestMsg
	Quit    chan QuitMsg
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Toggle:  make(chan ToggleMsg, 1),
		Changes: make(chan VolumeChangeMsg, 10),
		Quiz:    make(chan QuizRequestMsg, 1),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a TUI model showing l. The quiz key is only offered
// when canQuiz is set.
func NewModel(l lesson.Lesson, volume int, canQuiz bool, ctrl *Controls) Model {
	return Model{
		lesson:   l,
		hasAudio: l.HasNarration(),
		volume:   volume,
		canQuiz:  canQuiz,
		controls: ctrl,
	}
}

// Run creates the TUI program; the caller runs it
func Run(l lesson.Lesson, volume int, canQuiz bool, ctrl *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(l, volume, canQuiz, ctrl), tea.WithAltScreen())
	return p, nil
}

// send delivers msg without blocking the update loop. A full channel means
// the owner has not caught up yet and the keypress is dropped.
func send[T any](ch chan T, msg T) {
	if ch == nil {
		return
	}
	select {
	case ch <- msg:
	default:
	}
}
