// ABOUTME: Bubbletea model for the lesson reader TUI
// ABOUTME: Shows the lesson, the narration control and the quiz
package ui

import (
	"fmt"
	"strings"

	"github.com/amarpathshala/pathshala-go/internal/lesson"
	"github.com/amarpathshala/pathshala-go/internal/version"
	tea "github.com/charmbracelet/bubbletea"
)

const boxWidth = 54

// Model represents the TUI state
type Model struct {
	lesson       lesson.Lesson
	illustration string

	// Narration
	hasAudio bool
	playing  bool
	volume   int
	muted    bool
	lastErr  string

	// Quiz
	canQuiz  bool
	quiz     *lesson.Quiz
	answers  []int
	quizBusy bool

	scroll   int
	controls *Controls

	width  int
	height int
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Playing      *bool
	Err          error
	Volume       int
	Illustration string
	Quiz         *lesson.Quiz
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll = min(m.scroll, m.maxScroll())
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.renderHeader()
	if m.quiz != nil {
		s += m.renderQuiz()
	} else {
		s += m.renderLesson()
		s += m.renderControls()
	}
	s += m.renderHelp()

	return s
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("─ %s %s ", version.Product, version.Version)
	s := "┌" + title + strings.Repeat("─", max(0, boxWidth-runeLen(title))) + "┐\n"
	s += line(truncate(m.lesson.Title, boxWidth-2))
	s += line(fmt.Sprintf("Grade %s · %s", m.lesson.Grade, m.lesson.Subject))
	s += "├" + strings.Repeat("─", boxWidth) + "┤\n"
	return s
}

// renderLesson renders the visible part of the wrapped lesson text
func (m Model) renderLesson() string {
	lines := wrap(m.lesson.Content, boxWidth)
	visible := m.textRows()
	start := min(m.scroll, m.maxScroll())
	end := min(len(lines), start+visible)

	s := ""
	for _, l := range lines[start:end] {
		s += line(l)
	}
	if m.illustration != "" {
		s += line("")
		s += line("Picture: " + truncate(m.illustration, boxWidth-11))
	}
	for _, src := range m.lesson.Sources {
		s += line("Source: " + truncate(src.Title, boxWidth-10))
	}
	return s
}

// renderControls renders the narration button and status
func (m Model) renderControls() string {
	s := "├" + strings.Repeat("─", boxWidth) + "┤\n"

	switch {
	case !m.hasAudio:
		s += line("No narration for this lesson")
	case m.playing:
		s += line("[ ■ Stop ]   playing")
	default:
		s += line("[ ▶ Listen ]")
	}

	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	s += line(fmt.Sprintf("Volume: [%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon))

	if m.lastErr != "" {
		s += line("Error: " + truncate(m.lastErr, boxWidth-9))
	}
	return s
}

func (m Model) renderQuiz() string {
	if len(m.quiz.Questions) == 0 {
		return line("No questions were generated")
	}

	if len(m.answers) >= len(m.quiz.Questions) {
		score := m.quiz.Score(m.answers)
		s := line("Quiz finished!")
		s += line(fmt.Sprintf("Score: %d / %d", score, len(m.quiz.Questions)))
		return s
	}

	idx := len(m.answers)
	q := m.quiz.Questions[idx]
	s := line(fmt.Sprintf("Question %d of %d", idx+1, len(m.quiz.Questions)))
	s += line("")
	for _, l := range wrap(q.Question, boxWidth) {
		s += line(l)
	}
	s += line("")
	for i, opt := range q.Options {
		s += line(truncate(fmt.Sprintf("%d) %s", i+1, opt), boxWidth-2))
	}
	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	help := "space:Listen/Stop  ↑/↓:Scroll  +/-:Vol  m:Mute  q:Quit"
	if m.canQuiz {
		help = "space:Listen/Stop  ↑/↓:Scroll  +/-:Vol  m:Mute  x:Quiz  q:Quit"
	}
	if m.quiz != nil {
		help = "1-4:Answer  esc:Back to lesson  q:Quit"
	}
	s := "├" + strings.Repeat("─", boxWidth) + "┤\n"
	s += line(truncate(help, boxWidth-2))
	s += "└" + strings.Repeat("─", boxWidth) + "┘\n"
	return s
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		if m.controls != nil {
			send(m.controls.Quit, QuitMsg{})
		}
		return m, tea.Quit
	}

	if m.quiz != nil {
		return m.handleQuizKey(key)
	}

	switch key {
	case " ", "enter":
		if m.hasAudio && m.controls != nil {
			send(m.controls.Toggle, ToggleMsg{})
		}
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < m.maxScroll() {
			m.scroll++
		}
	case "+", "=":
		m.volume = min(100, m.volume+5)
		m.sendVolume()
	case "-":
		m.volume = max(0, m.volume-5)
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	case "x":
		if m.canQuiz && !m.quizBusy && m.controls != nil {
			m.quizBusy = true
			send(m.controls.Quiz, QuizRequestMsg{})
		}
	}

	return m, nil
}

func (m Model) handleQuizKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.quiz = nil
		m.answers = nil
	case "1", "2", "3", "4":
		if len(m.answers) >= len(m.quiz.Questions) {
			break
		}
		choice := int(key[0] - '1')
		if choice < len(m.quiz.Questions[len(m.answers)].Options) {
			m.answers = append(m.answers, choice)
		}
	}
	return m, nil
}

func (m Model) sendVolume() {
	if m.controls != nil {
		send(m.controls.Changes, VolumeChangeMsg{Volume: m.volume, Muted: m.muted})
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Playing != nil {
		m.playing = *msg.Playing
		if m.playing {
			m.lastErr = ""
		}
	}
	if msg.Err != nil {
		m.lastErr = msg.Err.Error()
		m.quizBusy = false
	}
	if msg.Volume != 0 {
		m.volume = msg.Volume
	}
	if msg.Illustration != "" {
		m.illustration = msg.Illustration
	}
	if msg.Quiz != nil {
		m.quiz = msg.Quiz
		m.answers = nil
		m.quizBusy = false
	}
}

// maxScroll is the first line of the last full page of content
func (m Model) maxScroll() int {
	return max(0, len(wrap(m.lesson.Content, boxWidth))-m.textRows())
}

// textRows is the number of content lines that fit the window
func (m Model) textRows() int {
	return max(3, m.height-14)
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func line(s string) string {
	return "│ " + s + strings.Repeat(" ", max(0, boxWidth-2-runeLen(s))) + " │\n"
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

// wrap breaks text into lines of at most width-2 runes on word boundaries
func wrap(text string, width int) []string {
	width -= 2
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			switch {
			case cur == "":
				cur = truncate(w, width)
			case runeLen(cur)+1+runeLen(w) <= width:
				cur += " " + w
			default:
				lines = append(lines, cur)
				cur = truncate(w, width)
			}
		}
		lines = append(lines, cur)
	}
	return lines
}
