// ABOUTME: Lesson and quiz type definitions
// ABOUTME: Grades, subjects and the generated lesson record
package lesson

import (
	"fmt"
	"strings"
	"time"
)

// Grade is a class level, 0 being kindergarten
type Grade int

const (
	GradeK   Grade = 0
	MaxGrade Grade = 5
)

// Valid reports whether g is between K and MaxGrade
func (g Grade) Valid() bool {
	return g >= GradeK && g <= MaxGrade
}

func (g Grade) String() string {
	if g == GradeK {
		return "K"
	}
	return fmt.Sprintf("%d", int(g))
}

// Subject is one of the fixed subject names
type Subject string

const (
	Bengali       Subject = "Bengali"
	English       Subject = "English"
	Mathematics   Subject = "Mathematics"
	Science       Subject = "Science"
	SocialStudies Subject = "Social Studies"
	Art           Subject = "Art"
)

// Subjects lists every subject in display order
var Subjects = []Subject{Bengali, English, Mathematics, Science, SocialStudies, Art}

// ParseSubject matches a subject name case-insensitively
func ParseSubject(name string) (Subject, error) {
	for _, s := range Subjects {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown subject: %q", name)
}

// Source is a web citation returned with generated content
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Lesson is a generated reading lesson with its illustration and narration
type Lesson struct {
	ID        string     `json:"id"`
	Grade     Grade      `json:"grade"`
	Subject   Subject    `json:"subject"`
	Topic     string     `json:"topic,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	AudioData string     `json:"audioData,omitempty"` // base64 24 kHz mono 16-bit PCM
	Language  string     `json:"language"`
	Sources   []Source   `json:"sources,omitempty"`
	Questions []Question `json:"questions,omitempty"` // authored quiz, if any
	CreatedAt time.Time  `json:"createdAt"`
}

// HasNarration reports whether the lesson carries an audio payload
func (l Lesson) HasNarration() bool {
	return l.AudioData != ""
}

// DefaultTopic is used when a learner opens a subject nobody authored
func DefaultTopic(grade Grade, subject Subject) string {
	return fmt.Sprintf("General %s for Grade %d", subject, int(grade))
}
