// ABOUTME: Quiz types, parsing and scoring
// ABOUTME: Validates generated multiple-choice questions
package lesson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidQuiz is returned for generated quizzes that cannot be used
var ErrInvalidQuiz = errors.New("invalid quiz")

// MaxOptions is the most answer choices a question may offer
const MaxOptions = 4

// Question is one multiple-choice question
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quiz is the set of questions generated for a lesson
type Quiz struct {
	LessonID  string     `json:"lessonId"`
	Questions []Question `json:"questions"`
}

// ParseQuiz reads the JSON array returned by the quiz generator and
// assigns question IDs. Empty input yields an empty quiz.
func ParseQuiz(lessonID string, data []byte) (Quiz, error) {
	quiz := Quiz{LessonID: lessonID}
	if len(data) == 0 {
		return quiz, nil
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return quiz, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}

	for i := range questions {
		q := &questions[i]
		if q.Question == "" {
			return quiz, fmt.Errorf("%w: question %d is empty", ErrInvalidQuiz, i+1)
		}
		if len(q.Options) < 2 || len(q.Options) > MaxOptions {
			return quiz, fmt.Errorf("%w: question %d has %d options", ErrInvalidQuiz, i+1, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return quiz, fmt.Errorf("%w: question %d answer %d out of range", ErrInvalidQuiz, i+1, q.CorrectAnswer)
		}
		if q.ID == "" {
			q.ID = uuid.New().String()
		}
	}

	quiz.Questions = questions
	return quiz, nil
}

// Score counts answers matching the correct option. answers[i] answers
// question i; missing or extra answers count as wrong.
func (q Quiz) Score(answers []int) int {
	score := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			score++
		}
	}
	return score
}
