package lesson

import (
	"errors"
	"testing"
)

const sampleQuiz = `[
  {"question": "2 + 2?", "options": ["3", "4", "5", "6"], "correctAnswer": 1},
  {"question": "Color of the sky?", "options": ["Blue", "Green"], "correctAnswer": 0}
]`

func TestParseQuiz(t *testing.T) {
	quiz, err := ParseQuiz("lesson-1", []byte(sampleQuiz))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quiz.LessonID != "lesson-1" {
		t.Errorf("expected lesson id, got %q", quiz.LessonID)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].ID == "" || quiz.Questions[0].ID == quiz.Questions[1].ID {
		t.Errorf("expected unique question ids, got %q and %q", quiz.Questions[0].ID, quiz.Questions[1].ID)
	}
	if quiz.Questions[0].CorrectAnswer != 1 {
		t.Errorf("expected answer 1, got %d", quiz.Questions[0].CorrectAnswer)
	}
}

func TestParseQuizEmpty(t *testing.T) {
	quiz, err := ParseQuiz("x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 0 {
		t.Errorf("expected no questions, got %d", len(quiz.Questions))
	}
}

func TestParseQuizInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{oops`},
		{"answer out of range", `[{"question": "q", "options": ["a", "b"], "correctAnswer": 2}]`},
		{"negative answer", `[{"question": "q", "options": ["a", "b"], "correctAnswer": -1}]`},
		{"one option", `[{"question": "q", "options": ["a"], "correctAnswer": 0}]`},
		{"five options", `[{"question": "q", "options": ["a", "b", "c", "d", "e"], "correctAnswer": 4}]`},
		{"empty question", `[{"question": "", "options": ["a", "b"], "correctAnswer": 0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuiz("x", []byte(tt.data)); !errors.Is(err, ErrInvalidQuiz) {
				t.Errorf("expected ErrInvalidQuiz, got %v", err)
			}
		})
	}
}

func TestQuizScore(t *testing.T) {
	quiz, err := ParseQuiz("x", []byte(sampleQuiz))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		answers []int
		want    int
	}{
		{[]int{1, 0}, 2},
		{[]int{1, 1}, 1},
		{[]int{0}, 0},
		{nil, 0},
		{[]int{1, 0, 3}, 2},
	}

	for _, tt := range tests {
		if got := quiz.Score(tt.answers); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.answers, got, tt.want)
		}
	}
}
