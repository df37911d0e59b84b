package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/amarpathshala/pathshala-go/internal/config"
)

type fakeGenerator struct {
	contentCalls int
	imageErr     error
	speechErr    error
	quiz         []byte
}

func (f *fakeGenerator) Content(ctx context.Context, grade Grade, subject Subject, topic, language string) (Generated, error) {
	f.contentCalls++
	return Generated{
		Text: "TITLE: " + topic + "\nCONTENT: Written in " + language + ".",
		Sources: []Source{
			{URI: "https://a.example"},
			{URI: "https://a.example"},
		},
	}, nil
}

func (f *fakeGenerator) Image(ctx context.Context, title, content string) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return "data:image/png;base64,iVBORw0KGgo=", nil
}

func (f *fakeGenerator) Speech(ctx context.Context, text, voice string) (string, error) {
	if f.speechErr != nil {
		return "", f.speechErr
	}
	return "AAAAAA==", nil
}

func (f *fakeGenerator) Quiz(ctx context.Context, content, language string) ([]byte, error) {
	return f.quiz, nil
}

func newTestService(t *testing.T, gen Generator) (*Service, *Store) {
	store := newTestStore(t)
	cfg := config.Default().Lesson
	return NewService(store, gen, cfg, discardLogger()), store
}

func TestServiceCacheHit(t *testing.T) {
	gen := &fakeGenerator{}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	cached := Lesson{Grade: 1, Subject: Art, Title: "Colors", Content: "Red."}
	store.Save(ctx, &cached)

	l, err := svc.Lesson(ctx, 1, Art)
	if err != nil {
		t.Fatalf("Lesson() error = %v", err)
	}
	if l.ID != cached.ID {
		t.Errorf("expected cached lesson, got %+v", l)
	}
	if gen.contentCalls != 0 {
		t.Errorf("generator called on cache hit")
	}
}

func TestServiceMissGeneratesWithoutSaving(t *testing.T) {
	gen := &fakeGenerator{}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	l, err := svc.Lesson(ctx, 2, Science)
	if err != nil {
		t.Fatalf("Lesson() error = %v", err)
	}
	if l.Title != "General Science for Grade 2" {
		t.Errorf("unexpected title %q", l.Title)
	}
	if l.Content != "Written in Bengali." {
		t.Errorf("unexpected content %q", l.Content)
	}
	if len(l.Sources) != 1 {
		t.Errorf("expected deduped sources, got %v", l.Sources)
	}
	if !l.HasNarration() {
		t.Error("expected narration")
	}

	if lessons, _ := store.List(ctx); len(lessons) != 0 {
		t.Errorf("generated lesson should not be cached, found %d", len(lessons))
	}
}

func TestServiceAuthorSaves(t *testing.T) {
	svc, store := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	l, err := svc.Author(ctx, 4, Mathematics, "Fractions")
	if err != nil {
		t.Fatalf("Author() error = %v", err)
	}

	got, err := store.Find(ctx, 4, Mathematics)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got.ID != l.ID || got.Title != "Fractions" || got.Topic != "Fractions" {
		t.Errorf("unexpected stored lesson: %+v", got)
	}
}

func TestServiceDegradesWithoutMedia(t *testing.T) {
	gen := &fakeGenerator{imageErr: errors.New("quota"), speechErr: errors.New("quota")}
	svc, _ := newTestService(t, gen)

	l, err := svc.Lesson(context.Background(), 0, Bengali)
	if err != nil {
		t.Fatalf("Lesson() error = %v", err)
	}
	if l.ImageURL != "" || l.AudioData != "" {
		t.Errorf("expected no media, got image=%q audio=%q", l.ImageURL, l.AudioData)
	}
	if l.Content == "" {
		t.Error("expected content despite media failures")
	}
}

func TestServiceWithoutGenerator(t *testing.T) {
	svc, _ := newTestService(t, nil)

	if _, err := svc.Lesson(context.Background(), 1, Art); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("expected ErrNoGenerator, got %v", err)
	}
	if _, err := svc.Quiz(context.Background(), Lesson{}); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("expected ErrNoGenerator, got %v", err)
	}
}

func TestServiceQuiz(t *testing.T) {
	gen := &fakeGenerator{quiz: []byte(sampleQuiz)}
	svc, _ := newTestService(t, gen)

	quiz, err := svc.Quiz(context.Background(), Lesson{ID: "l1", Content: "stuff"})
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if quiz.LessonID != "l1" || len(quiz.Questions) != 2 {
		t.Errorf("unexpected quiz: %+v", quiz)
	}
}

func TestServiceStoredQuizWithoutGenerator(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	authored, err := ParseQuiz("", []byte(sampleQuiz))
	if err != nil {
		t.Fatal(err)
	}
	l := Lesson{Grade: 1, Subject: Mathematics, Title: "Sums", Content: "2 + 2 = 4", Questions: authored.Questions}
	if err := store.Save(ctx, &l); err != nil {
		t.Fatal(err)
	}

	stored, err := svc.Lesson(ctx, 1, Mathematics)
	if err != nil {
		t.Fatalf("Lesson() error = %v", err)
	}
	if !svc.QuizAvailable(stored) {
		t.Error("expected stored quiz to be available")
	}

	quiz, err := svc.Quiz(ctx, stored)
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if quiz.LessonID != l.ID || len(quiz.Questions) != 2 {
		t.Errorf("unexpected quiz: %+v", quiz)
	}
}

func TestServiceQuizAvailable(t *testing.T) {
	withoutGen, _ := newTestService(t, nil)
	if withoutGen.QuizAvailable(Lesson{}) {
		t.Error("expected no quiz without questions or generator")
	}

	withGen, _ := newTestService(t, &fakeGenerator{})
	if !withGen.QuizAvailable(Lesson{}) {
		t.Error("expected quiz available with a generator")
	}
}
