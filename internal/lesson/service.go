// ABOUTME: Lesson lookup and authoring
// ABOUTME: Serves cached lessons and drives the external generator on a miss
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amarpathshala/pathshala-go/internal/config"
)

// ErrNoGenerator is returned on a cache miss when no generator is configured
var ErrNoGenerator = errors.New("no lesson generator configured")

// Generated is raw model output for a lesson
type Generated struct {
	Text    string
	Sources []Source
}

// Generator is the external content service. Implementations talk to the
// generative AI API; nothing in this module does content generation.
type Generator interface {
	// Content writes lesson text formatted with TITLE:/CONTENT: markers
	Content(ctx context.Context, grade Grade, subject Subject, topic, language string) (Generated, error)

	// Image returns an image reference (data URL or http URL), or "" for none
	Image(ctx context.Context, title, content string) (string, error)

	// Speech returns base64 24 kHz mono 16-bit PCM narration
	Speech(ctx context.Context, text, voice string) (string, error)

	// Quiz returns a JSON array of {question, options, correctAnswer}
	Quiz(ctx context.Context, content, language string) ([]byte, error)
}

// Service combines the cache and the generator
type Service struct {
	store *Store
	gen   Generator
	cfg   config.LessonConfig
	log   *slog.Logger
}

// NewService creates a lesson service. gen may be nil, in which case only
// cached lessons are available.
func NewService(store *Store, gen Generator, cfg config.LessonConfig, log *slog.Logger) *Service {
	return &Service{
		store: store,
		gen:   gen,
		cfg:   cfg,
		log:   log,
	}
}

// Lesson returns the cached lesson for grade and subject, generating a
// fresh one on a miss. Generated lessons are not cached; see Author.
func (s *Service) Lesson(ctx context.Context, grade Grade, subject Subject) (Lesson, error) {
	l, err := s.store.Find(ctx, grade, subject)
	if err == nil {
		s.log.Debug("lesson cache hit", slog.String("id", l.ID))
		return l, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Lesson{}, err
	}

	return s.generate(ctx, grade, subject, DefaultTopic(grade, subject))
}

// Author generates a lesson on topic and saves it to the cache
func (s *Service) Author(ctx context.Context, grade Grade, subject Subject, topic string) (Lesson, error) {
	if topic == "" {
		topic = DefaultTopic(grade, subject)
	}

	l, err := s.generate(ctx, grade, subject, topic)
	if err != nil {
		return Lesson{}, err
	}

	if err := s.store.Save(ctx, &l); err != nil {
		return Lesson{}, err
	}
	return l, nil
}

// Quiz returns the quiz authored with l, or asks the generator for one
func (s *Service) Quiz(ctx context.Context, l Lesson) (Quiz, error) {
	if len(l.Questions) > 0 {
		return Quiz{LessonID: l.ID, Questions: l.Questions}, nil
	}
	if s.gen == nil {
		return Quiz{}, ErrNoGenerator
	}

	data, err := s.gen.Quiz(ctx, l.Content, s.cfg.Language)
	if err != nil {
		return Quiz{}, fmt.Errorf("generate quiz: %w", err)
	}
	return ParseQuiz(l.ID, data)
}

// QuizAvailable reports whether Quiz can succeed for l
func (s *Service) QuizAvailable(l Lesson) bool {
	return len(l.Questions) > 0 || s.gen != nil
}

// generate writes the text, then the illustration and narration. Only a
// text failure is fatal; a lesson without picture or sound still reads.
func (s *Service) generate(ctx context.Context, grade Grade, subject Subject, topic string) (Lesson, error) {
	if s.gen == nil {
		return Lesson{}, fmt.Errorf("%w: grade %s %s", ErrNoGenerator, grade, subject)
	}
	if !grade.Valid() {
		return Lesson{}, fmt.Errorf("invalid grade %d", grade)
	}

	out, err := s.gen.Content(ctx, grade, subject, topic, s.cfg.Language)
	if err != nil {
		return Lesson{}, fmt.Errorf("generate content: %w", err)
	}

	title, content := ParseGenerated(out.Text)
	l := Lesson{
		Grade:    grade,
		Subject:  subject,
		Topic:    topic,
		Title:    title,
		Content:  content,
		Language: s.cfg.Language,
		Sources:  DedupeSources(out.Sources),
	}

	if l.ImageURL, err = s.gen.Image(ctx, title, content); err != nil {
		s.log.Warn("illustration generation failed", slog.String("title", title), slog.String("error", err.Error()))
	}

	if l.AudioData, err = s.gen.Speech(ctx, content, s.cfg.Voice); err != nil {
		s.log.Warn("narration generation failed", slog.String("title", title), slog.String("error", err.Error()))
	}

	return l, nil
}
