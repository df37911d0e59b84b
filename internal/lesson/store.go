// ABOUTME: SQLite-backed lesson cache
// ABOUTME: Persists authored lessons keyed by grade and subject
package lesson

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/amarpathshala/pathshala-go/internal/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no lesson matches
var ErrNotFound = errors.New("lesson not found")

// Store wraps a SQLite lesson table
type Store struct {
	db    *sql.DB
	log   *slog.Logger
	clock func() time.Time
}

// Open creates the data directory and schema if needed
func Open(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path must not be empty")
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, log: log, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	log.Debug("lesson store opened", slog.String("path", cfg.Path))
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS lessons (
    id TEXT PRIMARY KEY,
    grade INTEGER NOT NULL,
    subject TEXT NOT NULL,
    topic TEXT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    image_url TEXT,
    audio_data TEXT,
    language TEXT,
    sources TEXT,
    quiz TEXT,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lessons_grade_subject ON lessons(grade, subject, created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return err
	}
	return s.addColumn(ctx, "quiz", "TEXT")
}

// addColumn upgrades lesson tables created before column existed
func (s *Store) addColumn(ctx context.Context, column, typ string) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('lessons') WHERE name = ?`, column).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	s.log.Info("upgrading lesson table", slog.String("column", column))
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE lessons ADD COLUMN %s %s`, column, typ))
	return err
}

// Close releases underlying resources
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts or replaces a lesson. A missing ID or timestamp is filled in.
func (s *Store) Save(ctx context.Context, l *Lesson) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("lesson store: missing database connection")
	}
	if !l.Grade.Valid() {
		return fmt.Errorf("invalid grade %d", l.Grade)
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.clock().UTC()
	}

	sources, err := json.Marshal(l.Sources)
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	var quiz sql.NullString
	if len(l.Questions) > 0 {
		data, err := json.Marshal(l.Questions)
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		quiz = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lessons (id, grade, subject, topic, title, content, image_url, audio_data, language, sources, quiz, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			grade=excluded.grade,
			subject=excluded.subject,
			topic=excluded.topic,
			title=excluded.title,
			content=excluded.content,
			image_url=excluded.image_url,
			audio_data=excluded.audio_data,
			language=excluded.language,
			sources=excluded.sources,
			quiz=excluded.quiz
	`,
		l.ID, int(l.Grade), string(l.Subject), l.Topic, l.Title, l.Content,
		l.ImageURL, l.AudioData, l.Language, string(sources), quiz, l.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}

	s.log.Info("lesson saved", slog.String("id", l.ID), slog.String("title", l.Title))
	return nil
}

const selectColumns = `SELECT id, grade, subject, topic, title, content, image_url, audio_data, language, sources, quiz, created_at FROM lessons`

// Get loads one lesson by ID
func (s *Store) Get(ctx context.Context, id string) (Lesson, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	return scanLesson(row)
}

// Find returns the most recently authored lesson for a grade and subject
func (s *Store) Find(ctx context.Context, grade Grade, subject Subject) (Lesson, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` WHERE grade = ? AND subject = ? ORDER BY created_at DESC LIMIT 1`,
		int(grade), string(subject))
	return scanLesson(row)
}

// List returns every lesson ordered by grade, subject and age
func (s *Store) List(ctx context.Context) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY grade, subject, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// Delete removes a lesson, returning ErrNotFound if it did not exist
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("lesson deleted", slog.String("id", id))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(row scanner) (Lesson, error) {
	var (
		l         Lesson
		grade     int
		subject   string
		topic     sql.NullString
		imageURL  sql.NullString
		audioData sql.NullString
		language  sql.NullString
		sources   sql.NullString
		quiz      sql.NullString
		created   int64
	)
	err := row.Scan(&l.ID, &grade, &subject, &topic, &l.Title, &l.Content,
		&imageURL, &audioData, &language, &sources, &quiz, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrNotFound
	}
	if err != nil {
		return l, err
	}

	l.Grade = Grade(grade)
	l.Subject = Subject(subject)
	l.Topic = topic.String
	l.ImageURL = imageURL.String
	l.AudioData = audioData.String
	l.Language = language.String
	l.CreatedAt = time.Unix(0, created).UTC()

	if sources.String != "" && sources.String != "null" {
		if err := json.Unmarshal([]byte(sources.String), &l.Sources); err != nil {
			return l, fmt.Errorf("decode sources for %s: %w", l.ID, err)
		}
	}
	if quiz.String != "" {
		if err := json.Unmarshal([]byte(quiz.String), &l.Questions); err != nil {
			return l, fmt.Errorf("decode quiz for %s: %w", l.ID, err)
		}
	}

	return l, nil
}
