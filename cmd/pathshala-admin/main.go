// ABOUTME: Lesson authoring tool for Amar Pathshala administrators
// ABOUTME: PIN-gated add, list and delete over the lesson store
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amarpathshala/pathshala-go/internal/admin"
	"github.com/amarpathshala/pathshala-go/internal/config"
	"github.com/amarpathshala/pathshala-go/internal/lesson"
	"github.com/amarpathshala/pathshala-go/internal/version"
	"github.com/amarpathshala/pathshala-go/pkg/audio/decode"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pathshala-admin <add|list|delete|hash-pin|version> [flags]")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "hash-pin":
		err = runHashPIN(os.Stdin, os.Stdout)
	case "version":
		fmt.Printf("%s admin %s\n", version.Product, version.Version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// common holds the flags every store command takes
type common struct {
	configPath string
	pin        string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to YAML config file")
	fs.StringVar(&c.pin, "pin", "", "Admin PIN (default: $PATHSHALA_ADMIN_PIN or prompt)")
}

// open checks the PIN against cfg and opens the store
func (c *common) open(ctx context.Context, cfg config.Config) (*lesson.Store, error) {
	pin := c.pin
	if pin == "" {
		pin = os.Getenv("PATHSHALA_ADMIN_PIN")
	}
	if pin == "" {
		var err error
		if pin, err = prompt(os.Stdin, os.Stderr, "Admin PIN: "); err != nil {
			return nil, err
		}
	}

	if err := admin.NewGate(cfg.Admin).Verify(pin); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return lesson.Open(ctx, cfg.Store, logger)
}

// loadAndOpen loads the config file and opens the store
func (c *common) loadAndOpen(ctx context.Context) (*lesson.Store, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	return c.open(ctx, cfg)
}

// addFlags are the lesson fields taken by the add command
type addFlags struct {
	grade       int
	subject     string
	topic       string
	title       string
	contentFile string
	payloadFile string
	quizFile    string
	imageURL    string
	language    string
}

func runAdd(args []string) error {
	var (
		c common
		f addFlags
	)
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	c.register(fs)
	fs.IntVar(&f.grade, "grade", -1, "Grade, 0 = K")
	fs.StringVar(&f.subject, "subject", "", "Subject name")
	fs.StringVar(&f.topic, "topic", "", "Lesson topic")
	fs.StringVar(&f.title, "title", "", "Lesson title")
	fs.StringVar(&f.contentFile, "content-file", "", "File with the lesson text")
	fs.StringVar(&f.payloadFile, "payload-file", "", "File with base64 24 kHz mono PCM narration")
	fs.StringVar(&f.quizFile, "quiz-file", "", "JSON file with [{question, options, correctAnswer}]")
	fs.StringVar(&f.imageURL, "image", "", "Illustration data URL or http(s) URL")
	fs.StringVar(&f.language, "language", "", "Lesson language (default from config)")
	fs.Parse(args)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	l, err := buildLesson(f, cfg.Lesson)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := c.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, &l); err != nil {
		return err
	}
	fmt.Println(l.ID)
	return nil
}

// buildLesson validates the add flags. A narration payload must decode
// and a quiz must parse before either is stored.
func buildLesson(f addFlags, defaults config.LessonConfig) (lesson.Lesson, error) {
	var l lesson.Lesson

	if !lesson.Grade(f.grade).Valid() {
		return l, fmt.Errorf("-grade must be between 0 and %d", lesson.MaxGrade)
	}
	s, err := lesson.ParseSubject(f.subject)
	if err != nil {
		return l, err
	}
	if f.title == "" || f.contentFile == "" {
		return l, errors.New("-title and -content-file are required")
	}

	content, err := os.ReadFile(f.contentFile)
	if err != nil {
		return l, fmt.Errorf("read content: %w", err)
	}

	l = lesson.Lesson{
		Grade:    lesson.Grade(f.grade),
		Subject:  s,
		Topic:    f.topic,
		Title:    f.title,
		Content:  strings.TrimSpace(string(content)),
		ImageURL: f.imageURL,
		Language: f.language,
	}
	if l.Topic == "" {
		l.Topic = lesson.DefaultTopic(l.Grade, s)
	}
	if l.Language == "" {
		l.Language = defaults.Language
	}

	if f.payloadFile != "" {
		data, err := os.ReadFile(f.payloadFile)
		if err != nil {
			return l, fmt.Errorf("read payload: %w", err)
		}
		l.AudioData = strings.TrimSpace(string(data))

		buf, err := decode.Narration(l.AudioData)
		if err != nil {
			return l, fmt.Errorf("narration payload: %w", err)
		}
		fmt.Fprintf(os.Stderr, "narration: %s\n", buf.Duration())
	}

	if f.quizFile != "" {
		data, err := os.ReadFile(f.quizFile)
		if err != nil {
			return l, fmt.Errorf("read quiz: %w", err)
		}
		quiz, err := lesson.ParseQuiz("", data)
		if err != nil {
			return l, err
		}
		l.Questions = quiz.Questions
		fmt.Fprintf(os.Stderr, "quiz: %d questions\n", len(quiz.Questions))
	}

	return l, nil
}

func runList(args []string) error {
	var c common
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	c.register(fs)
	fs.Parse(args)

	ctx := context.Background()
	store, err := c.loadAndOpen(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	lessons, err := store.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRADE\tSUBJECT\tTITLE\tAUDIO\tQUIZ\tCREATED")
	for _, l := range lessons {
		audio := "-"
		if l.HasNarration() {
			audio = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			l.ID, l.Grade, l.Subject, l.Title, audio, len(l.Questions), l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runDelete(args []string) error {
	var (
		c  common
		id string
	)
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	c.register(fs)
	fs.StringVar(&id, "id", "", "Lesson ID")
	fs.Parse(args)

	if id == "" {
		return errors.New("-id is required")
	}

	ctx := context.Background()
	store, err := c.loadAndOpen(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Delete(ctx, id)
}

// runHashPIN prints a bcrypt hash for the admin.pin_hash config key
func runHashPIN(in io.Reader, out io.Writer) error {
	pin, err := prompt(in, os.Stderr, "New admin PIN: ")
	if err != nil {
		return err
	}

	hash, err := admin.HashPIN(pin)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hash)
	return nil
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
