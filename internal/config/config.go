// ABOUTME: Application configuration
// ABOUTME: Loads YAML config with PATHSHALA_* environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type AudioConfig struct {
	// Backend is "oto" for the system device or "memory" for a silent, simulated output
	Backend string `yaml:"backend"`
	Volume  int    `yaml:"volume"`
	Muted   bool   `yaml:"muted"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type IllustrationConfig struct {
	CacheDir string `yaml:"cache_dir"`
}

type LessonConfig struct {
	Language string `yaml:"language"`
	Voice    string `yaml:"voice"`
}

type AdminConfig struct {
	// PINHash is a bcrypt hash, see `pathshala-admin hash-pin`
	PINHash string `yaml:"pin_hash"`
}

type Config struct {
	Log          LogConfig          `yaml:"log"`
	Audio        AudioConfig        `yaml:"audio"`
	Store        StoreConfig        `yaml:"store"`
	Illustration IllustrationConfig `yaml:"illustration"`
	Lesson       LessonConfig       `yaml:"lesson"`
	Admin        AdminConfig        `yaml:"admin"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			File:  "pathshala.log",
			Level: "info",
		},
		Audio: AudioConfig{
			Backend: "oto",
			Volume:  100,
		},
		Store: StoreConfig{
			Path: "pathshala.db",
		},
		Illustration: IllustrationConfig{
			CacheDir: filepath.Join(os.TempDir(), "pathshala-illustrations"),
		},
		Lesson: LessonConfig{
			Language: "Bengali",
			Voice:    "Kore",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment overrides
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Log.File, "PATHSHALA_LOG_FILE")
	overrideString(&cfg.Log.Level, "PATHSHALA_LOG_LEVEL")
	overrideString(&cfg.Audio.Backend, "PATHSHALA_AUDIO_BACKEND")
	overrideInt(&cfg.Audio.Volume, "PATHSHALA_AUDIO_VOLUME")
	overrideBool(&cfg.Audio.Muted, "PATHSHALA_AUDIO_MUTED")
	overrideString(&cfg.Store.Path, "PATHSHALA_STORE_PATH")
	overrideString(&cfg.Illustration.CacheDir, "PATHSHALA_ILLUSTRATION_CACHE_DIR")
	overrideString(&cfg.Lesson.Language, "PATHSHALA_LESSON_LANGUAGE")
	overrideString(&cfg.Lesson.Voice, "PATHSHALA_LESSON_VOICE")
	overrideString(&cfg.Admin.PINHash, "PATHSHALA_ADMIN_PIN_HASH")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Audio.Backend {
	case "oto", "memory":
	default:
		return errors.New("audio.backend must be one of oto|memory")
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 100 {
		return errors.New("audio.volume must be between 0 and 100")
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug|info|warn|error")
	}
	if cfg.Store.Path == "" {
		return errors.New("store.path must not be empty")
	}
	if cfg.Illustration.CacheDir == "" {
		return errors.New("illustration.cache_dir must not be empty")
	}
	switch cfg.Lesson.Voice {
	case "Kore", "Puck":
	default:
		return errors.New("lesson.voice must be one of Kore|Puck")
	}
	return nil
}
