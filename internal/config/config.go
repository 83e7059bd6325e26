// internal/config/config.go
//
// Process configuration.
//
// Sources, lowest to highest precedence:
//   1. Built-in defaults (Default()).
//   2. Optional JSON file named by CONFIG_FILE (koanf file provider).
//   3. Environment variables, including those loaded from `.env` by godotenv.
//
// Environment variables:
//   PORT, LOG_LEVEL, SCORING_MODE (remote|local), SCORING_BASE_URL,
//   SCORING_TIMEOUT, LOCAL_ANSWER, DAILY_SALT, WORDS_FILE, DB_PATH,
//   CLIENT_ORIGIN, REQUEST_TIMEOUT, MAX_ATTEMPTS

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Scoring modes.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Config holds every tunable of the service.
type Config struct {
	Port           string        `json:"port"`
	LogLevel       string        `json:"log_level"`
	ScoringMode    string        `json:"scoring_mode"`
	ScoringBaseURL string        `json:"scoring_base_url"`
	ScoringTimeout time.Duration `json:"scoring_timeout"`
	LocalAnswer    string        `json:"local_answer"`
	DailySalt      string        `json:"daily_salt"`
	WordsFile      string        `json:"words_file"` // empty: embedded list
	DBPath         string        `json:"db_path"`    // empty: in-memory history
	ClientOrigin   string        `json:"client_origin"`
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxAttempts    int           `json:"max_attempts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		ScoringMode:    ModeRemote,
		ScoringBaseURL: "https://wordle.votee.dev:8000",
		ScoringTimeout: 10 * time.Second,
		DailySalt:      "local_dev_salt",
		ClientOrigin:   "*",
		RequestTimeout: 60 * time.Second,
		MaxAttempts:    100,
	}
}

// Load reads `.env` (if present), the optional CONFIG_FILE and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

// load builds a Config using getenv for lookups, so tests can inject values.
func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("CONFIG_FILE"); path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
			return Config{}, fmt.Errorf("unmarshal config file: %w", err)
		}
	}

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("SCORING_MODE", &cfg.ScoringMode)
	str("SCORING_BASE_URL", &cfg.ScoringBaseURL)
	str("LOCAL_ANSWER", &cfg.LocalAnswer)
	str("DAILY_SALT", &cfg.DailySalt)
	str("WORDS_FILE", &cfg.WordsFile)
	str("DB_PATH", &cfg.DBPath)
	str("CLIENT_ORIGIN", &cfg.ClientOrigin)

	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	dur("SCORING_TIMEOUT", &cfg.ScoringTimeout)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)

	if v := strings.TrimSpace(getenv("MAX_ATTEMPTS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MAX_ATTEMPTS: %w", err))
		} else {
			cfg.MaxAttempts = n
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration values the service cannot run with.
func (c Config) Validate() error {
	switch c.ScoringMode {
	case ModeRemote, ModeLocal:
	default:
		return fmt.Errorf("scoring_mode must be %q or %q, got %q", ModeRemote, ModeLocal, c.ScoringMode)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	return nil
}
