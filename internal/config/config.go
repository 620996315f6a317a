package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

const (
	// ErrCodeNotFound means an explicitly given config file does not exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the config file cannot be read or parsed, or a value is out of bounds.
	ErrCodeInvalid = "config_invalid"
)

const (
	DefaultSearchURL         = "http://localhost:8000"
	DefaultProxyURL          = "http://localhost:3000"
	DefaultAddr              = ":3000"
	DefaultTimeoutSeconds    = 30
	DefaultPosterConcurrency = 4
	DefaultLogLevel          = "info"

	maxPosterConcurrency = 16
)

// Environment variables consulted by Load.
const (
	EnvSearchURL = "MOVIEGRID_SEARCH_URL"
	EnvProxyURL  = "MOVIEGRID_PROXY_URL"
	EnvPort      = "PORT"
	EnvLogLevel  = "MOVIEGRID_LOG_LEVEL"
)

// FileConfig is the on-disk shape, in YAML or TOML. Zero values mean "not set".
type FileConfig struct {
	SearchURL            string `yaml:"search_url" toml:"search_url"`
	ProxyURL             string `yaml:"proxy_url" toml:"proxy_url"`
	Addr                 string `yaml:"addr" toml:"addr"`
	SearchTimeoutSeconds int    `yaml:"search_timeout_seconds" toml:"search_timeout_seconds"`
	ProxyTimeoutSeconds  int    `yaml:"proxy_timeout_seconds" toml:"proxy_timeout_seconds"`
	PosterConcurrency    int    `yaml:"poster_concurrency" toml:"poster_concurrency"`
	Posters              *bool  `yaml:"posters" toml:"posters"`
	LogLevel             string `yaml:"log_level" toml:"log_level"`
}

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	SearchURL string
	ProxyURL  string
	Addr      string
	LogLevel  string
	NoPosters bool
}

// Config is the merged, validated configuration.
type Config struct {
	// SearchURL is the base of the vector-search API (POST /query).
	SearchURL string
	// ProxyURL is the origin serving /proxy-image, as seen by clients.
	ProxyURL string
	// Addr is the listen address of the web server.
	Addr string

	SearchTimeout time.Duration
	ProxyTimeout  time.Duration

	Posters           bool
	PosterConcurrency int

	LogLevel string
}

// Error is a configuration failure with a stable code.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Path)
	default:
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code, or "" when err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SearchURL:         DefaultSearchURL,
		ProxyURL:          DefaultProxyURL,
		Addr:              DefaultAddr,
		SearchTimeout:     DefaultTimeoutSeconds * time.Second,
		ProxyTimeout:      DefaultTimeoutSeconds * time.Second,
		Posters:           true,
		PosterConcurrency: DefaultPosterConcurrency,
		LogLevel:          DefaultLogLevel,
	}
}

// Load merges defaults, the optional file at path, the environment and
// ov, in increasing precedence. getenv may be nil to ignore the
// environment.
func Load(path string, getenv func(string) string, ov Overrides) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := applyFile(&cfg, fc); err != nil {
			return Config{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
		}
	}

	if getenv != nil {
		applyEnv(&cfg, getenv)
	}
	applyOverrides(&cfg, ov)

	if err := validate(&cfg); err != nil {
		return Config{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return cfg, nil
}

func readFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, &Error{Code: ErrCodeNotFound, Path: path, Err: err}
		}
		return fc, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	case ".toml":
		err = toml.Unmarshal(b, &fc)
	default:
		err = fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}
	if err != nil {
		return FileConfig{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return fc, nil
}

func applyFile(cfg *Config, fc FileConfig) error {
	if s := strings.TrimSpace(fc.SearchURL); s != "" {
		cfg.SearchURL = s
	}
	if s := strings.TrimSpace(fc.ProxyURL); s != "" {
		cfg.ProxyURL = s
	}
	if s := strings.TrimSpace(fc.Addr); s != "" {
		cfg.Addr = s
	}
	if fc.SearchTimeoutSeconds < 0 || fc.ProxyTimeoutSeconds < 0 {
		return errors.New("timeouts must be positive")
	}
	if fc.SearchTimeoutSeconds > 0 {
		cfg.SearchTimeout = time.Duration(fc.SearchTimeoutSeconds) * time.Second
	}
	if fc.ProxyTimeoutSeconds > 0 {
		cfg.ProxyTimeout = time.Duration(fc.ProxyTimeoutSeconds) * time.Second
	}
	if fc.PosterConcurrency != 0 {
		cfg.PosterConcurrency = fc.PosterConcurrency
	}
	if fc.Posters != nil {
		cfg.Posters = *fc.Posters
	}
	if s := strings.TrimSpace(fc.LogLevel); s != "" {
		cfg.LogLevel = s
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvSearchURL)); v != "" {
		cfg.SearchURL = v
	}
	if v := strings.TrimSpace(getenv(EnvProxyURL)); v != "" {
		cfg.ProxyURL = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		cfg.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.SearchURL != "" {
		cfg.SearchURL = ov.SearchURL
	}
	if ov.ProxyURL != "" {
		cfg.ProxyURL = ov.ProxyURL
	}
	if ov.Addr != "" {
		cfg.Addr = ov.Addr
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	if ov.NoPosters {
		cfg.Posters = false
	}
}

func validate(cfg *Config) error {
	if err := checkBaseURL("search_url", cfg.SearchURL); err != nil {
		return err
	}
	if err := checkBaseURL("proxy_url", cfg.ProxyURL); err != nil {
		return err
	}
	cfg.SearchURL = strings.TrimRight(cfg.SearchURL, "/")
	cfg.ProxyURL = strings.TrimRight(cfg.ProxyURL, "/")

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.PosterConcurrency < 1 {
		cfg.PosterConcurrency = 1
	}
	if cfg.PosterConcurrency > maxPosterConcurrency {
		cfg.PosterConcurrency = maxPosterConcurrency
	}
	return nil
}

func checkBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be http or https: %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", name, raw)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}
