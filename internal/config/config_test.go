package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, "moviegrid.yaml", `
search_url: http://search.lan:8000/
proxy_url: https://posters.lan
addr: ":8080"
search_timeout_seconds: 5
poster_concurrency: 99
posters: false
log_level: DEBUG
`)
	cfg, err := Load(p, nil, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		SearchURL:         "http://search.lan:8000",
		ProxyURL:          "https://posters.lan",
		Addr:              ":8080",
		SearchTimeout:     5 * time.Second,
		ProxyTimeout:      DefaultTimeoutSeconds * time.Second,
		Posters:           false,
		PosterConcurrency: 16,
		LogLevel:          "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.Level())
	}
}

func TestLoad_TOML(t *testing.T) {
	p := writeFile(t, "moviegrid.toml", `
search_url = "http://10.0.0.2:8000"
proxy_timeout_seconds = 7
poster_concurrency = -2
`)
	cfg, err := Load(p, nil, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SearchURL != "http://10.0.0.2:8000" {
		t.Fatalf("unexpected search url %q", cfg.SearchURL)
	}
	if cfg.ProxyTimeout != 7*time.Second {
		t.Fatalf("unexpected proxy timeout %v", cfg.ProxyTimeout)
	}
	if cfg.PosterConcurrency != 1 {
		t.Fatalf("expected concurrency clamped to 1, got %d", cfg.PosterConcurrency)
	}
}

func TestLoad_Precedence(t *testing.T) {
	p := writeFile(t, "c.yml", "search_url: http://file:8000\nproxy_url: http://file:3000\nlog_level: warn\n")
	cfg, err := Load(p, env(map[string]string{
		EnvSearchURL: "http://env:8000",
		EnvPort:      "9090",
	}), Overrides{ProxyURL: "http://flag:3000", NoPosters: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SearchURL != "http://env:8000" {
		t.Fatalf("env must override file, got %q", cfg.SearchURL)
	}
	if cfg.ProxyURL != "http://flag:3000" {
		t.Fatalf("flag must override file, got %q", cfg.ProxyURL)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("PORT must set addr, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "warn" || cfg.Posters {
		t.Fatalf("unexpected merge result %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
		ov   Overrides
		code string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, Overrides{}, ErrCodeNotFound},
		{"bad yaml", func(t *testing.T) string { return writeFile(t, "x.yaml", "search_url: [") }, Overrides{}, ErrCodeInvalid},
		{"bad toml", func(t *testing.T) string { return writeFile(t, "x.toml", "search_url = ") }, Overrides{}, ErrCodeInvalid},
		{"unknown format", func(t *testing.T) string { return writeFile(t, "x.json", "{}") }, Overrides{}, ErrCodeInvalid},
		{"negative timeout", func(t *testing.T) string { return writeFile(t, "x.yaml", "search_timeout_seconds: -1") }, Overrides{}, ErrCodeInvalid},
		{"relative url", func(t *testing.T) string { return "" }, Overrides{SearchURL: "localhost:8000"}, ErrCodeInvalid},
		{"no host", func(t *testing.T) string { return "" }, Overrides{ProxyURL: "http://"}, ErrCodeInvalid},
		{"bad level", func(t *testing.T) string { return "" }, Overrides{LogLevel: "loud"}, ErrCodeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path(t), nil, tc.ov)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := Code(err); got != tc.code {
				t.Fatalf("expected code %q, got %q (%v)", tc.code, got, err)
			}
		})
	}
}
