package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sl/internal/config"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want config.Config
		err  bool
	}{
		{"empty", "", config.Default(), false},
		{"override", "gc_interval: 0\nmax_steps: 500\n", config.Config{GCInterval: 0, MaxSteps: 500, MaxDepth: 10000}, false},
		{"flags", "no_color: true\nverbose: true\ndump_ast: true\n", config.Config{GCInterval: 0.8, MaxDepth: 10000, NoColor: true, Verbose: true, DumpAST: true}, false},
		{"unknown key", "gc: 1\n", config.Config{}, true},
		{"bad type", "max_steps: many\n", config.Config{}, true},
		{"negative steps", "max_steps: -1\n", config.Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Parse(strings.NewReader(tt.src))
			if tt.err {
				if err == nil {
					t.Errorf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = -5
	if err := cfg.Validate(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sl.yaml")
	if err := os.WriteFile(path, []byte("gc_interval: -1\nmax_depth: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GCInterval != -1 || cfg.MaxDepth != 64 {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSteps = 42

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "max_steps: 42") {
		t.Errorf("expected max_steps in output, got %q", buf.String())
	}

	got, err := config.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != cfg {
		t.Errorf("expected %+v, got %+v", cfg, got)
	}
}
