package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
log_level: debug
audio:
  default_track: /music/song.mp3
analyser:
  fft_size: 1024
ui:
  error_duration: 3s
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Audio.DefaultTrack != "/music/song.mp3" {
		t.Fatalf("DefaultTrack = %q", cfg.Audio.DefaultTrack)
	}
	if cfg.Analyser.FFTSize != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", cfg.Analyser.FFTSize)
	}
	if cfg.UI.ErrorDuration != 3*time.Second {
		t.Fatalf("ErrorDuration = %s, want 3s", cfg.UI.ErrorDuration)
	}
	// untouched keys keep their defaults
	if cfg.Audio.SampleRate != 44100 {
		t.Fatalf("SampleRate = %d, want 44100", cfg.Audio.SampleRate)
	}
	if cfg.Animation.RotationX != 0.04 {
		t.Fatalf("RotationX = %g, want 0.04", cfg.Animation.RotationX)
	}
}

func TestLoadFromFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("audio: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Default().LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"fft not power of two", func(c *Config) { c.Analyser.FFTSize = 500 }, "fft_size"},
		{"fft too small", func(c *Config) { c.Analyser.FFTSize = 16 }, "fft_size"},
		{"db range inverted", func(c *Config) { c.Analyser.MinDB = -20 }, "min_db"},
		{"smoothing out of range", func(c *Config) { c.Analyser.Smoothing = 1.5 }, "smoothing"},
		{"unknown light", func(c *Config) { c.Scene.Light = "spot" }, "scene.light"},
		{"zero error duration", func(c *Config) { c.UI.ErrorDuration = 0 }, "error_duration"},
		{"bad window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"bad clip planes", func(c *Config) { c.Scene.Far = 0.01 }, "clip planes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
