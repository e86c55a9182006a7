package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 40
	ButtonGap    = 12

	NothingPlaying = "Nothing playing..."
	DemoLabel      = "Demo Signal"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type AudioConfig struct {
	SampleRate   int           `yaml:"sample_rate"`
	Buffer       time.Duration `yaml:"buffer"`
	DefaultTrack string        `yaml:"default_track"`
	DefaultLabel string        `yaml:"default_label"`
	Loop         bool          `yaml:"loop"`
}

type AnalyserConfig struct {
	FFTSize   int     `yaml:"fft_size"`
	Smoothing float64 `yaml:"smoothing"`
	MinDB     float64 `yaml:"min_db"`
	MaxDB     float64 `yaml:"max_db"`
}

type SceneConfig struct {
	StarCount   int     `yaml:"star_count"`
	StarSpread  float64 `yaml:"star_spread"`
	FogDensity  float64 `yaml:"fog_density"`
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
	Light       string  `yaml:"light"`
	LightPower  float64 `yaml:"light_intensity"`
	Ambient     float64 `yaml:"ambient"`
}

// AnimationConfig holds the free aesthetic parameters of the per-frame mapping.
type AnimationConfig struct {
	PhaseScale float64 `yaml:"phase_scale"`
	HueOffset  float64 `yaml:"hue_offset"`
	ScaleBase  float64 `yaml:"scale_base"`
	RotationX  float64 `yaml:"rotation_step_x"`
	RotationY  float64 `yaml:"rotation_step_y"`
}

type UIConfig struct {
	ErrorDuration time.Duration `yaml:"error_duration"`
}

type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Window    WindowConfig    `yaml:"window"`
	Audio     AudioConfig     `yaml:"audio"`
	Analyser  AnalyserConfig  `yaml:"analyser"`
	Scene     SceneConfig     `yaml:"scene"`
	Animation AnimationConfig `yaml:"animation"`
	UI        UIConfig        `yaml:"ui"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "cubeviz - Space: Play/Pause, click the cube to toggle, Esc/Q: Quit",
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Buffer:     time.Second / 20,
			Loop:       true,
		},
		Analyser: AnalyserConfig{
			FFTSize:   512,
			Smoothing: 0.8,
			MinDB:     -100,
			MaxDB:     -30,
		},
		Scene: SceneConfig{
			StarCount:   10000,
			StarSpread:  750,
			FogDensity:  0.0015,
			FOV:         75,
			Near:        0.1,
			Far:         5000,
			Distance:    5,
			MinDistance: 1.5,
			MaxDistance: 50,
			ZoomSpeed:   0.5,
			Light:       "directional",
			LightPower:  1.5,
			Ambient:     0.2,
		},
		Animation: AnimationConfig{
			PhaseScale: 0.00005,
			HueOffset:  0.95,
			ScaleBase:  0.75,
			RotationX:  0.04,
			RotationY:  0.025,
		},
		UI: UIConfig{
			ErrorDuration: 2 * time.Second,
		},
	}
}

// LoadFromFile overlays the YAML document at path onto c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// TryLoadDefault loads the first config found in the usual user locations and
// returns its path, or "" when none exists.
func (c *Config) TryLoadDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	paths := []string{
		filepath.Join(home, ".config", "cubeviz", "config.yaml"),
		filepath.Join(home, ".config", "cubeviz", "config.yml"),
		filepath.Join(home, ".cubeviz.yaml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, c.LoadFromFile(p)
		}
	}
	return "", nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Audio.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("audio.buffer must be positive, got %s", c.Audio.Buffer))
	}
	if n := c.Analyser.FFTSize; n < 32 || n > 32768 || n&(n-1) != 0 {
		errs = append(errs, fmt.Errorf("analyser.fft_size must be a power of two in [32, 32768], got %d", n))
	}
	if c.Analyser.Smoothing < 0 || c.Analyser.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("analyser.smoothing must be in [0, 1], got %g", c.Analyser.Smoothing))
	}
	if c.Analyser.MinDB >= c.Analyser.MaxDB {
		errs = append(errs, fmt.Errorf("analyser.min_db (%g) must be below max_db (%g)", c.Analyser.MinDB, c.Analyser.MaxDB))
	}
	if c.Scene.StarCount < 0 {
		errs = append(errs, fmt.Errorf("scene.star_count must not be negative, got %d", c.Scene.StarCount))
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		errs = append(errs, fmt.Errorf("scene clip planes invalid: near=%g far=%g", c.Scene.Near, c.Scene.Far))
	}
	if c.Scene.MinDistance <= 0 || c.Scene.MaxDistance < c.Scene.MinDistance {
		errs = append(errs, fmt.Errorf("scene zoom range invalid: [%g, %g]", c.Scene.MinDistance, c.Scene.MaxDistance))
	}
	switch c.Scene.Light {
	case "directional", "ambient":
	default:
		errs = append(errs, fmt.Errorf("scene.light must be directional or ambient, got %q", c.Scene.Light))
	}
	if c.UI.ErrorDuration <= 0 {
		errs = append(errs, fmt.Errorf("ui.error_duration must be positive, got %s", c.UI.ErrorDuration))
	}
	return errors.Join(errs...)
}
