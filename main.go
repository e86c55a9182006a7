package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cubeviz/internal/config"
	"github.com/iburimskiy/cubeviz/internal/control"
	"github.com/iburimskiy/cubeviz/internal/game"
	"github.com/iburimskiy/cubeviz/internal/playback"
	"github.com/iburimskiy/cubeviz/internal/scene"
	"github.com/iburimskiy/cubeviz/internal/spectrum"
	"github.com/iburimskiy/cubeviz/internal/visualizer"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (default: ~/.config/cubeviz/config.yaml)")
	file := flag.String("file", "", "Audio file to play on start")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "cubeviz",
	})

	cfg := config.Default()
	if path, err := cfg.TryLoadDefault(); err != nil {
		logger.Fatal("loading config", "path", path, "err", err)
	} else if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	if *configFile != "" {
		if err := cfg.LoadFromFile(*configFile); err != nil {
			logger.Fatal("loading config", "path", *configFile, "err", err)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.LogLevel, "err", err)
	}
	logger.SetLevel(level)

	if err := run(cfg, *file, logger); err != nil {
		logger.Fatal("exiting", "err", err)
	}
}

func run(cfg *config.Config, startFile string, logger *log.Logger) error {
	sampleRate := beep.SampleRate(cfg.Audio.SampleRate)
	session, err := playback.NewSession(playback.Speaker(), playback.Config{
		SampleRate: sampleRate,
		Buffer:     cfg.Audio.Buffer,
		Loop:       cfg.Audio.Loop,
		Analyser: spectrum.Config{
			FFTSize:   cfg.Analyser.FFTSize,
			Smoothing: cfg.Analyser.Smoothing,
			MinDB:     cfg.Analyser.MinDB,
			MaxDB:     cfg.Analyser.MaxDB,
		},
	}, logger.With("component", "playback"))
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing audio", "err", err)
		}
	}()

	sc, meshID := scene.Build(sceneOptions(cfg), rand.New(rand.NewSource(time.Now().UnixNano())))

	defaultSource, err := defaultTrack(cfg, sampleRate)
	if err != nil {
		return fmt.Errorf("default track: %w", err)
	}
	ctrl := control.New(session, sc, meshID, control.Options{
		DefaultSource: defaultSource,
		ErrorDuration: cfg.UI.ErrorDuration,
		ZoomSpeed:     float32(cfg.Scene.ZoomSpeed),
		InitialLabel:  config.NothingPlaying,
	}, logger.With("component", "control"))

	loop := visualizer.NewLoop(visualizer.Params{
		PhaseScale: cfg.Animation.PhaseScale,
		HueOffset:  cfg.Animation.HueOffset,
		ScaleBase:  cfg.Animation.ScaleBase,
		RotationX:  cfg.Animation.RotationX,
		RotationY:  cfg.Animation.RotationY,
	}, sc, session, session)

	clock := visualizer.SystemClock{}
	g := game.New(ctrl, sc, loop, clock, cfg.Window.Width, cfg.Window.Height, logger.With("component", "game"))

	if startFile != "" {
		if err := ctrl.SelectFile(startFile, clock.Now()); err != nil {
			logger.Error("cannot play start file", "path", startFile, "err", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; ok {
			g.Quit()
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	logger.Debug("stopped", "frames", g.Frames())
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func sceneOptions(cfg *config.Config) scene.Options {
	light := scene.Light{
		Kind:      scene.Directional,
		ToLight:   mgl32.Vec3{0, 0, 1},
		Intensity: float32(cfg.Scene.LightPower),
		Ambient:   float32(cfg.Scene.Ambient),
	}
	if cfg.Scene.Light == "ambient" {
		light.Kind = scene.Ambient
	}
	return scene.Options{
		StarCount:  cfg.Scene.StarCount,
		StarSpread: float32(cfg.Scene.StarSpread),
		FogDensity: float32(cfg.Scene.FogDensity),
		MeshScale:  float32(cfg.Animation.ScaleBase),
		Light:      light,
		Camera: scene.CameraOptions{
			FOV:         float32(cfg.Scene.FOV),
			Near:        float32(cfg.Scene.Near),
			Far:         float32(cfg.Scene.Far),
			Distance:    float32(cfg.Scene.Distance),
			MinDistance: float32(cfg.Scene.MinDistance),
			MaxDistance: float32(cfg.Scene.MaxDistance),
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
		},
	}
}

// defaultTrack is the configured file, or the built-in demo signal when none
// is set.
func defaultTrack(cfg *config.Config, sr beep.SampleRate) (playback.Source, error) {
	if cfg.Audio.DefaultTrack == "" {
		label := cfg.Audio.DefaultLabel
		if label == "" {
			label = config.DemoLabel
		}
		return playback.DemoSource(label, sr), nil
	}
	mime, err := control.DetectMIME(cfg.Audio.DefaultTrack)
	if err != nil {
		return playback.Source{}, err
	}
	src, err := playback.FileSource(cfg.Audio.DefaultTrack, mime)
	if err != nil {
		return playback.Source{}, err
	}
	if cfg.Audio.DefaultLabel != "" {
		src.Label = cfg.Audio.DefaultLabel
	}
	return src, nil
}
