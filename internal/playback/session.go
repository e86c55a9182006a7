// Package playback owns the single audio session of the program: one output,
// one analyser, and the track currently feeding them.
package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"

	"github.com/iburimskiy/cubeviz/internal/spectrum"
)

const (
	tapRingSize     = 8192
	resampleQuality = 4
)

type Config struct {
	SampleRate beep.SampleRate
	Buffer     time.Duration
	Loop       bool
	Analyser   spectrum.Config
}

type track struct {
	label    string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
}

type loadResult struct {
	gen      uint64
	label    string
	streamer beep.StreamSeekCloser
	format   beep.Format
	err      error
}

// Session is not safe for concurrent use: every method except the decoders it
// starts runs on the caller's (main) goroutine.
type Session struct {
	out      Output
	cfg      Config
	log      *log.Logger
	analyser *spectrum.Analyser

	initialized bool
	loading     bool
	gen         uint64
	pending     int
	results     chan loadResult
	cur         *track

	samples []float64
	bins    []uint8
}

func NewSession(out Output, cfg Config, logger *log.Logger) (*Session, error) {
	analyser, err := spectrum.New(cfg.Analyser)
	if err != nil {
		return nil, fmt.Errorf("analyser: %w", err)
	}
	return &Session{
		out:      out,
		cfg:      cfg,
		log:      logger,
		analyser: analyser,
		results:  make(chan loadResult, 8),
		bins:     make([]uint8, analyser.FrequencyBinCount()),
	}, nil
}

// Init opens the output once per session; later calls do nothing.
func (s *Session) Init() error {
	if s.initialized {
		return nil
	}
	bufferSize := s.cfg.SampleRate.N(s.cfg.Buffer)
	if err := s.out.Init(s.cfg.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init audio output: %w", err)
	}
	s.initialized = true
	s.log.Debug("audio output ready", "sample_rate", int(s.cfg.SampleRate), "buffer", bufferSize)
	return nil
}

// Loading reports whether a requested track has not become playable yet.
func (s *Session) Loading() bool { return s.loading }

// Request pauses whatever is playing and starts decoding src in the
// background. The newest request wins; Poll attaches it once it is ready.
func (s *Session) Request(src Source) error {
	if err := s.Init(); err != nil {
		return err
	}
	s.pause()
	s.gen++
	s.loading = true
	s.pending++
	gen := s.gen
	s.log.Info("loading track", "track", src.Label)

	go func() {
		streamer, format, err := src.Open()
		s.results <- loadResult{gen: gen, label: src.Label, streamer: streamer, format: format, err: err}
	}()
	return nil
}

// Poll applies finished loads without blocking. It returns the error of a
// failed current load, if any.
func (s *Session) Poll() error {
	var err error
	for {
		select {
		case res := <-s.results:
			if e := s.finish(res); e != nil {
				err = e
			}
		default:
			return err
		}
	}
}

// Await blocks until one load result has been applied or ctx is done.
func (s *Session) Await(ctx context.Context) error {
	select {
	case res := <-s.results:
		return s.finish(res)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) finish(res loadResult) error {
	s.pending--
	if res.gen != s.gen {
		if res.streamer != nil {
			_ = res.streamer.Close()
		}
		s.log.Debug("dropping stale load", "track", res.label)
		return nil
	}
	s.loading = false
	if res.err != nil {
		s.log.Error("load failed", "track", res.label, "err", res.err)
		return fmt.Errorf("load %s: %w", res.label, res.err)
	}

	var stream beep.Streamer = res.streamer
	if s.cfg.Loop {
		stream = beep.Loop(-1, res.streamer)
	}
	if res.format.SampleRate != s.cfg.SampleRate {
		stream = beep.Resample(resampleQuality, res.format.SampleRate, s.cfg.SampleRate, stream)
	}
	// a paused Ctrl still streams silence through the tap
	ctrl := &beep.Ctrl{Streamer: stream, Paused: false}
	tap := NewTap(ctrl, tapRingSize)

	s.out.Clear()
	if s.cur != nil {
		_ = s.cur.streamer.Close()
	}
	s.cur = &track{label: res.label, streamer: res.streamer, format: res.format, ctrl: ctrl, tap: tap}
	s.analyser.Reset()
	s.out.Play(tap)
	s.log.Info("playing", "track", res.label, "sample_rate", int(res.format.SampleRate))
	return nil
}

func (s *Session) pause() {
	if s.cur == nil {
		return
	}
	s.out.Lock()
	s.cur.ctrl.Paused = true
	s.out.Unlock()
}

// Toggle flips between playing and paused. Without a track it does nothing.
func (s *Session) Toggle() {
	if s.cur == nil {
		return
	}
	s.out.Lock()
	s.cur.ctrl.Paused = !s.cur.ctrl.Paused
	paused := s.cur.ctrl.Paused
	s.out.Unlock()
	s.log.Debug("toggled playback", "paused", paused)
}

// Paused is true when no track is attached.
func (s *Session) Paused() bool {
	if s.cur == nil {
		return true
	}
	s.out.Lock()
	defer s.out.Unlock()
	return s.cur.ctrl.Paused
}

// Current returns the label of the attached track.
func (s *Session) Current() (string, bool) {
	if s.cur == nil {
		return "", false
	}
	return s.cur.label, true
}

// Progress returns the position within the current pass and the track length.
func (s *Session) Progress() (time.Duration, time.Duration) {
	if s.cur == nil {
		return 0, 0
	}
	s.out.Lock()
	pos, n := s.cur.streamer.Position(), s.cur.streamer.Len()
	s.out.Unlock()
	sr := s.cur.format.SampleRate
	return sr.D(pos), sr.D(n)
}

// AnalyserReady mirrors "an audio context exists": it turns true on the first
// Init and stays true.
func (s *Session) AnalyserReady() bool { return s.initialized }

// FrequencyData analyses the newest played samples. The returned slice is
// reused by the next call.
func (s *Session) FrequencyData() []uint8 {
	n := s.analyser.FFTSize()
	if s.cur == nil {
		if cap(s.samples) < n {
			s.samples = make([]float64, n)
		}
		s.samples = s.samples[:n]
		clear(s.samples)
	} else {
		s.samples = s.cur.tap.Samples(n, s.samples)
	}
	s.bins = s.analyser.ByteFrequencyData(s.samples, s.bins)
	return s.bins
}

// BassEnergy is the lowest frequency bin.
func (s *Session) BassEnergy() uint8 {
	return s.FrequencyData()[0]
}

// Close stops playback and releases the current track. Loads still in flight
// are closed as they finish.
func (s *Session) Close() error {
	if !s.initialized {
		return nil
	}
	s.out.Clear()
	s.gen++
	if n := s.pending; n > 0 {
		s.pending = 0
		go func(results <-chan loadResult) {
			for i := 0; i < n; i++ {
				if res := <-results; res.streamer != nil {
					_ = res.streamer.Close()
				}
			}
		}(s.results)
	}
	if s.cur == nil {
		return nil
	}
	err := s.cur.streamer.Close()
	s.cur = nil
	return err
}
