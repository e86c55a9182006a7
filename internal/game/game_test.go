package game

import (
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"

	"github.com/iburimskiy/cubeviz/internal/control"
	"github.com/iburimskiy/cubeviz/internal/playback"
	"github.com/iburimskiy/cubeviz/internal/scene"
	"github.com/iburimskiy/cubeviz/internal/spectrum"
	"github.com/iburimskiy/cubeviz/internal/visualizer"
)

type fakeOutput struct{ mu sync.Mutex }

func (o *fakeOutput) Init(beep.SampleRate, int) error { return nil }
func (o *fakeOutput) Play(...beep.Streamer)           {}
func (o *fakeOutput) Clear()                          {}
func (o *fakeOutput) Lock()                           { o.mu.Lock() }
func (o *fakeOutput) Unlock()                         { o.mu.Unlock() }

func newTestGame(t *testing.T) (*Game, *scene.Scene) {
	t.Helper()
	logger := log.New(io.Discard)
	session, err := playback.NewSession(&fakeOutput{}, playback.Config{
		SampleRate: 44100,
		Buffer:     time.Second / 20,
		Loop:       true,
		Analyser:   spectrum.DefaultConfig(),
	}, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = session.Close() })

	sc, meshID := scene.Build(scene.Options{
		StarCount: 10, StarSpread: 750, MeshScale: 0.75,
		Camera: scene.CameraOptions{FOV: 75, Near: 0.1, Far: 5000, Distance: 5, MinDistance: 1.5, MaxDistance: 50, Width: 800, Height: 600},
	}, rand.New(rand.NewSource(1)))
	ctrl := control.New(session, sc, meshID, control.Options{
		DefaultSource: playback.DemoSource("Demo Signal", 44100),
		ErrorDuration: 2 * time.Second,
		ZoomSpeed:     0.5,
		InitialLabel:  "Nothing playing...",
	}, logger)
	loop := visualizer.NewLoop(visualizer.DefaultParams(), sc, session, session)
	return New(ctrl, sc, loop, visualizer.SystemClock{}, 800, 600, logger), sc
}

func TestLayoutFollowsWindow(t *testing.T) {
	g, sc := newTestGame(t)

	w, h := g.Layout(1280, 720)
	if w != 1280 || h != 720 {
		t.Fatalf("Layout() = %dx%d, want 1280x720", w, h)
	}
	if want := 1280.0 / 720.0; sc.Camera.Aspect != want {
		t.Fatalf("aspect = %v, want %v", sc.Camera.Aspect, want)
	}

	w, h = g.Layout(0, 0)
	if w != 1280 || h != 720 {
		t.Fatalf("Layout(0, 0) = %dx%d, want the last size", w, h)
	}
	if want := 1280.0 / 720.0; sc.Camera.Aspect != want {
		t.Fatalf("aspect changed on a degenerate size: %v", sc.Camera.Aspect)
	}
}

func TestQuitIsReported(t *testing.T) {
	g, _ := newTestGame(t)
	if g.quit.Load() {
		t.Fatal("quit set before Quit()")
	}
	g.Quit()
	if !g.quit.Load() {
		t.Fatal("Quit() did not set the flag")
	}
}
