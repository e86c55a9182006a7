// Package game runs the visualizer inside an ebiten window: it turns window
// input into controller calls, ticks the visualizer loop and draws the scene.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/cubeviz/internal/config"
	"github.com/iburimskiy/cubeviz/internal/control"
	"github.com/iburimskiy/cubeviz/internal/scene"
	"github.com/iburimskiy/cubeviz/internal/visualizer"
)

type Game struct {
	ctrl     *control.Controller
	scene    *scene.Scene
	sched    *visualizer.Scheduler
	clock    visualizer.Clock
	renderer renderer
	log      *log.Logger

	buttons    []*button
	chosen     chan string
	dialogOpen atomic.Bool

	width, height int
	quit          atomic.Bool
}

func New(ctrl *control.Controller, sc *scene.Scene, loop *visualizer.Loop, clock visualizer.Clock, width, height int, logger *log.Logger) *Game {
	g := &Game{
		ctrl:   ctrl,
		scene:  sc,
		sched:  visualizer.NewScheduler(clock, loop.Tick),
		clock:  clock,
		log:    logger,
		chosen: make(chan string, 1),
		width:  width,
		height: height,
	}
	g.buttons = []*button{
		{
			label: "Play Default",
			x:     config.ButtonX, y: config.ButtonY, w: config.ButtonWidth, h: config.ButtonHeight,
			onClick: func() { _ = g.ctrl.PlayDefault(g.clock.Now()) },
		},
		{
			label: "Choose File",
			x:     config.ButtonX + config.ButtonWidth + config.ButtonGap, y: config.ButtonY,
			w: config.ButtonWidth, h: config.ButtonHeight,
			onClick: g.chooseFile,
		},
	}
	return g
}

func (g *Game) Update() error {
	now := g.clock.Now()
	g.ctrl.Update(now)

	select {
	case path := <-g.chosen:
		_ = g.ctrl.SelectFile(path, now)
	default:
	}

	mouseX, mouseY := ebiten.CursorPosition()
	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	justReleased := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	onButton := false
	for _, b := range g.buttons {
		if b.update(mouseX, mouseY, justPressed, justReleased) {
			onButton = true
		}
	}
	if justPressed && !onButton {
		if g.ctrl.PointerDown(mouseX, mouseY, g.width, g.height) {
			g.log.Debug("cube picked", "x", mouseX, "y", mouseY)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.ctrl.Zoom(wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Toggle()
	}
	if g.quit.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.sched.Step()
	return nil
}

// chooseFile opens the native picker off the update goroutine; the chosen path
// comes back through g.chosen.
func (g *Game) chooseFile() {
	if err := g.ctrl.ChooseFile(g.clock.Now()); err != nil {
		return
	}
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.dialogOpen.Store(false)
		filename, err := zenity.SelectFile(
			zenity.Title("Open Audio File"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.mp3", "*.wav", "*.flac", "*.ogg"},
			}},
		)
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				g.log.Error("file dialog failed", "err", err)
			}
			return
		}
		g.log.Debug("file chosen", "path", filename)
		g.chosen <- filename
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.renderer.draw(screen, g.scene)

	for _, b := range g.buttons {
		b.draw(screen)
	}
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	st := g.ctrl.Status(g.clock.Now())

	label := st.Text
	if st.Loading {
		label += " (loading)"
	}
	x, y := config.ButtonX, config.ButtonY+config.ButtonHeight+12
	if st.IsError {
		vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(len(label)*6+8), 20, color.RGBA{R: 170, G: 30, B: 40, A: 220}, false)
	}
	ebitenutil.DebugPrintAt(screen, label, x, y)

	if st.Length > 0 {
		progress := fmt.Sprintf("%s / %s", formatDuration(st.Position), formatDuration(st.Length))
		ebitenutil.DebugPrintAt(screen, progress, x, y+20)
	}

	help := "Space or click the cube: play/pause | Wheel: zoom | Esc/Q: quit"
	if st.Paused && !st.Loading {
		help = "Paused - " + help
	}
	ebitenutil.DebugPrintAt(screen, help, 12, g.height-24)
}

// Layout follows the window size so the viewport and the camera stay in sync.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctrl.Resize(outsideWidth, outsideHeight)
		g.log.Debug("resized", "width", outsideWidth, "height", outsideHeight)
	}
	return g.width, g.height
}

// Quit ends the run loop at the next update. It is safe to call from any
// goroutine.
func (g *Game) Quit() { g.quit.Store(true) }

// Frames reports how many visualizer ticks have run.
func (g *Game) Frames() uint64 { return g.sched.Frames() }
