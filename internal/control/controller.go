// Package control turns user input into actions on the audio session and the
// scene. All of its methods run on the window's update goroutine.
package control

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"

	"github.com/iburimskiy/cubeviz/internal/playback"
	"github.com/iburimskiy/cubeviz/internal/scene"
)

const notAudioMessage = "Not an audio file"

// DetectFunc reports the content type of a local file.
type DetectFunc func(path string) (string, error)

// DetectMIME sniffs the file content.
func DetectMIME(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

type Options struct {
	DefaultSource playback.Source
	ErrorDuration time.Duration
	ZoomSpeed     float32
	Detect        DetectFunc
	InitialLabel  string
}

type Controller struct {
	session *playback.Session
	scene   *scene.Scene
	picker  *scene.Picker
	label   *Label
	opts    Options
	log     *log.Logger
}

// New binds the mesh to the playback toggle and returns the controller.
func New(session *playback.Session, sc *scene.Scene, meshID scene.ElementID, opts Options, logger *log.Logger) *Controller {
	if opts.Detect == nil {
		opts.Detect = DetectMIME
	}
	c := &Controller{
		session: session,
		scene:   sc,
		picker:  scene.NewPicker(),
		label:   NewLabel(opts.InitialLabel),
		opts:    opts,
		log:     logger,
	}
	c.picker.Bind(meshID, c.Toggle)
	return c
}

func (c *Controller) Label() *Label { return c.label }

// PlayDefault switches to the built-in track.
func (c *Controller) PlayDefault(now time.Time) error {
	return c.request(c.opts.DefaultSource, now)
}

// ChooseFile prepares the session before a file dialog opens, so the output
// exists by the time a file comes back.
func (c *Controller) ChooseFile(now time.Time) error {
	if err := c.session.Init(); err != nil {
		c.fail(err, now)
		return err
	}
	return nil
}

// SelectFile validates a chosen file and plays it. Non-audio files leave the
// current source alone and show a timed error.
func (c *Controller) SelectFile(path string, now time.Time) error {
	mime, err := c.opts.Detect(path)
	if err != nil {
		c.fail(err, now)
		return fmt.Errorf("detect %s: %w", path, err)
	}
	src, err := playback.FileSource(path, mime)
	if err != nil {
		c.log.Warn("rejected file", "path", path, "mime", mime, "err", err)
		msg := notAudioMessage
		if errors.Is(err, playback.ErrUnsupported) {
			msg = "Unsupported audio format"
		}
		c.label.ShowError(msg, now, c.opts.ErrorDuration)
		return err
	}
	return c.request(src, now)
}

func (c *Controller) request(src playback.Source, now time.Time) error {
	if err := c.session.Request(src); err != nil {
		c.fail(err, now)
		return err
	}
	c.label.SetTrack(src.Label)
	return nil
}

func (c *Controller) Toggle() {
	c.session.Toggle()
}

// PointerDown ray-picks at a pixel position inside a w×h viewport.
func (c *Controller) PointerDown(x, y, w, h int) bool {
	nx, ny := scene.NormalizePointer(x, y, w, h)
	return c.picker.Dispatch(c.scene, nx, ny)
}

func (c *Controller) Resize(w, h int) {
	c.scene.Camera.Resize(w, h)
}

// Zoom handles a wheel movement; scrolling up moves closer.
func (c *Controller) Zoom(wheelY float64) {
	if wheelY == 0 {
		return
	}
	c.scene.Camera.Zoom(-float32(wheelY) * c.opts.ZoomSpeed)
}

// Update applies finished track loads. Failures end up on the label.
func (c *Controller) Update(now time.Time) {
	if err := c.session.Poll(); err != nil {
		c.fail(err, now)
	}
}

func (c *Controller) fail(err error, now time.Time) {
	c.log.Error("playback error", "err", err)
	c.label.ShowError("Error: "+err.Error(), now, c.opts.ErrorDuration)
}

type Status struct {
	Text     string
	IsError  bool
	Loading  bool
	Paused   bool
	Position time.Duration
	Length   time.Duration
}

func (c *Controller) Status(now time.Time) Status {
	pos, length := c.session.Progress()
	return Status{
		Text:     c.label.Text(now),
		IsError:  c.label.IsError(now),
		Loading:  c.session.Loading(),
		Paused:   c.session.Paused(),
		Position: pos,
		Length:   length,
	}
}
