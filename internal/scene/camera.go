package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraOptions struct {
	FOV         float32 // vertical, degrees
	Near, Far   float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Width       int
	Height      int
}

// Camera looks at the origin from Distance along +Z. Only zooming is
// supported; it never pans or orbits.
type Camera struct {
	FOV         float32
	Near, Far   float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Aspect      float64
}

func NewCamera(opts CameraOptions) *Camera {
	c := &Camera{
		FOV:         opts.FOV,
		Near:        opts.Near,
		Far:         opts.Far,
		Distance:    opts.Distance,
		MinDistance: opts.MinDistance,
		MaxDistance: opts.MaxDistance,
		Aspect:      1,
	}
	c.Resize(opts.Width, opts.Height)
	return c
}

// Resize sets the aspect ratio to exactly w/h. Degenerate sizes are ignored.
func (c *Camera) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float64(w) / float64(h)
}

// Zoom moves the camera towards (negative delta) or away from the origin,
// clamped to the configured range.
func (c *Camera) Zoom(delta float32) {
	d := c.Distance + delta
	if d < c.MinDistance {
		d = c.MinDistance
	}
	if c.MaxDistance > 0 && d > c.MaxDistance {
		d = c.MaxDistance
	}
	c.Distance = d
}

func (c *Camera) Position() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, c.Distance}
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), float32(c.Aspect), c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// Ray casts from the near plane through the given clip-space point.
func (c *Camera) Ray(ndcX, ndcY float32) Ray {
	inv := c.ViewProjection().Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	return Ray{Origin: n, Dir: f.Sub(n).Normalize()}
}

// NormalizePointer maps a pixel position inside a w×h viewport to clip space,
// x to the right and y up, both in [-1, 1].
func NormalizePointer(x, y, w, h int) (float32, float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	nx := float32(x)/float32(w)*2 - 1
	ny := -float32(y)/float32(h)*2 + 1
	return nx, ny
}
