package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPickDispatchesBoundAction(t *testing.T) {
	s, meshID := Build(testOptions(), rand.New(rand.NewSource(1)))
	p := NewPicker()
	calls := 0
	p.Bind(meshID, func() { calls++ })

	if !p.Dispatch(s, 0, 0) {
		t.Fatal("centre click missed the cube")
	}
	if calls != 1 {
		t.Fatalf("action ran %d times, want 1", calls)
	}
	if p.Dispatch(s, 0.9, 0.9) {
		t.Fatal("corner click hit the cube")
	}
	if calls != 1 {
		t.Fatalf("miss ran the action, calls = %d", calls)
	}
}

func TestUnboundElementsAreNotPickable(t *testing.T) {
	s, meshID := Build(testOptions(), rand.New(rand.NewSource(1)))
	p := NewPicker()
	if _, ok := p.Pick(s, 0, 0); ok {
		t.Fatal("picked with nothing bound")
	}
	p.Bind(meshID, func() {})
	p.Unbind(meshID)
	if p.Dispatch(s, 0, 0) {
		t.Fatal("picked an unbound mesh")
	}
}

func TestPickFollowsScale(t *testing.T) {
	s, meshID := Build(testOptions(), rand.New(rand.NewSource(1)))
	p := NewPicker()
	p.Bind(meshID, func() {})
	e, _ := s.Element(meshID)

	// just outside the 0.75 cube but inside a 1.75 one
	nx := float32(0.12)
	e.Mesh.SetScale(0.75)
	if _, ok := p.Pick(s, nx, 0); ok {
		t.Fatal("hit outside the small cube")
	}
	e.Mesh.SetScale(1.75)
	if _, ok := p.Pick(s, nx, 0); !ok {
		t.Fatal("missed the grown cube")
	}
}

func TestIntersectDistance(t *testing.T) {
	m := &Mesh{Scale: mgl32.Vec3{1, 1, 1}}
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Dir: mgl32.Vec3{0, 0, -1}}
	d, ok := m.Intersect(r)
	if !ok || math.Abs(float64(d-4.5)) > 1e-4 {
		t.Fatalf("Intersect() = %g, %v, want 4.5, true", d, ok)
	}

	m.Rotation = mgl32.Vec3{0, float32(math.Pi / 4), 0}
	d, ok = m.Intersect(r)
	want := 5 - math.Sqrt2/2
	if !ok || math.Abs(float64(d)-want) > 1e-4 {
		t.Fatalf("rotated Intersect() = %g, %v, want %g", d, ok, want)
	}

	behind := Ray{Origin: mgl32.Vec3{0, 0, 5}, Dir: mgl32.Vec3{0, 0, 1}}
	if _, ok := m.Intersect(behind); ok {
		t.Fatal("hit a box behind the ray")
	}
}
