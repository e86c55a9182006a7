package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testOptions() Options {
	return Options{
		StarCount:  100,
		StarSpread: 750,
		FogDensity: 0.0015,
		MeshScale:  0.75,
		Light:      Light{Kind: Directional, ToLight: mgl32.Vec3{0, 0, 1}, Intensity: 1.5, Ambient: 0.2},
		Camera: CameraOptions{
			FOV: 75, Near: 0.1, Far: 5000,
			Distance: 5, MinDistance: 1.5, MaxDistance: 50,
			Width: 1024, Height: 768,
		},
	}
}

func TestBuildOrdersStarfieldBeforeMesh(t *testing.T) {
	s, meshID := Build(testOptions(), rand.New(rand.NewSource(1)))
	if len(s.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(s.Elements))
	}
	if s.Elements[0].Kind != KindStarfield || s.Elements[0].Index != 0 {
		t.Fatalf("first element = %v at %d", s.Elements[0].Kind, s.Elements[0].Index)
	}
	e, ok := s.Element(meshID)
	if !ok || e.Kind != KindMesh || e.Index != 1 {
		t.Fatalf("mesh element = %+v, %v", e, ok)
	}
	if e.Mesh.Scale != (mgl32.Vec3{0.75, 0.75, 0.75}) {
		t.Fatalf("initial scale = %v", e.Mesh.Scale)
	}
	if len(e.Mesh.Faces) != 6 {
		t.Fatalf("faces = %d, want 6", len(e.Mesh.Faces))
	}
}

func TestStarsStayInsideSpread(t *testing.T) {
	s, _ := Build(testOptions(), rand.New(rand.NewSource(7)))
	var stars *Starfield
	s.Each(KindStarfield, func(e *Element) { stars = e.Stars })
	if len(stars.Points) != 100 {
		t.Fatalf("points = %d, want 100", len(stars.Points))
	}
	for _, p := range stars.Points {
		for i := 0; i < 3; i++ {
			if p[i] < -375 || p[i] > 375 {
				t.Fatalf("star %v outside the spread", p)
			}
		}
	}
}

func TestEachVisitsOnlyMatchingKind(t *testing.T) {
	s := New(NewCamera(testOptions().Camera), Light{}, 0)
	s.AddStarfield(&Starfield{})
	s.AddMesh(&Mesh{})
	s.AddStarfield(&Starfield{})

	var got []int
	s.Each(KindStarfield, func(e *Element) { got = append(got, e.Index) })
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("starfield indices = %v, want [0 2]", got)
	}
}

func TestBoxFaceWindingMatchesNormal(t *testing.T) {
	for i, f := range BoxFaces() {
		a := f.Corners[1].Sub(f.Corners[0])
		b := f.Corners[2].Sub(f.Corners[0])
		n := a.Cross(b).Normalize()
		if n.Dot(f.Normal) < 0.99 {
			t.Fatalf("face %d winding normal %v, declared %v", i, n, f.Normal)
		}
	}
}

func TestLightShade(t *testing.T) {
	l := Light{Kind: Directional, ToLight: mgl32.Vec3{0, 0, 1}, Intensity: 0.5, Ambient: 0.2}
	if got := l.Shade(mgl32.Vec3{0, 0, 1}); math.Abs(float64(got-0.7)) > 1e-6 {
		t.Fatalf("facing shade = %g, want 0.7", got)
	}
	if got := l.Shade(mgl32.Vec3{0, 0, -1}); got != 0.2 {
		t.Fatalf("back shade = %g, want ambient 0.2", got)
	}
	amb := Light{Kind: Ambient, Intensity: 1.5}
	if got := amb.Shade(mgl32.Vec3{1, 0, 0}); got != 1 {
		t.Fatalf("ambient shade = %g, want clamp to 1", got)
	}
}
