package scene

import (
	"math"
	"testing"
)

func TestResizeSetsExactAspect(t *testing.T) {
	c := NewCamera(testOptions().Camera)
	tests := []struct{ w, h int }{{800, 600}, {1920, 1080}, {333, 777}, {1, 1}}
	for _, tt := range tests {
		c.Resize(tt.w, tt.h)
		if want := float64(tt.w) / float64(tt.h); c.Aspect != want {
			t.Fatalf("Resize(%d, %d): Aspect = %v, want %v", tt.w, tt.h, c.Aspect, want)
		}
	}
	c.Resize(0, 100)
	if c.Aspect != 1 {
		t.Fatalf("degenerate resize changed aspect to %v", c.Aspect)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewCamera(testOptions().Camera)
	c.Zoom(-100)
	if c.Distance != 1.5 {
		t.Fatalf("Distance = %g, want min 1.5", c.Distance)
	}
	c.Zoom(1000)
	if c.Distance != 50 {
		t.Fatalf("Distance = %g, want max 50", c.Distance)
	}
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		x, y   int
		nx, ny float32
	}{
		{0, 0, -1, 1},
		{400, 300, 0, 0},
		{800, 600, 1, -1},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		nx, ny := NormalizePointer(tt.x, tt.y, 800, 600)
		if nx != tt.nx || ny != tt.ny {
			t.Fatalf("NormalizePointer(%d, %d) = (%g, %g), want (%g, %g)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestCentreRayPointsDownNegativeZ(t *testing.T) {
	c := NewCamera(testOptions().Camera)
	r := c.Ray(0, 0)
	if math.Abs(float64(r.Dir.Z()+1)) > 1e-4 {
		t.Fatalf("centre ray direction = %v, want (0, 0, -1)", r.Dir)
	}
	if math.Abs(float64(r.Origin.Z()-(5-0.1))) > 1e-3 {
		t.Fatalf("centre ray origin = %v, want on the near plane", r.Origin)
	}
}
