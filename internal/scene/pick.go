package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Action runs when its element is picked.
type Action func()

// Picker maps pickable elements to the action a hit should trigger.
type Picker struct {
	actions map[ElementID]Action
}

func NewPicker() *Picker {
	return &Picker{actions: make(map[ElementID]Action)}
}

func (p *Picker) Bind(id ElementID, a Action) {
	p.actions[id] = a
}

func (p *Picker) Unbind(id ElementID) {
	delete(p.actions, id)
}

// Pick returns the nearest bound element hit by the ray through (ndcX, ndcY).
func (p *Picker) Pick(s *Scene, ndcX, ndcY float32) (ElementID, bool) {
	ray := s.Camera.Ray(ndcX, ndcY)
	best := float32(math.MaxFloat32)
	var hit ElementID
	found := false
	for id := range p.actions {
		e, ok := s.Element(id)
		if !ok || e.Kind != KindMesh {
			continue
		}
		if t, ok := e.Mesh.Intersect(ray); ok && t < best {
			best, hit, found = t, id, true
		}
	}
	return hit, found
}

// Dispatch picks and runs the hit element's action. It reports whether
// anything was hit.
func (p *Picker) Dispatch(s *Scene, ndcX, ndcY float32) bool {
	id, ok := p.Pick(s, ndcX, ndcY)
	if !ok {
		return false
	}
	p.actions[id]()
	return true
}

// Intersect returns the distance along r to the mesh's box, if it is hit in
// front of the ray origin.
func (m *Mesh) Intersect(r Ray) (float32, bool) {
	inv := m.Model().Inv()
	o := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(r.Dir.Vec4(0)).Vec3()
	return slab(o, d, 0.5)
}

// slab intersects a ray with the axis-aligned box [-h, h]³. Since d is not
// renormalised, t is measured in the caller's units.
func slab(o, d mgl32.Vec3, h float32) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if abs(d[i]) < 1e-8 {
			if o[i] < -h || o[i] > h {
				return 0, false
			}
			continue
		}
		t1 := (-h - o[i]) / d[i]
		t2 := (h - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
