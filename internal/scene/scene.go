// Package scene holds the renderable elements of the visualizer, the camera
// that looks at them and the geometry needed to pick them with the pointer.
package scene

import (
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

type ElementID int

type Kind int

const (
	KindStarfield Kind = iota + 1
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindStarfield:
		return "starfield"
	case KindMesh:
		return "mesh"
	}
	return "unknown"
}

// Element is one entry of the scene list. Exactly one of Stars and Mesh is set,
// matching Kind. Index is the element's position in the list.
type Element struct {
	ID    ElementID
	Kind  Kind
	Index int
	Stars *Starfield
	Mesh  *Mesh
}

type Starfield struct {
	Points   []mgl32.Vec3
	Rotation mgl32.Vec3
	Color    colorful.Color
}

func (s *Starfield) Model() mgl32.Mat4 {
	return eulerXYZ(s.Rotation)
}

type Face struct {
	Normal  mgl32.Vec3
	Corners [4]mgl32.Vec3
	Color   color.RGBA
}

// Mesh is a box of unit size centred on Position.
type Mesh struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Faces    []Face
}

func (m *Mesh) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	s := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	return t.Mul4(eulerXYZ(m.Rotation)).Mul4(s)
}

func (m *Mesh) SetScale(v float32) {
	m.Scale = mgl32.Vec3{v, v, v}
}

// eulerXYZ rotates about X, then Y, then Z in the object's own frame.
func eulerXYZ(r mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(r.X()).
		Mul4(mgl32.HomogRotate3DY(r.Y())).
		Mul4(mgl32.HomogRotate3DZ(r.Z()))
}

type LightKind int

const (
	Directional LightKind = iota
	Ambient
)

type Light struct {
	Kind LightKind
	// ToLight points from the scene towards a directional light.
	ToLight   mgl32.Vec3
	Intensity float32
	Ambient   float32
}

// Shade returns the brightness factor for a surface with the given world
// normal, clamped to [0, 1].
func (l Light) Shade(normal mgl32.Vec3) float32 {
	v := l.Ambient
	switch l.Kind {
	case Directional:
		if d := normal.Normalize().Dot(l.ToLight.Normalize()); d > 0 {
			v += l.Intensity * d
		}
	case Ambient:
		v += l.Intensity
	}
	if v > 1 {
		v = 1
	}
	return v
}

type Options struct {
	StarCount  int
	StarSpread float32
	FogDensity float32
	MeshScale  float32
	Light      Light
	Camera     CameraOptions
}

type Scene struct {
	Elements   []Element
	Camera     *Camera
	Light      Light
	FogDensity float32
	nextID     ElementID
}

func New(cam *Camera, light Light, fog float32) *Scene {
	return &Scene{Camera: cam, Light: light, FogDensity: fog}
}

// Build assembles the visualizer scene: the starfield first, then the cube.
func Build(opts Options, rng *rand.Rand) (*Scene, ElementID) {
	s := New(NewCamera(opts.Camera), opts.Light, opts.FogDensity)

	points := make([]mgl32.Vec3, opts.StarCount)
	half := opts.StarSpread / 2
	for i := range points {
		points[i] = mgl32.Vec3{
			rng.Float32()*opts.StarSpread - half,
			rng.Float32()*opts.StarSpread - half,
			rng.Float32()*opts.StarSpread - half,
		}
	}
	s.AddStarfield(&Starfield{Points: points, Color: colorful.Color{R: 1, G: 1, B: 1}})

	cube := &Mesh{Faces: BoxFaces()}
	cube.SetScale(opts.MeshScale)
	return s, s.AddMesh(cube)
}

func (s *Scene) add(e Element) ElementID {
	s.nextID++
	e.ID = s.nextID
	e.Index = len(s.Elements)
	s.Elements = append(s.Elements, e)
	return e.ID
}

func (s *Scene) AddStarfield(sf *Starfield) ElementID {
	return s.add(Element{Kind: KindStarfield, Stars: sf})
}

func (s *Scene) AddMesh(m *Mesh) ElementID {
	return s.add(Element{Kind: KindMesh, Mesh: m})
}

// Each calls fn for every element of the given kind, in list order.
func (s *Scene) Each(kind Kind, fn func(*Element)) {
	for i := range s.Elements {
		if s.Elements[i].Kind == kind {
			fn(&s.Elements[i])
		}
	}
}

func (s *Scene) Element(id ElementID) (*Element, bool) {
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			return &s.Elements[i], true
		}
	}
	return nil, false
}

// BoxFaces returns the six faces of a unit box in +X, -X, +Y, -Y, +Z, -Z order.
func BoxFaces() []Face {
	const h = 0.5
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
	return []Face{
		{Normal: v(1, 0, 0), Corners: [4]mgl32.Vec3{v(h, -h, h), v(h, -h, -h), v(h, h, -h), v(h, h, h)}, Color: color.RGBA{R: 30, G: 90, B: 230, A: 255}},
		{Normal: v(-1, 0, 0), Corners: [4]mgl32.Vec3{v(-h, -h, -h), v(-h, -h, h), v(-h, h, h), v(-h, h, -h)}, Color: color.RGBA{R: 40, G: 190, B: 70, A: 255}},
		{Normal: v(0, 1, 0), Corners: [4]mgl32.Vec3{v(-h, h, h), v(h, h, h), v(h, h, -h), v(-h, h, -h)}, Color: color.RGBA{R: 245, G: 245, B: 245, A: 255}},
		{Normal: v(0, -1, 0), Corners: [4]mgl32.Vec3{v(-h, -h, -h), v(h, -h, -h), v(h, -h, h), v(-h, -h, h)}, Color: color.RGBA{R: 250, G: 215, B: 30, A: 255}},
		{Normal: v(0, 0, 1), Corners: [4]mgl32.Vec3{v(-h, -h, h), v(h, -h, h), v(h, h, h), v(-h, h, h)}, Color: color.RGBA{R: 220, G: 30, B: 40, A: 255}},
		{Normal: v(0, 0, -1), Corners: [4]mgl32.Vec3{v(h, -h, -h), v(-h, -h, -h), v(-h, h, -h), v(h, h, -h)}, Color: color.RGBA{R: 250, G: 130, B: 20, A: 255}},
	}
}
