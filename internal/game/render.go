package game

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/cubeviz/internal/scene"
)

// uint16 indices cap a batch at 65536 vertices
const maxBatchVertices = 65532

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type renderer struct {
	vs []ebiten.Vertex
	is []uint16
}

type projected struct {
	x, y  float32
	depth float32
}

func project(mvp mgl32.Mat4, p mgl32.Vec3, w, h float32) (projected, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return projected{}, false
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	return projected{
		x:     (nx + 1) / 2 * w,
		y:     (1 - ny) / 2 * h,
		depth: clip.W(),
	}, true
}

func (r *renderer) draw(screen *ebiten.Image, sc *scene.Scene) {
	sc.Each(scene.KindStarfield, func(e *scene.Element) {
		r.drawStars(screen, sc, e.Stars)
	})
	sc.Each(scene.KindMesh, func(e *scene.Element) {
		r.drawMesh(screen, sc, e.Mesh)
	})
}

func (r *renderer) flush(screen *ebiten.Image) {
	if len(r.is) > 0 {
		screen.DrawTriangles(r.vs, r.is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}
	r.vs = r.vs[:0]
	r.is = r.is[:0]
}

func (r *renderer) quad(corners [4]projected, cr, cg, cb, ca float32) {
	base := uint16(len(r.vs))
	for _, c := range corners {
		r.vs = append(r.vs, ebiten.Vertex{
			DstX: c.x, DstY: c.y,
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	r.is = append(r.is, base, base+1, base+2, base, base+2, base+3)
}

// drawStars draws each point as a square whose size falls off with depth and
// whose colour fades into black with exponential-squared fog.
func (r *renderer) drawStars(screen *ebiten.Image, sc *scene.Scene, stars *scene.Starfield) {
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	mvp := sc.Camera.ViewProjection().Mul4(stars.Model())
	cr, cg, cb := float32(stars.Color.R), float32(stars.Color.G), float32(stars.Color.B)
	density := float64(sc.FogDensity)

	for _, p := range stars.Points {
		pp, ok := project(mvp, p, w, h)
		if !ok || pp.depth < sc.Camera.Near || pp.depth > sc.Camera.Far {
			continue
		}
		if pp.x < 0 || pp.x > w || pp.y < 0 || pp.y > h {
			continue
		}
		size := h / 2 / pp.depth
		if size < 1 {
			size = 1
		}
		fd := density * float64(pp.depth)
		fog := clamp01(float32(math.Exp(-fd * fd)))

		half := size / 2
		if len(r.vs)+4 > maxBatchVertices {
			r.flush(screen)
		}
		r.quad([4]projected{
			{x: pp.x - half, y: pp.y - half},
			{x: pp.x + half, y: pp.y - half},
			{x: pp.x + half, y: pp.y + half},
			{x: pp.x - half, y: pp.y + half},
		}, cr*fog, cg*fog, cb*fog, 1)
	}
	r.flush(screen)
}

type faceDraw struct {
	corners [4]projected
	depth   float32
	shade   float32
	color   color.RGBA
}

// drawMesh paints the visible faces back to front with Lambert shading and a
// darker outline.
func (r *renderer) drawMesh(screen *ebiten.Image, sc *scene.Scene, m *scene.Mesh) {
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	model := m.Model()
	mvp := sc.Camera.ViewProjection().Mul4(model)
	eye := sc.Camera.Position()

	faces := make([]faceDraw, 0, len(m.Faces))
	for _, f := range m.Faces {
		normal := model.Mul4x1(f.Normal.Vec4(0)).Vec3().Normalize()
		var centre mgl32.Vec3
		for _, c := range f.Corners {
			centre = centre.Add(c)
		}
		centre = centre.Mul(0.25)
		worldCentre := model.Mul4x1(centre.Vec4(1)).Vec3()
		if eye.Sub(worldCentre).Dot(normal) <= 0 {
			continue
		}

		fd := faceDraw{shade: sc.Light.Shade(normal), color: f.Color}
		visible := true
		for i, c := range f.Corners {
			p, ok := project(mvp, c, w, h)
			if !ok {
				visible = false
				break
			}
			fd.corners[i] = p
			fd.depth += p.depth / 4
		}
		if visible {
			faces = append(faces, fd)
		}
	}

	sort.Slice(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })

	for _, fd := range faces {
		cr := float32(fd.color.R) / 255 * fd.shade
		cg := float32(fd.color.G) / 255 * fd.shade
		cb := float32(fd.color.B) / 255 * fd.shade
		r.quad(fd.corners, cr, cg, cb, 1)
	}
	r.flush(screen)

	for _, fd := range faces {
		edge := color.RGBA{
			R: uint8(float32(fd.color.R) * fd.shade * 0.5),
			G: uint8(float32(fd.color.G) * fd.shade * 0.5),
			B: uint8(float32(fd.color.B) * fd.shade * 0.5),
			A: 255,
		}
		for i := 0; i < 4; i++ {
			a, c := fd.corners[i], fd.corners[(i+1)%4]
			vector.StrokeLine(screen, a.x, a.y, c.x, c.y, 2, edge, true)
		}
	}
}
