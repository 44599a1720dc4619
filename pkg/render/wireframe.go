package render

import (
	"math"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/models"
)

// View selects an orthographic projection.
type View string

// Views. Top looks down the z axis with the span across the screen and the
// flow pointing down; Front looks downstream along x.
const (
	ViewTop   View = "top"
	ViewFront View = "front"
)

// Wireframe renders model-space lines with an orthographic projection that
// fits a bounding box into the framebuffer.
type Wireframe struct {
	fb   *Framebuffer
	proj math3d.Mat4
}

// NewWireframe fits [min, max] into fb, keeping the aspect ratio and a
// one-pixel margin.
func NewWireframe(fb *Framebuffer, view View, min, max math3d.Vec3) *Wireframe {
	// Screen axes as rows of the projection: (sx, sy) = (u·p, v·p).
	u, v := math3d.UnitY(), math3d.UnitX()
	if view == ViewFront {
		u, v = math3d.UnitY(), math3d.UnitZ().Negate()
	}
	basis := math3d.Identity()
	for col, val := range u.Array() {
		basis.Set(0, col, val)
	}
	for col, val := range v.Array() {
		basis.Set(1, col, val)
	}
	basis.Set(2, 2, 0)

	lo, hi := basis.MulVec3(min), basis.MulVec3(max)
	lo, hi = lo.Min(hi), lo.Max(hi)
	size := hi.Sub(lo)

	w, h := float64(fb.Width-3), float64(fb.Height-3)
	scale := math.Inf(1)
	if size.X > 0 {
		scale = w / size.X
	}
	if size.Y > 0 {
		scale = math.Min(scale, h/size.Y)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	center := lo.Add(hi).Scale(0.5)
	screen := math3d.V3(float64(fb.Width-1)/2, float64(fb.Height-1)/2, 0)

	proj := math3d.TranslationMatrix(screen).
		Mul(math3d.ScaleUniform(scale)).
		Mul(math3d.TranslationMatrix(center.Negate())).
		Mul(basis)
	return &Wireframe{fb: fb, proj: proj}
}

// Project returns the pixel of a model-space point.
func (w *Wireframe) Project(p math3d.Vec3) (x, y int) {
	s := w.proj.MulVec3(p)
	return int(math.Round(s.X)), int(math.Round(s.Y))
}

// DrawLine3D draws a line in model space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1 := w.Project(p1)
	x2, y2 := w.Project(p2)
	w.fb.DrawLine(x1, y1, x2, y2, color)
}

// DrawMesh draws every line segment and triangle edge of m. Vertices are
// projected in one batch.
func (w *Wireframe) DrawMesh(m *models.Mesh, color Color) {
	pts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = v.Position
	}
	screen := math3d.TransformPoints(w.proj, pts)
	line := func(a, b int) {
		pa, pb := screen[a], screen[b]
		w.fb.DrawLine(int(math.Round(pa.X)), int(math.Round(pa.Y)), int(math.Round(pb.X)), int(math.Round(pb.Y)), color)
	}
	for _, l := range m.Lines {
		line(l[0], l[1])
	}
	for _, f := range m.Faces {
		line(f.V[0], f.V[1])
		line(f.V[1], f.V[2])
		line(f.V[2], f.V[0])
	}
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, color Color) {
	x, y := w.Project(pos)
	w.fb.DrawLine(x-1, y, x+1, y, color)
	w.fb.DrawLine(x, y-1, x, y+1, color)
}
