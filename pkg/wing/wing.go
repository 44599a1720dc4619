// Package wing discretizes a straight-tapered planform into lifting-line
// stations: control points, a horseshoe vortex lattice and per-station
// frames. It is deliberately small; it exists to feed package liftline with
// well-formed geometry, not to be a general mesh generator.
package wing

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/units"
	"github.com/taigrr/liftline/pkg/vortex"
)

// Spacing selects how station boundaries are distributed along the span.
type Spacing string

// Spacing choices.
const (
	Uniform Spacing = "uniform"
	Cosine  Spacing = "cosine"
)

// DefaultWakeSpans is the wake length, in spans, used when Config.WakeLength
// is zero.
const DefaultWakeSpans = 50

// Config describes a symmetric planform. Lengths are in Units; angles are
// degrees.
type Config struct {
	RootChord float64
	TipChord  float64
	Span      float64 // tip to tip, measured along the surface
	Segments  int
	Units     units.Length
	Spacing   Spacing

	Incidence float64 // root incidence, positive nose up
	Twist     float64 // tip incidence minus root incidence
	Dihedral  float64
	Sweep     float64 // quarter-chord sweep

	Section    Section
	WakeLength float64 // trailing filament length; zero means DefaultWakeSpans spans
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.RootChord <= 0 || c.TipChord <= 0:
		return fmt.Errorf("wing: chords must be positive (root %g, tip %g)", c.RootChord, c.TipChord)
	case c.Span <= 0:
		return fmt.Errorf("wing: span must be positive, got %g", c.Span)
	case c.Segments < 1:
		return fmt.Errorf("wing: need at least one segment, got %d", c.Segments)
	case c.WakeLength < 0:
		return fmt.Errorf("wing: negative wake length %g", c.WakeLength)
	case math.Abs(c.Sweep) >= 90 || math.Abs(c.Dihedral) >= 90:
		return errors.New("wing: sweep and dihedral must be within (-90, 90) degrees")
	}
	switch c.Spacing {
	case "", Uniform, Cosine:
	default:
		return fmt.Errorf("wing: unknown spacing %q", c.Spacing)
	}
	return nil
}

// Wing is a discretized planform. It satisfies liftline.Geometry.
type Wing struct {
	cfg Config

	eta        []float64 // node spanwise parameter in [-1, 1]
	nodes      []math3d.Vec3
	nodeChord  []float64
	nodeTwist  []float64
	chord      []float64 // station mean chord
	xcp        []math3d.Vec3
	dl, a1, a3 []math3d.Vec3
	dA         []float64
	lattice    *vortex.Lattice
}

// New builds the stations for cfg.
func New(cfg Config) (*Wing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Units == 0 {
		cfg.Units = units.Metre
	}
	if cfg.Spacing == "" {
		cfg.Spacing = Uniform
	}
	if cfg.Section.Outline == nil {
		cfg.Section = Square()
	}
	if cfg.WakeLength == 0 {
		cfg.WakeLength = DefaultWakeSpans * cfg.Span
	}

	w := &Wing{cfg: cfg}
	w.buildNodes()
	w.buildStations()

	lat, err := vortex.Horseshoes(w.nodes[:cfg.Segments], w.nodes[1:], math3d.UnitX().Scale(cfg.WakeLength))
	if err != nil {
		return nil, fmt.Errorf("wing: build lattice: %w", err)
	}
	w.lattice = lat
	return w, nil
}

func (w *Wing) buildNodes() {
	n := w.cfg.Segments
	half := w.cfg.Span / 2
	tanSweep := math.Tan(math3d.Radians(w.cfg.Sweep))

	w.eta = make([]float64, n+1)
	w.nodeChord = make([]float64, n+1)
	w.nodeTwist = make([]float64, n+1)
	var left, right []math3d.Vec3
	var leftIdx, rightIdx []int
	flat := make([]math3d.Vec3, n+1)

	for j := range n + 1 {
		eta := -1 + 2*float64(j)/float64(n)
		if w.cfg.Spacing == Cosine {
			eta = -math.Cos(math.Pi * float64(j) / float64(n))
		}
		w.eta[j] = eta
		frac := math.Abs(eta)
		w.nodeChord[j] = w.cfg.RootChord + (w.cfg.TipChord-w.cfg.RootChord)*frac
		w.nodeTwist[j] = w.cfg.Incidence + w.cfg.Twist*frac

		y := eta * half
		p := math3d.V3(math.Abs(y)*tanSweep, y, 0)
		flat[j] = p
		switch {
		case y > 0:
			right = append(right, p)
			rightIdx = append(rightIdx, j)
		case y < 0:
			left = append(left, p)
			leftIdx = append(leftIdx, j)
		}
	}

	// Dihedral lifts both half-spans about the root chord line.
	w.nodes = flat
	for i, p := range math3d.TransformPoints(w.dihedral(1), right) {
		w.nodes[rightIdx[i]] = p
	}
	for i, p := range math3d.TransformPoints(w.dihedral(-1), left) {
		w.nodes[leftIdx[i]] = p
	}
}

// dihedral returns the rotation of the half-span on the given side
// (+1 starboard, -1 port, 0 on the root).
func (w *Wing) dihedral(side float64) math3d.Mat4 {
	return math3d.RotationMatrix(math3d.UnitX(), side*w.cfg.Dihedral, true)
}

func side(y float64) float64 {
	switch {
	case y > 0:
		return 1
	case y < 0:
		return -1
	}
	return 0
}

// sectionRotation orients a section at spanwise position y with the given
// incidence: twist about the body y axis, then dihedral about x.
func (w *Wing) sectionRotation(y, twist float64) math3d.Mat4 {
	return w.dihedral(side(y)).Mul(math3d.RotationMatrix(math3d.UnitY(), twist, true))
}

func (w *Wing) buildStations() {
	n := w.cfg.Segments
	w.chord = make([]float64, n)
	w.xcp = make([]math3d.Vec3, n)
	w.dl = make([]math3d.Vec3, n)
	w.a1 = make([]math3d.Vec3, n)
	w.a3 = make([]math3d.Vec3, n)
	w.dA = make([]float64, n)

	for i := range n {
		a, b := w.nodes[i], w.nodes[i+1]
		mid := a.Lerp(b, 0.5)
		w.chord[i] = (w.nodeChord[i] + w.nodeChord[i+1]) / 2
		w.xcp[i] = mid
		w.dl[i] = b.Sub(a)

		twist := (w.nodeTwist[i] + w.nodeTwist[i+1]) / 2
		rot := w.sectionRotation((w.eta[i]+w.eta[i+1])/2, twist)
		w.a1[i] = rot.MulVec3Dir(math3d.UnitX())
		w.a3[i] = rot.MulVec3Dir(math3d.UnitZ())
		w.dA[i] = w.chord[i] * w.stripWidth(i)
	}
}

// stripWidth is the station's extent normal to the chord line.
func (w *Wing) stripWidth(i int) float64 {
	d := w.dl[i]
	return math.Hypot(d.Y, d.Z)
}

// Config returns the configuration with defaults filled in.
func (w *Wing) Config() Config { return w.cfg }

// N returns the number of stations.
func (w *Wing) N() int { return w.cfg.Segments }

// ControlPoints returns the bound-segment midpoints.
func (w *Wing) ControlPoints() []math3d.Vec3 { return w.xcp }

// Lattice returns the horseshoe lattice.
func (w *Wing) Lattice() *vortex.Lattice { return w.lattice }

// Frames returns the per-station segment vector, chordwise and normal unit
// vectors and reference area.
func (w *Wing) Frames() (dl, a1, a3 []math3d.Vec3, dA []float64) {
	return w.dl, w.a1, w.a3, w.dA
}

// Units returns metres per geometry unit.
func (w *Wing) Units() units.Length { return w.cfg.Units }

// Nodes returns the N+1 quarter-chord station boundaries.
func (w *Wing) Nodes() []math3d.Vec3 { return w.nodes }

// Chords returns the mean chord of each station.
func (w *Wing) Chords() []float64 { return w.chord }

// SpanPositions returns the y coordinate of each control point.
func (w *Wing) SpanPositions() []float64 {
	ys := make([]float64, len(w.xcp))
	for i, p := range w.xcp {
		ys[i] = p.Y
	}
	return ys
}

// AirfoilArea returns the section area as a fraction of chord².
func (w *Wing) AirfoilArea() float64 {
	return w.cfg.Section.Area()
}

// ProjectedSpan returns the tip-to-tip extent along y.
func (w *Wing) ProjectedSpan() float64 {
	return w.nodes[len(w.nodes)-1].Y - w.nodes[0].Y
}

// ProjectedArea returns the planform area seen from above.
func (w *Wing) ProjectedArea() float64 {
	var s float64
	for i, c := range w.chord {
		s += c * math.Abs(w.dl[i].Y)
	}
	return s
}

// ActualArea returns the wetted reference area, following dihedral.
func (w *Wing) ActualArea() float64 {
	var s float64
	for _, a := range w.dA {
		s += a
	}
	return s
}

// AspectRatio returns projected span² / projected area.
func (w *Wing) AspectRatio() float64 {
	b := w.ProjectedSpan()
	return b * b / w.ProjectedArea()
}

// Volume integrates section area along the span. Chord varies linearly over
// each station, so ∫c² is exact.
func (w *Wing) Volume() float64 {
	area := w.AirfoilArea()
	var v float64
	for i := range w.chord {
		c0, c1 := w.nodeChord[i], w.nodeChord[i+1]
		v += area * w.stripWidth(i) * (c0*c0 + c0*c1 + c1*c1) / 3
	}
	return v
}

// MeanAerodynamicChord returns ∫c² / ∫c over the span.
func (w *Wing) MeanAerodynamicChord() float64 {
	var num, den float64
	for i := range w.chord {
		c0, c1 := w.nodeChord[i], w.nodeChord[i+1]
		width := w.stripWidth(i)
		num += width * (c0*c0 + c0*c1 + c1*c1) / 3
		den += width * w.chord[i]
	}
	return num / den
}

// SectionTransform maps chord-normalized section coordinates (x along the
// chord, z normal to it) at node j into wing coordinates: scale by the
// local chord, put the quarter chord on the node, then twist and dihedral.
func (w *Wing) SectionTransform(j int) math3d.Mat4 {
	c := w.nodeChord[j]
	return math3d.TranslationMatrix(w.nodes[j]).
		Mul(w.sectionRotation(w.eta[j], w.nodeTwist[j])).
		Mul(math3d.ScaleUniform(c)).
		Mul(math3d.TranslationMatrix(math3d.V3(-0.25, 0, 0)))
}

// SectionOutline returns the section outline placed at node j.
func (w *Wing) SectionOutline(j int) []math3d.Vec3 {
	pts := make([]math3d.Vec3, len(w.cfg.Section.Outline))
	for i, p := range w.cfg.Section.Outline {
		pts[i] = math3d.V3(p.X, 0, p.Y)
	}
	return math3d.TransformPoints(w.SectionTransform(j), pts)
}
