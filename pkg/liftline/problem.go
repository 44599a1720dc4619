package liftline

import (
	"errors"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
	"github.com/taigrr/liftline/pkg/units"
	"github.com/taigrr/liftline/pkg/vortex"
)

// Stations holds the per-station geometry consumed by the residual.
type Stations struct {
	DL []math3d.Vec3 // bound segment vector
	A1 []math3d.Vec3 // chordwise unit vector
	A3 []math3d.Vec3 // section normal unit vector
	DA []float64     // reference area
}

// Len returns the number of stations.
func (s Stations) Len() int {
	return len(s.DL)
}

// Problem is everything the residual needs besides the trial circulation.
// A Problem is read-only once built, so Residual may be called from any
// number of goroutines at once.
type Problem struct {
	Rho float64 // fluid density

	// Bound is the (N, 4N, 3) per-unit-circulation influence of every
	// horseshoe filament at every control point, in geometry units.
	// Filament k belongs to station k mod N.
	Bound *vortex.Influence

	// Free is the velocity induced at each control point by fixed free
	// vortices, already scaled by their circulation. Nil means none.
	Free []math3d.Vec3

	// Motion is the uniform freestream or body-motion velocity.
	Motion math3d.Vec3

	Stations Stations
	Curve    LiftCurve

	// Units is metres per geometry unit. Zero means metres.
	Units units.Length
}

// Flow is the onset flow for NewProblem.
type Flow struct {
	Rho    float64
	Motion math3d.Vec3
	Free   []math3d.Vec3
}

// Geometry is a discretized lifting surface.
type Geometry interface {
	ControlPoints() []math3d.Vec3
	Lattice() *vortex.Lattice
	Frames() (dl, a1, a3 []math3d.Vec3, dA []float64)
	Units() units.Length
}

// NewProblem evaluates the bound-vortex influence of g with kernel k and
// assembles a validated Problem.
func NewProblem(g Geometry, k vortex.Kernel, flow Flow, curve LiftCurve) (*Problem, error) {
	bound, err := g.Lattice().Influence(k, g.ControlPoints())
	if err != nil {
		return nil, err
	}
	dl, a1, a3, dA := g.Frames()
	p := &Problem{
		Rho:      flow.Rho,
		Bound:    bound,
		Free:     flow.Free,
		Motion:   flow.Motion,
		Stations: Stations{DL: dl, A1: a1, A3: a3, DA: dA},
		Curve:    curve,
		Units:    g.Units(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// N returns the number of stations.
func (p *Problem) N() int {
	return p.Stations.Len()
}

// Validate checks that every array agrees with the station count.
func (p *Problem) Validate() error {
	const op = "liftline.Problem"
	n := p.N()
	if err := shape.Len(op, "A1", n, len(p.Stations.A1)); err != nil {
		return err
	}
	if err := shape.Len(op, "A3", n, len(p.Stations.A3)); err != nil {
		return err
	}
	if err := shape.Len(op, "DA", n, len(p.Stations.DA)); err != nil {
		return err
	}
	if p.Free != nil {
		if err := shape.Len(op, "Free", n, len(p.Free)); err != nil {
			return err
		}
	}
	if p.Bound == nil {
		return errors.New("liftline.Problem: nil bound influence")
	}
	if err := shape.Len(op, "Bound points", n, p.Bound.Points); err != nil {
		return err
	}
	if err := shape.Len(op, "Bound segments", vortex.HorseshoeSegments*n, p.Bound.Segments); err != nil {
		return err
	}
	if p.Curve == nil {
		return errors.New("liftline.Problem: nil lift curve")
	}
	return nil
}

func (p *Problem) length() units.Length {
	if p.Units == 0 {
		return units.Metre
	}
	return p.Units
}

// Freestream returns the velocity of air approaching a body at angle of
// attack alpha and sideslip beta (degrees), in body axes with x downstream
// and z up.
func Freestream(speed, alphaDeg, betaDeg float64) math3d.Vec3 {
	m := math3d.RotationMatrix(math3d.UnitZ(), -betaDeg, true).
		Mul(math3d.RotationMatrix(math3d.UnitY(), -alphaDeg, true))
	return m.MulVec3Dir(math3d.V3(speed, 0, 0))
}
