package liftline

import (
	"math"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
	"github.com/taigrr/liftline/pkg/vortex"
)

// Loads is the per-station breakdown of one residual evaluation. All
// quantities are SI.
type Loads struct {
	Gamma    []float64
	Velocity []math3d.Vec3 // total local velocity at the control point
	Force    []math3d.Vec3 // Kutta-Joukowski force rho Γ u × dl
	KJ       []float64     // |((u × dl)·a1, (u × dl)·a3)|
	Alpha    []float64     // local angle of attack, degrees
	CL       []float64     // section lift coefficient
	LGamma   []float64     // circulation lift
	LAlpha   []float64     // strip-theory lift
	Area     []float64     // reference area
}

// Residual returns L_alpha - L_gamma for every station.
func (l *Loads) Residual() []float64 {
	r := make([]float64, len(l.LAlpha))
	for i := range r {
		r[i] = l.LAlpha[i] - l.LGamma[i]
	}
	return r
}

// Residual returns L_alpha - L_gamma at each station for the trial
// circulation gamma.
func (p *Problem) Residual(gamma []float64) ([]float64, error) {
	l, err := p.Evaluate(gamma)
	if err != nil {
		return nil, err
	}
	return l.Residual(), nil
}

// Evaluate computes the full per-station state for the trial circulation.
//
// The local angle of attack is arctan(u·a3 / u·a1), not a four-quadrant
// arctangent: reversed chordwise flow folds back into (-90°, 90°).
func (p *Problem) Evaluate(gamma []float64) (*Loads, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.N()
	if err := shape.Len("liftline.Residual", "gamma", n, len(gamma)); err != nil {
		return nil, err
	}

	// Filament k of the horseshoe lattice carries its station's circulation.
	w := make([]float64, vortex.HorseshoeSegments*n)
	for k := range w {
		w[k] = gamma[k%n]
	}
	bound, err := p.Bound.Contract(w)
	if err != nil {
		return nil, err
	}

	ls := p.length()
	inv := ls.Inverse()
	area := ls.Area()

	l := &Loads{
		Gamma:    append([]float64(nil), gamma...),
		Velocity: make([]math3d.Vec3, n),
		Force:    make([]math3d.Vec3, n),
		KJ:       make([]float64, n),
		Alpha:    make([]float64, n),
		CL:       make([]float64, n),
		LGamma:   make([]float64, n),
		LAlpha:   make([]float64, n),
		Area:     make([]float64, n),
	}
	st := p.Stations
	for i := range n {
		u := p.Motion.Add(bound[i].Scale(inv))
		if p.Free != nil {
			u = u.Add(p.Free[i])
		}
		dl := st.DL[i].Scale(float64(ls))
		a1, a3 := st.A1[i], st.A3[i]

		c := u.Cross(dl)
		d1, d3 := c.Dot(a1), c.Dot(a3)
		kj := math.Sqrt(d1*d1 + d3*d3)

		ua1, ua3 := u.Dot(a1), u.Dot(a3)
		alpha := math3d.Degrees(math.Atan(ua3 / ua1))
		cl := p.Curve.LiftCoefficient(alpha)
		dA := st.DA[i] * area

		l.Velocity[i] = u
		l.Force[i] = c.Scale(p.Rho * gamma[i])
		l.KJ[i] = kj
		l.Alpha[i] = alpha
		l.CL[i] = cl
		l.LGamma[i] = p.Rho * gamma[i] * kj
		l.LAlpha[i] = cl * 0.5 * p.Rho * (ua1*ua1 + ua3*ua3) * dA
		l.Area[i] = dA
	}
	return l, nil
}

// TargetCirculation returns, for each station, the circulation whose
// Kutta-Joukowski lift equals the strip-theory lift in the local flow set up
// by gamma. A converged solution is a fixed point of this map.
func (p *Problem) TargetCirculation(gamma []float64) ([]float64, error) {
	l, err := p.Evaluate(gamma)
	if err != nil {
		return nil, err
	}
	return l.Target(p.Rho), nil
}

// Target returns L_alpha / (rho |KJ|) per station, or zero where the
// Kutta-Joukowski term vanishes.
func (l *Loads) Target(rho float64) []float64 {
	out := make([]float64, len(l.LAlpha))
	for i := range out {
		if d := rho * l.KJ[i]; d != 0 {
			out[i] = l.LAlpha[i] / d
		}
	}
	return out
}

// InitialGuess is the strip-theory circulation with no induced velocity
// from the bound lattice.
func (p *Problem) InitialGuess() ([]float64, error) {
	return p.TargetCirculation(make([]float64, p.N()))
}
