package liftline

import (
	"math"

	"github.com/taigrr/liftline/pkg/math3d"
)

// Coefficients are whole-wing totals derived from a Loads evaluation.
type Coefficients struct {
	Lift        float64 // N, normal to the freestream in the x-z plane
	Drag        float64 // N, induced, along the freestream
	Side        float64 // N
	Area        float64 // m^2
	Dynamic     float64 // dynamic pressure, Pa
	CL          float64
	CDi         float64
	SpanEff     float64 // CL^2 / (pi AR CDi); zero when undefined
	AspectRatio float64 // used for SpanEff
}

// Coefficients integrates the Kutta-Joukowski forces of l into totals in
// wind axes. aspectRatio is only used for the span efficiency.
func (p *Problem) Coefficients(l *Loads, aspectRatio float64) Coefficients {
	v := p.Motion.Len()
	drag := p.Motion.Normalize()
	side := drag.Cross(math3d.UnitZ()).Normalize()
	lift := side.Cross(drag)
	if drag.Len() == 0 {
		lift, side = math3d.UnitZ(), math3d.UnitY()
	}

	var c Coefficients
	var f math3d.Vec3
	for i := range l.Force {
		f = f.Add(l.Force[i])
		c.Area += l.Area[i]
	}
	c.Lift = f.Dot(lift)
	c.Drag = f.Dot(drag)
	c.Side = f.Dot(side)
	c.Dynamic = 0.5 * p.Rho * v * v
	c.AspectRatio = aspectRatio

	if qs := c.Dynamic * c.Area; qs != 0 {
		c.CL = c.Lift / qs
		c.CDi = c.Drag / qs
	}
	if c.CDi > 0 && aspectRatio > 0 {
		c.SpanEff = c.CL * c.CL / (math.Pi * aspectRatio * c.CDi)
	}
	return c
}
