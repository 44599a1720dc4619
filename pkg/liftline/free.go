package liftline

import (
	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/units"
	"github.com/taigrr/liftline/pkg/vortex"
)

// FreeVortex is a fixed straight filament outside the horseshoe lattice,
// for example the tip vortex of an upstream surface. Endpoints and L0 are in
// geometry units; Gamma is m^2/s.
type FreeVortex struct {
	Node1, Node2 math3d.Vec3
	Gamma        float64
	L0           float64
}

// FreeVelocity returns the velocity, in m/s, that the free vortices induce
// at each control point. It returns nil when there are no free vortices.
func FreeVelocity(k vortex.Kernel, xcp []math3d.Vec3, free []FreeVortex, ls units.Length) ([]math3d.Vec3, error) {
	if len(free) == 0 {
		return nil, nil
	}
	if ls == 0 {
		ls = units.Metre
	}
	n1 := make([]math3d.Vec3, len(free))
	n2 := make([]math3d.Vec3, len(free))
	gamma := make([]float64, len(free))
	l0 := make([]float64, len(free))
	for j, fv := range free {
		n1[j], n2[j], gamma[j], l0[j] = fv.Node1, fv.Node2, fv.Gamma, fv.L0
	}
	inf, err := k.Induce(xcp, n1, n2, gamma, l0)
	if err != nil {
		return nil, err
	}
	return inf.Scale(ls.Inverse()).Sum(), nil
}
