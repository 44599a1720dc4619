package vortex

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
)

// DefaultCoreFraction is the core radius as a fraction of a segment's
// reference length.
const DefaultCoreFraction = 0.025

// Kernel evaluates the regularized Biot-Savart law.
type Kernel struct {
	// CoreFraction scales l0 into the core radius. Zero disables the
	// regularization, which makes points on a filament's line produce NaN.
	CoreFraction float64

	// Workers bounds the goroutines used by Induce. Zero means GOMAXPROCS.
	Workers int
}

// DefaultKernel returns a kernel with the standard core fraction.
func DefaultKernel() Kernel {
	return Kernel{CoreFraction: DefaultCoreFraction}
}

// Velocity returns the velocity induced at cp by the filament node1->node2
// carrying circulation gamma.
func (k Kernel) Velocity(cp, node1, node2 math3d.Vec3, gamma, l0 float64) math3d.Vec3 {
	r1 := cp.Sub(node1)
	r2 := cp.Sub(node2)
	r1n := r1.Len()
	r2n := r2.Len()
	r1r2 := r1n * r2n

	core := k.CoreFraction * l0
	denom := 4*math.Pi*r1r2*(r1r2+r1.Dot(r2)) + core*core
	return r1.Cross(r2).Scale(gamma * (r1n + r2n) / denom)
}

// Induce evaluates every (control point, segment) pair and returns the
// (len(xcp), len(node1), 3) influence tensor.
//
// node1 and node2 must have the same length Q. gamma and l0 each hold either
// one value applied to every segment or one value per segment. Rows of the
// tensor are computed concurrently; the result does not depend on Workers.
func (k Kernel) Induce(xcp, node1, node2 []math3d.Vec3, gamma, l0 []float64) (*Influence, error) {
	const op = "vortex.Induce"
	q := len(node1)
	if err := shape.Len(op, "node2", q, len(node2)); err != nil {
		return nil, err
	}
	if err := shape.Broadcast(op, "gamma", q, len(gamma)); err != nil {
		return nil, err
	}
	if err := shape.Broadcast(op, "l0", q, len(l0)); err != nil {
		return nil, err
	}

	out := NewInfluence(len(xcp), q)
	if len(xcp) == 0 || q == 0 {
		return out, nil
	}

	workers := k.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, cp := range xcp {
		g.Go(func() error {
			for j := range q {
				out.Set(i, j, k.Velocity(cp, node1[j], node2[j], pick(gamma, j), pick(l0, j)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// pick broadcasts a length-1 slice.
func pick(v []float64, j int) float64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[j]
}

// Velocity evaluates a single pair with the default kernel.
func Velocity(cp, node1, node2 math3d.Vec3, gamma, l0 float64) math3d.Vec3 {
	return DefaultKernel().Velocity(cp, node1, node2, gamma, l0)
}

// Induce evaluates a batch with the default kernel.
func Induce(xcp, node1, node2 []math3d.Vec3, gamma, l0 []float64) (*Influence, error) {
	return DefaultKernel().Induce(xcp, node1, node2, gamma, l0)
}
