package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/liftline/pkg/liftline"
)

// Newton solves R(Γ) = 0 with a finite-difference Newton iteration.
//
// Each step halves its length up to MaxBacktracks times until max |R|
// decreases; if it never does, the shortest step is taken anyway.
func Newton(ctx context.Context, p *liftline.Problem, gamma0 []float64, opts Options) (*Result, error) {
	opts = opts.withDefaults(MethodNewton)
	gamma, err := start(p, gamma0)
	if err != nil {
		return nil, err
	}
	loads, err := p.Evaluate(gamma)
	if err != nil {
		return nil, err
	}
	r := loads.Residual()
	res := &Result{Method: MethodNewton}
	n := len(gamma)

	for it := 0; ; it++ {
		norm := maxAbs(r)
		res.Gamma, res.Loads, res.Iterations, res.Residual = gamma, loads, it, norm
		if opts.converged(loads, norm) {
			res.Converged = true
			return res, nil
		}
		if it == opts.MaxIter {
			return res, res.notConverged()
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		jac, err := jacobian(ctx, p, gamma, r, opts)
		if err != nil {
			return res, err
		}
		var dx mat.VecDense
		if err := dx.SolveVec(jac, mat.NewVecDense(n, slices.Clone(r))); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || !finite(dx.RawVector().Data) {
				return res, fmt.Errorf("solver: newton step %d: %w", it+1, err)
			}
			opts.Logger.Warn("ill-conditioned jacobian", "iter", it+1, "cond", float64(cond))
		}
		step := dx.RawVector().Data

		t := 1.0
		trial := make([]float64, n)
		var tl *liftline.Loads
		var tr []float64
		for bt := 0; ; bt++ {
			floats.AddScaledTo(trial, gamma, -t, step)
			tl, err = p.Evaluate(trial)
			if err != nil {
				return res, err
			}
			tr = tl.Residual()
			if maxAbs(tr) < norm || bt == opts.MaxBacktracks {
				break
			}
			t /= 2
		}
		gamma, loads, r = trial, tl, tr
		opts.Logger.Debug("newton", "iter", it+1, "residual", maxAbs(r), "step", t)
	}
}

// jacobian returns dR/dΓ by forward differences about gamma, where r is the
// residual at gamma.
func jacobian(ctx context.Context, p *liftline.Problem, gamma, r []float64, opts Options) (*mat.Dense, error) {
	n := len(gamma)
	jac := mat.NewDense(n, n, nil)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for j := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			trial := slices.Clone(gamma)
			trial[j] += opts.Step * math.Max(math.Abs(gamma[j]), 1)
			h := trial[j] - gamma[j]
			rj, err := p.Residual(trial)
			if err != nil {
				return err
			}
			for i := range n {
				jac.Set(i, j, (rj[i]-r[i])/h)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jac, nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
