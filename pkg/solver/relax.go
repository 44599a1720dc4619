package solver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/liftline/pkg/liftline"
)

// divergence is the growth of max |R| over its starting value at which
// Relax gives up.
const divergence = 1e6

// Relax iterates Γ toward its Kutta-Joukowski target with one harmonica
// spring per station. With the default critically damped spring the
// iteration is stable as long as Frequency/FPS is small compared with the
// stiffest coupling between neighbouring stations.
func Relax(ctx context.Context, p *liftline.Problem, gamma0 []float64, opts Options) (*Result, error) {
	opts = opts.withDefaults(MethodRelax)
	gamma, err := start(p, gamma0)
	if err != nil {
		return nil, err
	}
	spring := harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping)
	vel := make([]float64, len(gamma))
	res := &Result{Method: MethodRelax}

	var first float64
	for it := 0; ; it++ {
		loads, err := p.Evaluate(gamma)
		if err != nil {
			return res, err
		}
		norm := maxAbs(loads.Residual())
		res.Gamma, res.Loads, res.Iterations, res.Residual = gamma, loads, it, norm
		if it == 0 {
			first = norm
		}
		if opts.converged(loads, norm) {
			res.Converged = true
			return res, nil
		}
		if it == opts.MaxIter {
			return res, res.notConverged()
		}
		if norm > divergence*first {
			return res, fmt.Errorf("solver: relaxation diverged at iteration %d (max |R| = %.3g N); lower Frequency or use newton", it, norm)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		target := loads.Target(p.Rho)
		next := make([]float64, len(gamma))
		for i := range gamma {
			next[i], vel[i] = spring.Update(gamma[i], vel[i], target[i])
		}
		gamma = next
		if it%100 == 0 {
			opts.Logger.Debug("relax", "iter", it+1, "residual", norm)
		}
	}
}
