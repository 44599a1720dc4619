// Package solver drives the lifting-line residual to zero.
//
// Two methods are provided. Newton builds a finite-difference Jacobian of the
// residual, one column per goroutine, and takes backtracking Newton steps.
// Relax treats every station's circulation as a critically damped spring
// pulled toward its Kutta-Joukowski target; it needs no linear algebra and
// is robust for coarse lattices, but converges linearly.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"

	"github.com/taigrr/liftline/pkg/liftline"
	"github.com/taigrr/liftline/pkg/shape"
)

// ErrNotConverged is returned, wrapped, when the iteration limit is reached.
// The accompanying Result holds the last iterate.
var ErrNotConverged = errors.New("solver: not converged")

// Method names an outer solver.
type Method string

// Available methods.
const (
	MethodNewton Method = "newton"
	MethodRelax  Method = "relax"
)

// ParseMethod resolves a method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodNewton, MethodRelax:
		return m, nil
	case "":
		return MethodNewton, nil
	}
	return "", fmt.Errorf("solver: unknown method %q (want newton or relax)", s)
}

// Options tune both solvers. Zero values select the defaults below.
type Options struct {
	// Tolerance is the convergence threshold on max |R|, relative to
	// max(1 N, max |L_alpha|).
	Tolerance float64
	MaxIter   int

	// Newton.
	Step          float64 // relative finite-difference step
	MaxBacktracks int
	Workers       int // Jacobian columns evaluated at once; <= 0 means GOMAXPROCS

	// Relax.
	FPS       int
	Frequency float64
	Damping   float64

	Logger *log.Logger
}

// Defaults.
const (
	DefaultTolerance     = 1e-9
	DefaultNewtonIter    = 50
	DefaultRelaxIter     = 5000
	DefaultStep          = 1e-7
	DefaultMaxBacktracks = 10
	DefaultFPS           = 60
	DefaultFrequency     = 6.0
	DefaultDamping       = 1.0
)

func (o Options) withDefaults(m Method) Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultNewtonIter
		if m == MethodRelax {
			o.MaxIter = DefaultRelaxIter
		}
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.MaxBacktracks <= 0 {
		o.MaxBacktracks = DefaultMaxBacktracks
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Frequency <= 0 {
		o.Frequency = DefaultFrequency
	}
	if o.Damping <= 0 {
		o.Damping = DefaultDamping
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Result is the outcome of a solve.
type Result struct {
	Method     Method
	Gamma      []float64
	Loads      *liftline.Loads
	Iterations int
	Residual   float64 // max |R| at Gamma, N
	Converged  bool
}

// Solve runs the named method. gamma0 may be nil, in which case the strip
// solution from Problem.InitialGuess is used.
func Solve(ctx context.Context, p *liftline.Problem, gamma0 []float64, m Method, opts Options) (*Result, error) {
	switch m {
	case MethodNewton, "":
		return Newton(ctx, p, gamma0, opts)
	case MethodRelax:
		return Relax(ctx, p, gamma0, opts)
	}
	return nil, fmt.Errorf("solver: unknown method %q", m)
}

func start(p *liftline.Problem, gamma0 []float64) ([]float64, error) {
	if gamma0 == nil {
		return p.InitialGuess()
	}
	if err := shape.Len("solver", "gamma0", p.N(), len(gamma0)); err != nil {
		return nil, err
	}
	return slices.Clone(gamma0), nil
}

// maxAbs is the infinity norm, zero for an empty slice.
func maxAbs(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}

func (o Options) converged(l *liftline.Loads, norm float64) bool {
	return norm <= o.Tolerance*math.Max(1, maxAbs(l.LAlpha))
}

func (r *Result) notConverged() error {
	return fmt.Errorf("%w: %s after %d iterations, max |R| = %.3g N",
		ErrNotConverged, r.Method, r.Iterations, r.Residual)
}
