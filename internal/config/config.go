// Package config loads lifting-line case files.
//
// A case file is TOML. Every key is optional: values not present keep the
// defaults from Default, the classic span 5, chord 1 rectangular wing at
// 5 degrees and 10 m/s.
//
//	[wing]
//	span = 8.0
//	tip_chord = 0.5
//	segments = 30
//
//	[flow]
//	alpha = 4.0
//
//	[polar]
//	kind = "table"
//	interp = "akima"
//	table = [[-8.0, -0.6], [0.0, 0.25], [8.0, 1.1], [14.0, 1.4]]
//
//	[[free_vortex]]
//	node1 = [-2.0, 1.0, 0.5]
//	node2 = [20.0, 1.0, 0.5]
//	gamma = 1.5
//	l0 = 0.2
package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/taigrr/liftline/pkg/liftline"
	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/polar"
	"github.com/taigrr/liftline/pkg/solver"
	"github.com/taigrr/liftline/pkg/units"
	"github.com/taigrr/liftline/pkg/vortex"
	"github.com/taigrr/liftline/pkg/wing"
)

// Config is a complete case.
type Config struct {
	Wing       Wing         `toml:"wing"`
	Flow       Flow         `toml:"flow"`
	Polar      Polar        `toml:"polar"`
	Kernel     Kernel       `toml:"kernel"`
	Solver     Solver       `toml:"solver"`
	FreeVortex []FreeVortex `toml:"free_vortex"`
}

// Wing is the planform.
type Wing struct {
	RootChord  float64 `toml:"root_chord"`
	TipChord   float64 `toml:"tip_chord"`
	Span       float64 `toml:"span"`
	Segments   int     `toml:"segments"`
	Units      string  `toml:"units"`
	Spacing    string  `toml:"spacing"`
	Incidence  float64 `toml:"incidence"`
	Twist      float64 `toml:"twist"`
	Dihedral   float64 `toml:"dihedral"`
	Sweep      float64 `toml:"sweep"`
	Section    string  `toml:"section"`
	WakeLength float64 `toml:"wake_length"`
}

// Flow is the onset flow. Angles are degrees.
type Flow struct {
	Speed float64 `toml:"speed"`
	Alpha float64 `toml:"alpha"`
	Beta  float64 `toml:"beta"`
	Rho   float64 `toml:"rho"`
}

// Polar selects the section lift curve.
type Polar struct {
	Kind   string       `toml:"kind"`   // thin, linear or table
	Slope  float64      `toml:"slope"`  // per degree, linear only
	Alpha0 float64      `toml:"alpha0"` // zero-lift angle, thin and linear
	Interp string       `toml:"interp"` // cubic, akima or linear, table only
	Table  [][2]float64 `toml:"table"`  // (alpha, cl) pairs
}

// Polar kinds.
const (
	PolarThin   = "thin"
	PolarLinear = "linear"
	PolarTable  = "table"
)

// Kernel tunes the Biot-Savart evaluation.
type Kernel struct {
	CoreFraction float64 `toml:"core_fraction"`
	Workers      int     `toml:"workers"`
}

// Solver selects and tunes the outer solver. Zero values use the solver
// package defaults.
type Solver struct {
	Method    string  `toml:"method"`
	Tolerance float64 `toml:"tolerance"`
	MaxIter   int     `toml:"max_iter"`
	Frequency float64 `toml:"frequency"`
	Damping   float64 `toml:"damping"`
	FPS       int     `toml:"fps"`
}

// FreeVortex is a fixed filament, in wing units.
type FreeVortex struct {
	Node1 [3]float64 `toml:"node1"`
	Node2 [3]float64 `toml:"node2"`
	Gamma float64    `toml:"gamma"`
	L0    float64    `toml:"l0"`
}

// Default returns the rectangular reference wing.
func Default() Config {
	return Config{
		Wing: Wing{
			RootChord: 1,
			TipChord:  1,
			Span:      5,
			Segments:  40,
			Units:     "m",
			Spacing:   string(wing.Uniform),
			Section:   "square",
		},
		Flow:   Flow{Speed: 10, Alpha: 5, Rho: 1.225},
		Polar:  Polar{Kind: PolarThin},
		Kernel: Kernel{CoreFraction: vortex.DefaultCoreFraction},
		Solver: Solver{Method: string(solver.MethodNewton)},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := undecoded(md); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode reads a case from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := undecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// undecoded rejects misspelled keys, which would otherwise silently keep
// their defaults.
func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Validate checks the case without building anything expensive.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.WingConfig(); err != nil {
		errs = append(errs, err)
	}
	if c.Flow.Speed < 0 {
		errs = append(errs, fmt.Errorf("flow: negative speed %g", c.Flow.Speed))
	}
	if c.Flow.Rho <= 0 {
		errs = append(errs, fmt.Errorf("flow: density must be positive, got %g", c.Flow.Rho))
	}
	if _, err := c.LiftCurve(); err != nil {
		errs = append(errs, err)
	}
	if c.Kernel.CoreFraction <= 0 {
		errs = append(errs, fmt.Errorf("kernel: core fraction must be positive, got %g", c.Kernel.CoreFraction))
	}
	if _, err := solver.ParseMethod(c.Solver.Method); err != nil {
		errs = append(errs, err)
	}
	for i, fv := range c.FreeVortex {
		if fv.L0 <= 0 {
			errs = append(errs, fmt.Errorf("free_vortex %d: l0 must be positive", i))
		}
	}
	return errors.Join(errs...)
}

// WingConfig converts the [wing] table.
func (c Config) WingConfig() (wing.Config, error) {
	w := c.Wing
	ls, err := units.Parse(w.Units)
	if err != nil {
		return wing.Config{}, fmt.Errorf("wing: %w", err)
	}
	sec, err := wing.SectionByName(w.Section)
	if err != nil {
		return wing.Config{}, fmt.Errorf("wing: %w", err)
	}
	wc := wing.Config{
		RootChord:  w.RootChord,
		TipChord:   w.TipChord,
		Span:       w.Span,
		Segments:   w.Segments,
		Units:      ls,
		Spacing:    wing.Spacing(strings.ToLower(w.Spacing)),
		Incidence:  w.Incidence,
		Twist:      w.Twist,
		Dihedral:   w.Dihedral,
		Sweep:      w.Sweep,
		Section:    sec,
		WakeLength: w.WakeLength,
	}
	return wc, wc.Validate()
}

// LiftCurve builds the [polar] section lift curve.
func (c Config) LiftCurve() (liftline.LiftCurve, error) {
	p := c.Polar
	switch strings.ToLower(p.Kind) {
	case "", PolarThin:
		return polar.ThinAirfoil(p.Alpha0), nil
	case PolarLinear:
		if p.Slope == 0 {
			return nil, errors.New("polar: linear polar needs a slope")
		}
		return polar.Linear{Slope: p.Slope, Alpha0: p.Alpha0}, nil
	case PolarTable:
		kind, err := polar.ParseKind(p.Interp)
		if err != nil {
			return nil, fmt.Errorf("polar: %w", err)
		}
		pts := make([]polar.Point, len(p.Table))
		for i, row := range p.Table {
			pts[i] = polar.Point{Alpha: row[0], CL: row[1]}
		}
		s, err := polar.NewSpline(kind, pts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("polar: unknown kind %q (want thin, linear or table)", p.Kind)
}

// VortexKernel returns the configured kernel.
func (c Config) VortexKernel() vortex.Kernel {
	return vortex.Kernel{CoreFraction: c.Kernel.CoreFraction, Workers: c.Kernel.Workers}
}

// FreeVortices converts the [[free_vortex]] tables.
func (c Config) FreeVortices() []liftline.FreeVortex {
	out := make([]liftline.FreeVortex, len(c.FreeVortex))
	for i, fv := range c.FreeVortex {
		out[i] = liftline.FreeVortex{
			Node1: math3d.FromArray(fv.Node1),
			Node2: math3d.FromArray(fv.Node2),
			Gamma: fv.Gamma,
			L0:    fv.L0,
		}
	}
	return out
}

// SolverOptions returns the configured solver method and options.
func (c Config) SolverOptions() (solver.Method, solver.Options, error) {
	m, err := solver.ParseMethod(c.Solver.Method)
	if err != nil {
		return "", solver.Options{}, err
	}
	return m, solver.Options{
		Tolerance: c.Solver.Tolerance,
		MaxIter:   c.Solver.MaxIter,
		Workers:   c.Kernel.Workers,
		FPS:       c.Solver.FPS,
		Frequency: c.Solver.Frequency,
		Damping:   c.Solver.Damping,
	}, nil
}

// Case is a built, ready-to-solve configuration.
type Case struct {
	Wing    *wing.Wing
	Problem *liftline.Problem
	Method  solver.Method
	Options solver.Options
}

// Build discretizes the wing and assembles the residual problem.
func (c Config) Build() (*Case, error) {
	wc, err := c.WingConfig()
	if err != nil {
		return nil, err
	}
	w, err := wing.New(wc)
	if err != nil {
		return nil, err
	}
	curve, err := c.LiftCurve()
	if err != nil {
		return nil, err
	}
	k := c.VortexKernel()
	free, err := liftline.FreeVelocity(k, w.ControlPoints(), c.FreeVortices(), w.Units())
	if err != nil {
		return nil, fmt.Errorf("free vortices: %w", err)
	}
	p, err := liftline.NewProblem(w, k, liftline.Flow{
		Rho:    c.Flow.Rho,
		Motion: liftline.Freestream(c.Flow.Speed, c.Flow.Alpha, c.Flow.Beta),
		Free:   free,
	}, curve)
	if err != nil {
		return nil, err
	}
	m, opts, err := c.SolverOptions()
	if err != nil {
		return nil, err
	}
	return &Case{Wing: w, Problem: p, Method: m, Options: opts}, nil
}
