// Package polar provides section lift curves for the lifting-line residual.
//
// Every curve here satisfies liftline.LiftCurve: it maps an angle of attack
// in degrees to a lift coefficient.
package polar

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// ThinAirfoilSlope is 2π per radian expressed per degree.
const ThinAirfoilSlope = 2 * math.Pi * math.Pi / 180

// Linear is cl = Slope * (alpha - Alpha0) with alpha in degrees.
type Linear struct {
	Slope  float64 // per degree
	Alpha0 float64 // zero-lift angle, degrees
}

// ThinAirfoil returns the 2π lift curve with the given zero-lift angle.
func ThinAirfoil(alpha0 float64) Linear {
	return Linear{Slope: ThinAirfoilSlope, Alpha0: alpha0}
}

// LiftCoefficient implements liftline.LiftCurve.
func (l Linear) LiftCoefficient(alphaDeg float64) float64 {
	return l.Slope * (alphaDeg - l.Alpha0)
}

// Kind selects the interpolant used by a Spline.
type Kind string

// Supported spline kinds.
const (
	NaturalCubic Kind = "cubic"
	Akima        Kind = "akima"
	Piecewise    Kind = "linear"
)

// ParseKind accepts a Kind name, defaulting to NaturalCubic for "".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case "":
		return NaturalCubic, nil
	case NaturalCubic, Akima, Piecewise:
		return k, nil
	default:
		return "", fmt.Errorf("unknown spline kind %q", s)
	}
}

// Point is one tabulated (alpha, cl) sample, alpha in degrees.
type Point struct {
	Alpha float64
	CL    float64
}

// ErrTooFewPoints is returned when a table cannot support its interpolant.
var ErrTooFewPoints = errors.New("too few polar points")

// Spline interpolates tabulated polar data. Outside the table the
// interpolant holds its end values; callers keep alpha inside the table.
type Spline struct {
	kind   Kind
	lo, hi float64
	fit    interp.FittablePredictor
}

// NewSpline fits a spline of the given kind through the table. Points are
// sorted by alpha; duplicate angles are rejected.
func NewSpline(kind Kind, table []Point) (*Spline, error) {
	pts := append([]Point(nil), table...)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Alpha < pts[j].Alpha })

	var fit interp.FittablePredictor
	minPts := 2
	switch kind {
	case NaturalCubic, "":
		kind = NaturalCubic
		fit = &interp.NaturalCubic{}
		minPts = 3
	case Akima:
		fit = &interp.AkimaSpline{}
	case Piecewise:
		fit = &interp.PiecewiseLinear{}
	default:
		return nil, fmt.Errorf("polar: unknown spline kind %q", kind)
	}
	if len(pts) < minPts {
		return nil, fmt.Errorf("polar: %s spline needs %d points, got %d: %w", kind, minPts, len(pts), ErrTooFewPoints)
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		if i > 0 && p.Alpha == pts[i-1].Alpha {
			return nil, fmt.Errorf("polar: duplicate angle %g", p.Alpha)
		}
		xs[i], ys[i] = p.Alpha, p.CL
	}
	if err := fit.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("polar: fit %s spline: %w", kind, err)
	}
	return &Spline{kind: kind, lo: xs[0], hi: xs[len(xs)-1], fit: fit}, nil
}

// LiftCoefficient implements liftline.LiftCurve.
func (s *Spline) LiftCoefficient(alphaDeg float64) float64 {
	return s.fit.Predict(alphaDeg)
}

// Range returns the tabulated angle range in degrees.
func (s *Spline) Range() (lo, hi float64) {
	return s.lo, s.hi
}

// Kind returns the interpolant kind.
func (s *Spline) Kind() Kind {
	return s.kind
}

// Sample tabulates a curve at n evenly spaced angles in [lo, hi].
func Sample(f func(alphaDeg float64) float64, lo, hi float64, n int) []Point {
	if n < 2 {
		return []Point{{Alpha: lo, CL: f(lo)}}
	}
	pts := make([]Point, n)
	for i := range pts {
		a := lo + (hi-lo)*float64(i)/float64(n-1)
		pts[i] = Point{Alpha: a, CL: f(a)}
	}
	return pts
}
