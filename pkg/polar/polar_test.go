package polar

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/liftline/pkg/liftline"
)

var (
	_ liftline.LiftCurve = Linear{}
	_ liftline.LiftCurve = (*Spline)(nil)
)

func TestThinAirfoil(t *testing.T) {
	c := ThinAirfoil(-2)
	if got := c.LiftCoefficient(-2); got != 0 {
		t.Errorf("cl at zero-lift angle = %v", got)
	}
	// 2π per radian at one radian past zero lift.
	if got := c.LiftCoefficient(-2 + 180/math.Pi); math.Abs(got-2*math.Pi) > 1e-12 {
		t.Errorf("cl one radian past zero lift = %v, want 2π", got)
	}
}

func TestSplineReproducesLinearData(t *testing.T) {
	lin := ThinAirfoil(0)
	table := Sample(lin.LiftCoefficient, -10, 10, 21)

	for _, kind := range []Kind{NaturalCubic, Akima, Piecewise} {
		t.Run(string(kind), func(t *testing.T) {
			s, err := NewSpline(kind, table)
			if err != nil {
				t.Fatal(err)
			}
			for _, a := range []float64{-9.5, -3.3, 0, 0.25, 4.75, 9.9} {
				if got, want := s.LiftCoefficient(a), lin.LiftCoefficient(a); math.Abs(got-want) > 1e-9 {
					t.Errorf("cl(%v) = %v, want %v", a, got, want)
				}
			}
			if lo, hi := s.Range(); lo != -10 || hi != 10 {
				t.Errorf("Range = %v, %v", lo, hi)
			}
		})
	}
}

func TestSplineSortsInput(t *testing.T) {
	table := []Point{{4, 0.6}, {0, 0.2}, {-4, -0.2}, {8, 0.9}}
	s, err := NewSpline(Piecewise, table)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.LiftCoefficient(2); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("cl(2) = %v, want 0.4", got)
	}
	if table[0].Alpha != 4 {
		t.Error("NewSpline modified the caller's table")
	}
}

func TestSplineErrors(t *testing.T) {
	if _, err := NewSpline(NaturalCubic, []Point{{0, 0}, {1, 0.1}}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := NewSpline(Piecewise, []Point{{0, 0}, {0, 0.1}, {1, 0.2}}); err == nil {
		t.Error("expected error for duplicate angles")
	}
	if _, err := NewSpline("quintic", []Point{{0, 0}, {1, 0.1}, {2, 0.2}}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": NaturalCubic, "Akima": Akima, "linear": Piecewise} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("bezier"); err == nil {
		t.Error("expected error")
	}
}
