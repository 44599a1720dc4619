package wing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/taigrr/liftline/pkg/math3d"
)

// Section is a closed airfoil outline in chord-normalized coordinates:
// x runs from the leading edge (0) to the trailing edge (1), y is normal to
// the chord.
type Section struct {
	Name    string
	Outline []math3d.Vec2
}

// Area returns the enclosed area of the outline as a fraction of chord².
func (s Section) Area() float64 {
	return math.Abs(math3d.PolygonArea(s.Outline))
}

// Square is the unit-square section used by regression cases: area 1.
func Square() Section {
	return Section{
		Name: "square",
		Outline: []math3d.Vec2{
			math3d.V2(0, -0.5),
			math3d.V2(1, -0.5),
			math3d.V2(1, 0.5),
			math3d.V2(0, 0.5),
		},
	}
}

// NACA4 returns the outline of a NACA four-digit section such as "2412",
// with n points per surface.
func NACA4(code string, n int) (Section, error) {
	if len(code) != 4 {
		return Section{}, fmt.Errorf("naca: code %q is not four digits", code)
	}
	digits, err := strconv.Atoi(code)
	if err != nil || digits < 0 {
		return Section{}, fmt.Errorf("naca: code %q is not four digits", code)
	}
	if n < 3 {
		return Section{}, fmt.Errorf("naca: need at least 3 points per surface, got %d", n)
	}
	m := float64(digits/1000) / 100
	p := float64(digits/100%10) / 10
	t := float64(digits%100) / 100

	upper := make([]math3d.Vec2, n)
	lower := make([]math3d.Vec2, n)
	for i := range n {
		// Cosine clustering toward both edges.
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n-1)))
		yt := 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1036*x*x*x*x)

		var yc, dyc float64
		switch {
		case m == 0 || p == 0:
		case x < p:
			yc = m / (p * p) * (2*p*x - x*x)
			dyc = 2 * m / (p * p) * (p - x)
		default:
			yc = m / ((1 - p) * (1 - p)) * (1 - 2*p + 2*p*x - x*x)
			dyc = 2 * m / ((1 - p) * (1 - p)) * (p - x)
		}
		th := math.Atan(dyc)
		s, c := math.Sincos(th)
		upper[i] = math3d.V2(x-yt*s, yc+yt*c)
		lower[i] = math3d.V2(x+yt*s, yc-yt*c)
	}

	// Counter-clockwise: lower surface LE->TE, then upper TE->LE.
	outline := make([]math3d.Vec2, 0, 2*n-2)
	outline = append(outline, lower...)
	for i := n - 2; i > 0; i-- {
		outline = append(outline, upper[i])
	}
	return Section{Name: "naca" + code, Outline: outline}, nil
}

// SectionByName resolves the built-in section names ("square",
// "nacaXXXX").
func SectionByName(name string) (Section, error) {
	switch {
	case name == "" || name == "square":
		return Square(), nil
	case len(name) == 8 && name[:4] == "naca":
		return NACA4(name[4:], 40)
	default:
		return Section{}, fmt.Errorf("unknown section %q", name)
	}
}
