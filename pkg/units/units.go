// Package units names the length unit a geometry is expressed in.
//
// A Length is the number of metres in one geometry unit. The residual uses it
// to bring segment vectors, influence coefficients and reference areas into
// SI before combining them with velocities in m/s and density in kg/m^3.
package units

import (
	"fmt"
	"strings"
)

// Length is metres per geometry unit.
type Length float64

// Common length units.
const (
	Metre      Length = 1
	Centimetre Length = 1e-2
	Millimetre Length = 1e-3
	Inch       Length = 0.0254
	Foot       Length = 0.3048
)

// Parse accepts the usual abbreviations ("m", "cm", "mm", "in", "ft").
func Parse(s string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "metre", "meter", "":
		return Metre, nil
	case "cm":
		return Centimetre, nil
	case "mm":
		return Millimetre, nil
	case "in", "inch":
		return Inch, nil
	case "ft", "foot", "feet":
		return Foot, nil
	default:
		return 0, fmt.Errorf("unknown length unit %q", s)
	}
}

// Metres converts a length in this unit to metres.
func (l Length) Metres(v float64) float64 { return v * float64(l) }

// Area is the square-metre size of one square geometry unit.
func (l Length) Area() float64 { return float64(l) * float64(l) }

// Volume is the cubic-metre size of one cubic geometry unit.
func (l Length) Volume() float64 { return float64(l) * float64(l) * float64(l) }

// Inverse converts a per-geometry-unit quantity to per-metre.
func (l Length) Inverse() float64 { return 1 / float64(l) }

func (l Length) String() string {
	switch l {
	case Metre:
		return "m"
	case Centimetre:
		return "cm"
	case Millimetre:
		return "mm"
	case Inch:
		return "in"
	case Foot:
		return "ft"
	default:
		return fmt.Sprintf("%gm", float64(l))
	}
}
