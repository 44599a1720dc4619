package liftline

// LiftCurve maps a section angle of attack in degrees to a lift
// coefficient. Inputs outside the curve's valid range are the caller's
// responsibility.
type LiftCurve interface {
	LiftCoefficient(alphaDeg float64) float64
}

// LiftCurveFunc adapts a plain function to LiftCurve.
type LiftCurveFunc func(alphaDeg float64) float64

// LiftCoefficient calls f.
func (f LiftCurveFunc) LiftCoefficient(alphaDeg float64) float64 {
	return f(alphaDeg)
}
