// Package liftline evaluates the nonlinear lifting-line residual.
//
// For N spanwise stations the residual compares two estimates of each
// station's lift: the Kutta-Joukowski force of the trial circulation in the
// local flow, and the strip-theory lift from the section lift curve at the
// local angle of attack. An outer root-finder (see package solver) adjusts
// the circulation until the two agree everywhere.
//
// Units: velocities are m/s and density kg/m^3. Geometry may be in any
// length unit; Problem.Units converts segment vectors, influence
// coefficients and reference areas to SI, so circulation is always m^2/s.
package liftline
