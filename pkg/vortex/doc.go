// Package vortex evaluates the velocity induced by straight vortex filaments.
//
// The kernel is the finite-segment Biot-Savart law with a viscous-core
// regularization whose radius is a fixed fraction of a per-segment reference
// length:
//
//	u = Γ (|r1| + |r2|) (r1 × r2) / (4π |r1||r2| (|r1||r2| + r1·r2) + (f·l0)²)
//
// with r1 = p - node1 and r2 = p - node2. The regularization keeps the result
// finite when p lies on or near the filament's line; a point exactly on the
// line (outside the segment or at its midpoint) sees zero velocity.
//
// Results are returned as an Influence tensor with axes
// (control point, segment, spatial component).
package vortex
