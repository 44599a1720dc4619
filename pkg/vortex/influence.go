package vortex

import (
	"fmt"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
)

// Influence is a dense (P, Q, 3) tensor of induced velocities: element
// (i, j) is the velocity at control point i due to segment j.
//
// Storage is row-major over (point, segment, component), so one control
// point's row of Q vectors is contiguous.
type Influence struct {
	Points   int
	Segments int
	data     []float64
}

// NewInfluence allocates a zeroed (points, segments, 3) tensor.
func NewInfluence(points, segments int) *Influence {
	return &Influence{
		Points:   points,
		Segments: segments,
		data:     make([]float64, points*segments*3),
	}
}

func (f *Influence) offset(i, j int) int {
	return (i*f.Segments + j) * 3
}

// At returns the velocity at point i due to segment j.
func (f *Influence) At(i, j int) math3d.Vec3 {
	o := f.offset(i, j)
	return math3d.V3(f.data[o], f.data[o+1], f.data[o+2])
}

// Set stores the velocity at point i due to segment j.
func (f *Influence) Set(i, j int, v math3d.Vec3) {
	o := f.offset(i, j)
	f.data[o], f.data[o+1], f.data[o+2] = v.X, v.Y, v.Z
}

// Shape returns the tensor dimensions (points, segments, 3).
func (f *Influence) Shape() [3]int {
	return [3]int{f.Points, f.Segments, 3}
}

// Raw exposes the backing slice in (point, segment, component) order.
func (f *Influence) Raw() []float64 {
	return f.data
}

// Scale returns a copy of f with every element multiplied by s.
func (f *Influence) Scale(s float64) *Influence {
	out := NewInfluence(f.Points, f.Segments)
	for k, v := range f.data {
		out.data[k] = v * s
	}
	return out
}

// Sum reduces over the segment axis, giving the total velocity per point.
func (f *Influence) Sum() []math3d.Vec3 {
	out := make([]math3d.Vec3, f.Points)
	for i := range out {
		var u math3d.Vec3
		for j := range f.Segments {
			u = u.Add(f.At(i, j))
		}
		out[i] = u
	}
	return out
}

// Contract weights each segment column by w[j] and reduces over the segment
// axis: out[i] = Σ_j w[j] f(i, j).
func (f *Influence) Contract(w []float64) ([]math3d.Vec3, error) {
	if err := shape.Len("vortex.Influence.Contract", "weights", f.Segments, len(w)); err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, f.Points)
	for i := range out {
		var u math3d.Vec3
		for j, wj := range w {
			u = u.Add(f.At(i, j).Scale(wj))
		}
		out[i] = u
	}
	return out, nil
}

func (f *Influence) String() string {
	return fmt.Sprintf("Influence(%d, %d, 3)", f.Points, f.Segments)
}
