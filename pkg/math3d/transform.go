package math3d

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/taigrr/liftline/pkg/shape"
)

// Layout selects how a batch of 3D vectors is laid out in a matrix.
type Layout int

const (
	// Rows stores one vector per row: an (m, 3) matrix.
	Rows Layout = iota
	// Columns stores one vector per column: a (3, m) matrix.
	Columns
)

func (l Layout) String() string {
	switch l {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Dense returns m as a 4x4 gonum matrix.
func (m Mat4) Dense() *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for r := range 4 {
		for c := range 4 {
			d.Set(r, c, m.Get(r, c))
		}
	}
	return d
}

// ApplyTransform applies the homogeneous transform m to every vector of the
// batch and returns the transformed batch in the same layout. Vectors are
// treated as points (w=1), so translations apply.
//
// A Rows batch must have 3 columns and a Columns batch 3 rows; anything else
// is rejected with a *shape.Error.
func ApplyTransform(m Mat4, vecs mat.Matrix, layout Layout) (*mat.Dense, error) {
	r, c := vecs.Dims()
	if r == 0 && c == 0 {
		return &mat.Dense{}, nil
	}

	var n int
	switch layout {
	case Rows:
		if err := shape.Dims("math3d.ApplyTransform", "vectors", -1, 3, r, c); err != nil {
			return nil, err
		}
		n = r
	case Columns:
		if err := shape.Dims("math3d.ApplyTransform", "vectors", 3, -1, r, c); err != nil {
			return nil, err
		}
		n = c
	default:
		return nil, fmt.Errorf("math3d.ApplyTransform: unknown layout %v", layout)
	}

	// Homogeneous coordinates, one point per column.
	h := mat.NewDense(4, n, nil)
	for j := range n {
		for i := range 3 {
			if layout == Rows {
				h.Set(i, j, vecs.At(j, i))
			} else {
				h.Set(i, j, vecs.At(i, j))
			}
		}
		h.Set(3, j, 1)
	}

	var out mat.Dense
	out.Mul(m.Dense(), h)
	xyz := out.Slice(0, 3, 0, n)
	if layout == Rows {
		return mat.DenseCopyOf(xyz.T()), nil
	}
	return mat.DenseCopyOf(xyz), nil
}

// ToDense packs points into a matrix with the given layout.
func ToDense(pts []Vec3, layout Layout) *mat.Dense {
	if len(pts) == 0 {
		return &mat.Dense{}
	}
	var d *mat.Dense
	if layout == Columns {
		d = mat.NewDense(3, len(pts), nil)
	} else {
		d = mat.NewDense(len(pts), 3, nil)
	}
	for j, p := range pts {
		for i, v := range p.Array() {
			if layout == Columns {
				d.Set(i, j, v)
			} else {
				d.Set(j, i, v)
			}
		}
	}
	return d
}

// FromDense unpacks a matrix with the given layout into points.
func FromDense(d mat.Matrix, layout Layout) ([]Vec3, error) {
	r, c := d.Dims()
	if r == 0 && c == 0 {
		return nil, nil
	}
	switch layout {
	case Rows:
		if err := shape.Dims("math3d.FromDense", "vectors", -1, 3, r, c); err != nil {
			return nil, err
		}
		pts := make([]Vec3, r)
		for j := range pts {
			pts[j] = V3(d.At(j, 0), d.At(j, 1), d.At(j, 2))
		}
		return pts, nil
	case Columns:
		if err := shape.Dims("math3d.FromDense", "vectors", 3, -1, r, c); err != nil {
			return nil, err
		}
		pts := make([]Vec3, c)
		for j := range pts {
			pts[j] = V3(d.At(0, j), d.At(1, j), d.At(2, j))
		}
		return pts, nil
	default:
		return nil, fmt.Errorf("math3d.FromDense: unknown layout %v", layout)
	}
}

// TransformPoints applies m to each point through the batched path.
func TransformPoints(m Mat4, pts []Vec3) []Vec3 {
	out, err := ApplyTransform(m, ToDense(pts, Rows), Rows)
	if err != nil {
		// ToDense always yields a well-formed Rows batch.
		panic(err)
	}
	res, err := FromDense(out, Rows)
	if err != nil {
		panic(err)
	}
	return res
}
