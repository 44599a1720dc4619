package math3d

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"

	"github.com/taigrr/liftline/pkg/shape"
)

var samplePoints = []Vec3{
	V3(0, 0, 0),
	V3(1, 2, 3),
	V3(-4, 0.5, 2),
	V3(0.25, -0.125, 10),
}

func TestApplyTransformRoundTrip(t *testing.T) {
	axis := V3(1, -2, 0.5).Normalize()
	const angle = 41.0
	offset := V3(0.3, -7, 2)

	forward := TranslationMatrix(offset).Mul(RotationMatrix(axis, angle, true))
	inverse := RotationMatrix(axis, -angle, true).Mul(TranslationMatrix(offset.Negate()))

	for _, layout := range []Layout{Rows, Columns} {
		t.Run(layout.String(), func(t *testing.T) {
			in := ToDense(samplePoints, layout)
			moved, err := ApplyTransform(forward, in, layout)
			if err != nil {
				t.Fatal(err)
			}
			back, err := ApplyTransform(inverse, moved, layout)
			if err != nil {
				t.Fatal(err)
			}
			if !mat.EqualApprox(in, back, 1e-12) {
				t.Errorf("round trip mismatch:\n%v\n%v", mat.Formatted(in), mat.Formatted(back))
			}
		})
	}
}

func TestApplyTransformLayoutsAgree(t *testing.T) {
	m := TranslationMatrix(V3(1, 2, 3)).Mul(RotationMatrix(UnitZ(), 30, true))

	rows, err := ApplyTransform(m, ToDense(samplePoints, Rows), Rows)
	if err != nil {
		t.Fatal(err)
	}
	cols, err := ApplyTransform(m, ToDense(samplePoints, Columns), Columns)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(rows, cols.T()) {
		t.Errorf("rows result is not the transpose of columns result")
	}

	got, err := FromDense(rows, Rows)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]Vec3, len(samplePoints))
	for i, p := range samplePoints {
		want[i] = m.MulVec3(p)
	}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("batched transform differs from per-point transform:\n%s", d)
	}
}

func TestApplyTransformShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		vecs   mat.Matrix
		layout Layout
	}{
		{"rows with 4 columns", mat.NewDense(2, 4, nil), Rows},
		{"columns with 2 rows", mat.NewDense(2, 5, nil), Columns},
		{"column batch passed as rows", mat.NewDense(3, 5, nil), Rows},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyTransform(Identity(), tc.vecs, tc.layout)
			if !errors.Is(err, shape.ErrMismatch) {
				t.Errorf("expected shape mismatch, got %v", err)
			}
		})
	}

	if _, err := ApplyTransform(Identity(), mat.NewDense(3, 3, nil), Layout(7)); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestApplyTransformEmpty(t *testing.T) {
	out, err := ApplyTransform(Identity(), &mat.Dense{}, Rows)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := out.Dims(); r != 0 || c != 0 {
		t.Errorf("dims = (%d, %d), want empty", r, c)
	}
}

func TestTransformPoints(t *testing.T) {
	m := TranslationMatrix(V3(0, 0, 1))
	got := TransformPoints(m, samplePoints)
	for i, p := range samplePoints {
		if got[i].Distance(p.Add(V3(0, 0, 1))) > 1e-12 {
			t.Errorf("point %d = %v", i, got[i])
		}
	}
}
