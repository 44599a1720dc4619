package math3d

import (
	"math"
	"testing"
)

const eps = 1e-12

func matApproxEqual(a, b Mat4, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestRotationMatrixKnownAngles(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"z quarter turn", UnitZ(), 90, V3(1, 0, 0), V3(0, 1, 0)},
		{"x quarter turn", UnitX(), 90, V3(0, 1, 0), V3(0, 0, 1)},
		{"y quarter turn", UnitY(), 90, V3(0, 0, 1), V3(1, 0, 0)},
		{"y nose up", UnitY(), 30, V3(1, 0, 0), V3(math.Cos(math.Pi/6), 0, -0.5)},
		{"half turn", UnitZ(), 180, V3(1, 2, 3), V3(-1, -2, 3)},
		{"zero", V3(0.6, 0, 0.8), 0, V3(4, 5, 6), V3(4, 5, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotationMatrix(tc.axis, tc.angle, true).MulVec3(tc.in)
			if got.Distance(tc.want) > 1e-12 {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationMatrixRadians(t *testing.T) {
	axis := V3(1, 2, 2).Normalize()
	deg := RotationMatrix(axis, 37, true)
	rad := RotationMatrix(axis, Radians(37), false)
	if !matApproxEqual(deg, rad, eps) {
		t.Errorf("degree and radian forms differ:\n%v\n%v", deg, rad)
	}
}

func TestRotationMatrixOrthonormal(t *testing.T) {
	axes := []Vec3{
		UnitX(), UnitY(), UnitZ(),
		V3(1, 1, 1).Normalize(),
		V3(-0.3, 0.5, 2).Normalize(),
	}
	angles := []float64{-270, -45, 0, 12.5, 90, 179, 360}

	for _, axis := range axes {
		for _, angle := range angles {
			r := RotationMatrix(axis, angle, true)

			// R^T R == I on the 3x3 block
			if got := r.Transpose().Mul(r); !matApproxEqual(got, Identity(), 1e-12) {
				t.Errorf("axis %v angle %v: R^T R = %v", axis, angle, got)
			}
			if !matApproxEqual(r.Transpose(), r.Inverse(), 1e-12) {
				t.Errorf("axis %v angle %v: transpose != inverse", axis, angle)
			}
			if d := r.Determinant(); math.Abs(d-1) > 1e-12 {
				t.Errorf("axis %v angle %v: det = %v", axis, angle, d)
			}
			// The axis is a fixed point.
			if got := r.MulVec3(axis); got.Distance(axis) > 1e-12 {
				t.Errorf("axis %v angle %v: axis moved to %v", axis, angle, got)
			}
		}
	}
}

func TestRotationMatrixDoesNotNormalize(t *testing.T) {
	r := RotationMatrix(V3(0, 0, 2), 90, true)
	// With |axis| = 2 the z scale picks up t*z*z = 4 instead of 1.
	if got := r.Get(2, 2); math.Abs(got-4) > eps {
		t.Errorf("R[2][2] = %v, want 4 for an unnormalized axis", got)
	}
}

func TestTranslationMatrix(t *testing.T) {
	m := TranslationMatrix(V3(1, -2, 3))
	if got := m.MulVec3(V3(1, 1, 1)); got != V3(2, -1, 4) {
		t.Errorf("point = %v", got)
	}
	if got := m.MulVec3Dir(V3(1, 1, 1)); got != V3(1, 1, 1) {
		t.Errorf("direction should ignore translation, got %v", got)
	}
	if got := m.Translation(); got != V3(1, -2, 3) {
		t.Errorf("Translation() = %v", got)
	}
}

func TestMat4InverseComposite(t *testing.T) {
	m := TranslationMatrix(V3(3, 0, -1)).
		Mul(RotationMatrix(V3(0, 1, 1).Normalize(), 33, true)).
		Mul(Scale(V3(2, 2, 2)))
	if got := m.Mul(m.Inverse()); !matApproxEqual(got, Identity(), 1e-12) {
		t.Errorf("M * M^-1 = %v", got)
	}
}

func TestMat4GetSet(t *testing.T) {
	var m Mat4
	m.Set(1, 3, 7)
	if m[13] != 7 || m.Get(1, 3) != 7 {
		t.Errorf("column-major indexing broken: %v", m)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Vec2{V2(0, 0), V2(1, 0), V2(1, 1), V2(0, 1)}
	if got := PolygonArea(square); math.Abs(got-1) > eps {
		t.Errorf("square area = %v", got)
	}
	reversed := []Vec2{V2(0, 1), V2(1, 1), V2(1, 0), V2(0, 0)}
	if got := PolygonArea(reversed); math.Abs(got+1) > eps {
		t.Errorf("clockwise area = %v, want -1", got)
	}
	if got := PolygonArea(square[:2]); got != 0 {
		t.Errorf("degenerate area = %v", got)
	}
}
