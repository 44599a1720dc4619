package vortex

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
)

func TestVelocityApproachesLineVortex(t *testing.T) {
	const (
		gamma = 2.0
		d     = 0.5
		half  = 1000.0
	)
	node1 := math3d.V3(0, -half, 0)
	node2 := math3d.V3(0, half, 0)
	cp := math3d.V3(d, 0, 0)
	want := gamma / (2 * math.Pi * d)

	prevErr := math.Inf(1)
	for _, l0 := range []float64{2 * half, 200, 20, 2, 0.2} {
		u := Velocity(cp, node1, node2, gamma, l0)
		if u.X != 0 || u.Y != 0 || u.Z >= 0 {
			t.Fatalf("l0=%v: velocity %v should point along -z", l0, u)
		}
		relErr := math.Abs(u.Len()-want) / want
		if relErr > prevErr {
			t.Errorf("l0=%v: error %v grew from %v", l0, relErr, prevErr)
		}
		prevErr = relErr
	}
	if prevErr > 1e-6 {
		t.Errorf("final relative error %v, want < 1e-6", prevErr)
	}
}

func TestVelocityAntisymmetric(t *testing.T) {
	k := DefaultKernel()
	cases := []struct {
		cp, n1, n2 math3d.Vec3
		l0         float64
	}{
		{math3d.V3(0.3, 0.2, 0.1), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), 1},
		{math3d.V3(-2, 5, 1), math3d.V3(1, 1, 1), math3d.V3(3, -2, 0.5), 0.1},
		{math3d.V3(10, 0, 0), math3d.V3(0, -1, 0), math3d.V3(0, 1, 0), 2},
		{math3d.V3(0, 0.5, 0), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), 1},
	}
	for i, c := range cases {
		fwd := k.Velocity(c.cp, c.n1, c.n2, 1.7, c.l0)
		rev := k.Velocity(c.cp, c.n2, c.n1, 1.7, c.l0)
		if fwd.Add(rev) != (math3d.Vec3{}) {
			t.Errorf("case %d: forward %v, reversed %v are not negatives", i, fwd, rev)
		}
	}
}

func TestVelocityOnFilamentLine(t *testing.T) {
	n1 := math3d.V3(0, 0, 0)
	n2 := math3d.V3(0, 1, 0)
	points := []math3d.Vec3{
		math3d.V3(0, 0.5, 0), // midpoint
		math3d.V3(0, 3, 0),   // beyond node2
		n1,                   // coincident with an endpoint
	}
	for _, p := range points {
		u := Velocity(p, n1, n2, 1, 1)
		if u != (math3d.Vec3{}) {
			t.Errorf("point %v on filament line: velocity %v, want zero", p, u)
		}
	}

	// Very close to the line the regularized result stays bounded.
	near := Velocity(math3d.V3(1e-9, 0.5, 0), n1, n2, 1, 1)
	if math.IsNaN(near.Len()) || math.IsInf(near.Len(), 0) {
		t.Errorf("near-singular velocity not finite: %v", near)
	}

	raw := Kernel{}.Velocity(math3d.V3(0, 0.5, 0), n1, n2, 1, 1)
	if !math.IsNaN(raw.Z) {
		t.Errorf("unregularized on-line velocity = %v, want NaN", raw)
	}
}

func randomScene() (xcp, n1, n2 []math3d.Vec3) {
	for i := range 7 {
		f := float64(i)
		xcp = append(xcp, math3d.V3(0.25*f, math.Sin(f), 0.1*f*f))
	}
	for j := range 11 {
		f := float64(j)
		n1 = append(n1, math3d.V3(math.Cos(f), f-5, 0.2))
		n2 = append(n2, math3d.V3(math.Cos(f)+1, f-4.5, -0.3*f))
	}
	return xcp, n1, n2
}

func TestInduceMatchesPairLoop(t *testing.T) {
	xcp, n1, n2 := randomScene()
	gamma := make([]float64, len(n1))
	l0 := make([]float64, len(n1))
	for j := range gamma {
		gamma[j] = 0.5 + float64(j)
		l0[j] = n1[j].Distance(n2[j])
	}

	k := DefaultKernel()
	got, err := k.Induce(xcp, n1, n2, gamma, l0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Shape() != [3]int{len(xcp), len(n1), 3} {
		t.Fatalf("shape = %v", got.Shape())
	}
	for i := range xcp {
		for j := range n1 {
			want := k.Velocity(xcp[i], n1[j], n2[j], gamma[j], l0[j])
			if got.At(i, j) != want {
				t.Errorf("(%d, %d): batched %v, pair %v", i, j, got.At(i, j), want)
			}
		}
	}

	serial, err := Kernel{CoreFraction: DefaultCoreFraction, Workers: 1}.Induce(xcp, n1, n2, gamma, l0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(got.Raw(), serial.Raw()); d != "" {
		t.Errorf("worker count changed the result:\n%s", d)
	}
}

func TestInduceBroadcast(t *testing.T) {
	xcp, n1, n2 := randomScene()
	scalar, err := Induce(xcp, n1, n2, []float64{3}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}

	gamma := make([]float64, len(n1))
	l0 := make([]float64, len(n1))
	for j := range gamma {
		gamma[j], l0[j] = 3, 0.5
	}
	full, err := Induce(xcp, n1, n2, gamma, l0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(full.Raw(), scalar.Raw()); d != "" {
		t.Errorf("scalar broadcast differs:\n%s", d)
	}

	unit, err := Induce(xcp, n1, n2, []float64{1}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(full.Raw(), unit.Scale(3).Raw(), cmpopts.EquateApprox(1e-14, 0)); d != "" {
		t.Errorf("influence is not linear in gamma:\n%s", d)
	}
}

func TestInduceShapeErrors(t *testing.T) {
	xcp, n1, n2 := randomScene()
	tests := []struct {
		name  string
		n2    []math3d.Vec3
		gamma []float64
		l0    []float64
	}{
		{"node2 short", n2[:3], []float64{1}, []float64{1}},
		{"gamma wrong length", n2, []float64{1, 2}, []float64{1}},
		{"l0 empty", n2, []float64{1}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Induce(xcp, n1, tc.n2, tc.gamma, tc.l0)
			if !errors.Is(err, shape.ErrMismatch) {
				t.Errorf("expected shape mismatch, got %v", err)
			}
		})
	}
}

func TestInduceEmpty(t *testing.T) {
	out, err := Induce(nil, nil, nil, []float64{1}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	if out.Points != 0 || out.Segments != 0 || len(out.Sum()) != 0 {
		t.Errorf("unexpected result %v", out)
	}
}

func BenchmarkInduce(b *testing.B) {
	n := 40
	a := make([]math3d.Vec3, n)
	bb := make([]math3d.Vec3, n)
	cp := make([]math3d.Vec3, n)
	for i := range n {
		y0 := -2.5 + 5*float64(i)/float64(n)
		y1 := -2.5 + 5*float64(i+1)/float64(n)
		a[i], bb[i] = math3d.V3(0.25, y0, 0), math3d.V3(0.25, y1, 0)
		cp[i] = a[i].Lerp(bb[i], 0.5)
	}
	lat, _ := Horseshoes(a, bb, math3d.V3(100, 0, 0))
	k := DefaultKernel()

	for b.Loop() {
		_, _ = lat.Influence(k, cp)
	}
}
