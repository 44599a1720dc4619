package models

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/wing"
)

func testWing(t *testing.T) *wing.Wing {
	t.Helper()
	w, err := wing.New(wing.Config{RootChord: 1, TipChord: 1, Span: 5, Segments: 4})
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestSurface(t *testing.T) {
	m := Surface(testWing(t))

	// 5 rings of the 4-point square section, 2 triangles per quad.
	if m.VertexCount() != 20 || m.TriangleCount() != 32 || m.LineCount() != 0 {
		t.Fatalf("got %d vertices, %d triangles, %d lines", m.VertexCount(), m.TriangleCount(), m.LineCount())
	}
	wantMin, wantMax := math3d.V3(-0.25, -2.5, -0.5), math3d.V3(0.75, 2.5, 0.5)
	if m.BoundsMin.Distance(wantMin) > 1e-12 || m.BoundsMax.Distance(wantMax) > 1e-12 {
		t.Errorf("bounds = %v .. %v", m.BoundsMin, m.BoundsMax)
	}
	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal %v is not unit", i, v.Normal)
		}
	}
}

func TestLattice(t *testing.T) {
	w := testWing(t)
	m := Lattice(w.Lattice())
	if m.LineCount() != 16 || m.VertexCount() != 32 {
		t.Fatalf("got %d lines over %d vertices", m.LineCount(), m.VertexCount())
	}
	// Bound filaments come first and lie on the quarter-chord line.
	for k := range 4 {
		a := m.Vertices[m.Lines[k][0]].Position
		b := m.Vertices[m.Lines[k][1]].Position
		if a.X != 0 || b.X != 0 || b.Y <= a.Y {
			t.Errorf("bound filament %d runs %v -> %v", k, a, b)
		}
	}
	if got := m.Size().X; got != wing.DefaultWakeSpans*5 {
		t.Errorf("wake extent = %v", got)
	}
}

func TestGLBRoundTrip(t *testing.T) {
	w := testWing(t)
	surface, lattice := Surface(w), Lattice(w.Lattice())

	var buf bytes.Buffer
	if err := WriteGLB(&buf, surface, lattice); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatal("output is not a binary glTF")
	}

	got, err := ReadGLB(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d meshes, want 2", len(got))
	}

	for i, want := range []*Mesh{surface, lattice} {
		m := got[i]
		if m.Name != want.Name {
			t.Errorf("mesh %d name = %q, want %q", i, m.Name, want.Name)
		}
		if m.VertexCount() != want.VertexCount() || m.TriangleCount() != want.TriangleCount() || m.LineCount() != want.LineCount() {
			t.Errorf("%s: %d/%d/%d, want %d/%d/%d", m.Name,
				m.VertexCount(), m.TriangleCount(), m.LineCount(),
				want.VertexCount(), want.TriangleCount(), want.LineCount())
			continue
		}
		for j := range m.Vertices {
			// float32 storage
			if d := m.Vertices[j].Position.Distance(want.Vertices[j].Position); d > 1e-4 {
				t.Errorf("%s vertex %d moved by %v", m.Name, j, d)
			}
		}
		for j := range m.Faces {
			if m.Faces[j] != want.Faces[j] {
				t.Errorf("%s face %d = %v, want %v", m.Name, j, m.Faces[j], want.Faces[j])
			}
		}
		for j := range m.Lines {
			if m.Lines[j] != want.Lines[j] {
				t.Errorf("%s line %d = %v, want %v", m.Name, j, m.Lines[j], want.Lines[j])
			}
		}
	}
}

func TestLoadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.glb")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteGLB(f, Lattice(testWing(t).Lattice())); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadGLB(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 || meshes[0].LineCount() != 16 {
		t.Errorf("unexpected meshes %v", meshes)
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	if _, err := LoadGLB("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestWriteGLBEmptyMesh(t *testing.T) {
	if err := WriteGLB(&bytes.Buffer{}, NewMesh("empty")); err == nil {
		t.Error("expected error for a mesh without vertices")
	}
}

func TestTransformAndClone(t *testing.T) {
	m := Lattice(testWing(t).Lattice())
	c := m.Clone()
	c.Transform(math3d.TranslationMatrix(math3d.V3(0, 0, 1)))

	if m.BoundsMin.Z != 0 {
		t.Errorf("original moved: %v", m.BoundsMin)
	}
	if c.BoundsMin.Z != 1 || c.BoundsMax.Z != 1 {
		t.Errorf("clone bounds z = %v .. %v, want 1", c.BoundsMin.Z, c.BoundsMax.Z)
	}
	if got, want := c.Center().Sub(m.Center()), math3d.V3(0, 0, 1); got.Distance(want) > 1e-12 {
		t.Errorf("center shift = %v", got)
	}
}
