// Package models builds renderable meshes of a discretized wing and its
// vortex lattice, and reads and writes them as binary glTF.
package models

import (
	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/vortex"
	"github.com/taigrr/liftline/pkg/wing"
)

// Mesh is a set of vertices joined by triangles, line segments or both.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Lines    [][2]int // index pairs into Vertices

	// Bounding box (calculated on build and load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face is a counter-clockwise triangle.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// LineCount returns the number of line segments.
func (m *Mesh) LineCount() int {
	return len(m.Lines)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals computes area-weighted vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	pts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = v.Position
	}
	for i, p := range math3d.TransformPoints(mat, pts) {
		m.Vertices[i].Position = p
		// Rotation part only; meshes here are never sheared.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Lines:     make([][2]int, len(m.Lines)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Lines, m.Lines)
	return clone
}

// Surface lofts the wing section through every station boundary. The
// surface is open at the tips.
func Surface(w *wing.Wing) *Mesh {
	mesh := NewMesh("surface")
	nodes := len(w.Nodes())
	var ring int
	for j := range nodes {
		outline := w.SectionOutline(j)
		ring = len(outline)
		for _, p := range outline {
			mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: p})
		}
	}

	for j := range nodes - 1 {
		a, b := j*ring, (j+1)*ring
		for k := range ring {
			k2 := (k + 1) % ring
			mesh.Faces = append(mesh.Faces,
				Face{V: [3]int{a + k, b + k, b + k2}},
				Face{V: [3]int{a + k, b + k2, a + k2}},
			)
		}
	}

	mesh.CalculateSmoothNormals()
	mesh.CalculateBounds()
	return mesh
}

// Lattice turns every filament of a vortex lattice into one line segment,
// in filament order.
func Lattice(lat *vortex.Lattice) *Mesh {
	mesh := NewMesh("lattice")
	mesh.Vertices = make([]MeshVertex, 0, 2*lat.Len())
	mesh.Lines = make([][2]int, 0, lat.Len())
	for k := range lat.Len() {
		i := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices,
			MeshVertex{Position: lat.Node1[k]},
			MeshVertex{Position: lat.Node2[k]},
		)
		mesh.Lines = append(mesh.Lines, [2]int{i, i + 1})
	}
	mesh.CalculateBounds()
	return mesh
}
