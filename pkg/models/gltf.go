package models

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/liftline/pkg/math3d"
)

// WriteGLB encodes meshes as a binary glTF document with one node per mesh.
// Triangles and lines of a mesh become separate primitives sharing one
// position accessor.
func WriteGLB(w io.Writer, meshes ...*Mesh) error {
	doc := gltf.NewDocument()
	for _, m := range meshes {
		if len(m.Vertices) == 0 {
			return fmt.Errorf("mesh %q has no vertices", m.Name)
		}
		positions := make([][3]float32, len(m.Vertices))
		normals := make([][3]float32, len(m.Vertices))
		hasNormals := false
		for i, v := range m.Vertices {
			positions[i] = float32s(v.Position)
			normals[i] = float32s(v.Normal)
			hasNormals = hasNormals || v.Normal.LenSq() > 0
		}

		attrs := map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)}
		if hasNormals {
			attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
		}

		gm := &gltf.Mesh{Name: m.Name}
		if len(m.Faces) > 0 {
			idx := make([]uint32, 0, 3*len(m.Faces))
			for _, f := range m.Faces {
				idx = append(idx, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
			}
			gm.Primitives = append(gm.Primitives, &gltf.Primitive{
				Mode:       gltf.PrimitiveTriangles,
				Attributes: attrs,
				Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			})
		}
		if len(m.Lines) > 0 {
			idx := make([]uint32, 0, 2*len(m.Lines))
			for _, l := range m.Lines {
				idx = append(idx, uint32(l[0]), uint32(l[1]))
			}
			gm.Primitives = append(gm.Primitives, &gltf.Primitive{
				Mode:       gltf.PrimitiveLines,
				Attributes: attrs,
				Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			})
		}

		doc.Meshes = append(doc.Meshes, gm)
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

func float32s(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// ReadGLB decodes a binary glTF stream into one Mesh per glTF mesh.
func ReadGLB(r io.Reader) ([]*Mesh, error) {
	var doc gltf.Document
	if err := gltf.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode glb: %w", err)
	}
	return meshes(&doc)
}

// LoadGLB reads a .glb or .gltf file.
func LoadGLB(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", filepath.Base(path), err)
	}
	return meshes(doc)
}

func meshes(doc *gltf.Document) ([]*Mesh, error) {
	out := make([]*Mesh, 0, len(doc.Meshes))
	for _, m := range doc.Meshes {
		mesh := NewMesh(m.Name)
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		mesh.CalculateBounds()
		out = append(out, mesh)
	}
	return out, nil
}

// processMesh appends the triangle and line primitives of m to mesh.
// Primitives sharing a position accessor share vertices.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	base := make(map[int]int) // position accessor -> first vertex
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != gltf.PrimitiveLines {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		baseVertex, seen := base[posIdx]
		if !seen {
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return fmt.Errorf("read positions: %w", err)
			}
			var normals []math3d.Vec3
			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, err = readVec3Accessor(doc, normIdx)
				if err != nil {
					return fmt.Errorf("read normals: %w", err)
				}
			}
			baseVertex = len(mesh.Vertices)
			base[posIdx] = baseVertex
			for i := range positions {
				v := MeshVertex{Position: positions[i]}
				if i < len(normals) {
					v.Normal = normals[i]
				}
				mesh.Vertices = append(mesh.Vertices, v)
			}
		}

		var indices []int
		if prim.Indices != nil {
			var err error
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			count := doc.Accessors[posIdx].Count
			indices = make([]int, count)
			for i := range indices {
				indices[i] = i
			}
		}

		if prim.Mode == gltf.PrimitiveLines {
			for i := 0; i+1 < len(indices); i += 2 {
				mesh.Lines = append(mesh.Lines, [2]int{baseVertex + indices[i], baseVertex + indices[i+1]})
			}
			continue
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{
				baseVertex + indices[i],
				baseVertex + indices[i+1],
				baseVertex + indices[i+2],
			}})
		}
	}
	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer %d has no data", bufferView.Buffer)
	}
	bufData := buffer.Data

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if accessor.ComponentType != gltf.ComponentFloat {
			break
		}
		if stride == 0 {
			stride = 12 // 3 floats * 4 bytes
		}
		if end := start + (count-1)*stride + 12; count > 0 && end > len(bufData) {
			return nil, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(bufData))
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
