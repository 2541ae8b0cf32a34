package wireframe

import "github.com/go-gl/mathgl/mgl32"

// SourceMesh is an indexed triangle mesh as supplied by a host scene.
// Normals and TexCoords are optional; when present they parallel Positions.
type SourceMesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of source vertices.
func (m *SourceMesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of complete triangles in the index list.
func (m *SourceMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *SourceMesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// HasTexCoords reports whether the mesh carries texture coordinates.
func (m *SourceMesh) HasTexCoords() bool {
	return len(m.TexCoords) > 0
}

// Validate checks the index list and attribute streams without copying anything.
func (m *SourceMesh) Validate() error {
	if m == nil {
		return &TopologyError{Triangle: -1, Reason: "nil mesh"}
	}
	if len(m.Indices)%3 != 0 {
		return &TopologyError{
			Triangle: -1,
			Index:    len(m.Indices),
			Reason:   "index count is not a multiple of 3",
		}
	}
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return &TopologyError{Triangle: -1, Reason: "normal count does not match vertex count"}
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != n {
		return &TopologyError{Triangle: -1, Reason: "texcoord count does not match vertex count"}
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return &TopologyError{
				Triangle: i / 3,
				Index:    int(idx),
				Reason:   "vertex index out of range",
			}
		}
	}
	return nil
}
