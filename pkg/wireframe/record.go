package wireframe

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Record is an immutable triangle soup produced by Unweld.
// Every triangle owns vertices 3k, 3k+1 and 3k+2, and indices[i] == i.
type Record struct {
	name      string
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	texCoords []mgl32.Vec2
	markers   []color.RGBA
	indices   []uint32
}

// NewRecord validates the buffers and wraps them in a Record.
// The slices are copied; later changes by the caller do not affect the record.
// normals and texCoords may be nil.
func NewRecord(name string, positions []mgl32.Vec3, indices []uint32, markers []color.RGBA,
	normals []mgl32.Vec3, texCoords []mgl32.Vec2) (*Record, error) {

	n := len(positions)
	if n%3 != 0 {
		return nil, fmt.Errorf("%w: vertex count %d is not a multiple of 3", ErrMalformedRecord, n)
	}
	if len(indices) != n {
		return nil, fmt.Errorf("%w: %d indices for %d vertices", ErrMalformedRecord, len(indices), n)
	}
	if len(markers) != n {
		return nil, fmt.Errorf("%w: %d markers for %d vertices", ErrMalformedRecord, len(markers), n)
	}
	if len(normals) != 0 && len(normals) != n {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrMalformedRecord, len(normals), n)
	}
	if len(texCoords) != 0 && len(texCoords) != n {
		return nil, fmt.Errorf("%w: %d texcoords for %d vertices", ErrMalformedRecord, len(texCoords), n)
	}
	for i, idx := range indices {
		if idx != uint32(i) {
			return nil, fmt.Errorf("%w: index %d is %d, want %d", ErrMalformedRecord, i, idx, i)
		}
	}

	r := &Record{
		name:      name,
		positions: slices.Clone(positions),
		markers:   slices.Clone(markers),
		indices:   slices.Clone(indices),
	}
	if len(normals) > 0 {
		r.normals = slices.Clone(normals)
	}
	if len(texCoords) > 0 {
		r.texCoords = slices.Clone(texCoords)
	}
	return r, nil
}

// Name returns the name of the mesh the record was built from.
func (r *Record) Name() string { return r.name }

// VertexCount returns the number of soup vertices (3 × triangles).
func (r *Record) VertexCount() int { return len(r.positions) }

// TriangleCount returns the number of triangles.
func (r *Record) TriangleCount() int { return len(r.positions) / 3 }

// IsEmpty returns true if the record has no geometry.
func (r *Record) IsEmpty() bool { return len(r.positions) == 0 }

// HasNormals reports whether normals were carried over from the source.
func (r *Record) HasNormals() bool { return len(r.normals) > 0 }

// HasTexCoords reports whether texture coordinates were carried over.
func (r *Record) HasTexCoords() bool { return len(r.texCoords) > 0 }

// Positions returns a copy of the vertex positions.
func (r *Record) Positions() []mgl32.Vec3 { return slices.Clone(r.positions) }

// Normals returns a copy of the normals, or nil if the record has none.
func (r *Record) Normals() []mgl32.Vec3 { return slices.Clone(r.normals) }

// TexCoords returns a copy of the texture coordinates, or nil.
func (r *Record) TexCoords() []mgl32.Vec2 { return slices.Clone(r.texCoords) }

// Markers returns a copy of the per-vertex corner markers.
func (r *Record) Markers() []color.RGBA { return slices.Clone(r.markers) }

// Indices returns a copy of the index list.
func (r *Record) Indices() []uint32 { return slices.Clone(r.indices) }

// Position returns a single vertex position without copying the buffer.
func (r *Record) Position(i int) mgl32.Vec3 { return r.positions[i] }

// Marker returns the corner marker of vertex i.
func (r *Record) Marker(i int) color.RGBA { return r.markers[i] }

// AsSource reinterprets the soup as an indexed source mesh with its trivial
// index list. Unwelding the result yields an identical record.
func (r *Record) AsSource() *SourceMesh {
	return &SourceMesh{
		Name:      r.name,
		Positions: r.Positions(),
		Normals:   r.Normals(),
		TexCoords: r.TexCoords(),
		Indices:   r.Indices(),
	}
}

// Equal reports whether two records hold identical buffers.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return slices.Equal(r.positions, other.positions) &&
		slices.Equal(r.normals, other.normals) &&
		slices.Equal(r.texCoords, other.texCoords) &&
		slices.Equal(r.markers, other.markers) &&
		slices.Equal(r.indices, other.indices)
}
