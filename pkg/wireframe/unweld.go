package wireframe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Unweld expands an indexed mesh into a triangle soup. Each group of three
// indices becomes three new vertices copied verbatim from the source, tagged
// with the markers for corners 0, 1 and 2, and indexed 3k, 3k+1, 3k+2.
//
// A mesh without triangles produces an empty record. Out-of-range indices or
// an index count that is not a multiple of three fail with ErrInvalidTopology.
func Unweld(src *SourceMesh) (*Record, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	n := len(src.Indices)
	rec := &Record{
		name:      src.Name,
		positions: make([]mgl32.Vec3, n),
		markers:   make([]color.RGBA, n),
		indices:   make([]uint32, n),
	}
	if src.HasNormals() {
		rec.normals = make([]mgl32.Vec3, n)
	}
	if src.HasTexCoords() {
		rec.texCoords = make([]mgl32.Vec2, n)
	}

	for base := 0; base < n; base += 3 {
		for corner := 0; corner < 3; corner++ {
			i := base + corner
			vid := src.Indices[i]

			rec.positions[i] = src.Positions[vid]
			if rec.normals != nil {
				rec.normals[i] = src.Normals[vid]
			}
			if rec.texCoords != nil {
				rec.texCoords[i] = src.TexCoords[vid]
			}
			rec.markers[i] = CornerMarkers[corner]
			rec.indices[i] = uint32(i)
		}
	}

	return rec, nil
}
