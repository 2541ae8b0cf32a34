package wireframe

import "github.com/go-gl/mathgl/mgl32"

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds returns the bounding box of the given points.
// An empty slice yields the zero box.
func ComputeBounds(positions []mgl32.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		updateBounds(&b, p)
	}
	return b
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] {
			b.Min[axis] = p[axis]
		}
		if p[axis] > b.Max[axis] {
			b.Max[axis] = p[axis]
		}
	}
}

// degenerateEpsilon is the cross product length below which a triangle has no usable normal.
const degenerateEpsilon = 1e-12

// fallbackNormal is assigned to degenerate triangles.
var fallbackNormal = mgl32.Vec3{0, 1, 0}

// FlatNormals derives one geometric normal per triangle of a soup and assigns
// it to all three corners. Winding is counter-clockwise front facing.
func FlatNormals(positions []mgl32.Vec3) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for base := 0; base+2 < len(positions); base += 3 {
		n := faceNormal(positions[base], positions[base+1], positions[base+2])
		normals[base] = n
		normals[base+1] = n
		normals[base+2] = n
	}
	return normals
}

func faceNormal(v0, v1, v2 mgl32.Vec3) mgl32.Vec3 {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.LenSqr() < degenerateEpsilon {
		return fallbackNormal
	}
	return n.Normalize()
}

// SmoothNormals averages normals of vertices that share a position, which
// softens the faceted look of flat normals. normals is updated in place.
func SmoothNormals(positions, normals []mgl32.Vec3) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i, p := range positions {
		key := [3]int32{
			int32(p[0] / epsilon),
			int32(p[1] / epsilon),
			int32(p[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals[idx])
		}
		if sum.LenSqr() < degenerateEpsilon {
			continue
		}

		avg := sum.Normalize()
		for _, idx := range idxs {
			normals[idx] = avg
		}
	}
}
