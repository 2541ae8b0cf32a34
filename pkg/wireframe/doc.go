// Package wireframe turns indexed triangle meshes into unwelded triangle soups
// whose vertices carry a per-corner barycentric marker.
//
// A welded vertex shared by several triangles cannot hold a different marker
// for each of them, so Unweld gives every triangle three private vertices and
// tags corner 0, 1 and 2 with red, green and blue. A wireframe shader reads the
// interpolated marker to recover the distance to the nearest edge.
//
// The result is an immutable Record. Records are safe to share between
// goroutines and between any number of mesh bindings.
package wireframe
