// Package applier binds a processed wireframe record to a renderable owner and
// manages the lifetime of the mesh resource generated from it.
package applier

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// MeshData is the fully expanded vertex data uploaded into a mesh resource.
// Normals are always populated; TexCoords may be nil.
type MeshData struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Colors    []color.RGBA
	Indices   []uint32
	Bounds    wireframe.Bounds
}

// MeshResource is a renderer-visible mesh generated for exactly one binding.
type MeshResource interface {
	// Upload replaces the resource contents.
	Upload(data *MeshData) error
	// Release frees the resource. It must be safe to call once per resource.
	Release()
}

// Allocator creates mesh resources.
type Allocator interface {
	NewMesh(name string) (MeshResource, error)
}

// Owner is the object a binding is attached to.
type Owner interface {
	Name() string
}

// MeshHolder is an owner that can display a mesh resource.
// SetMesh(nil) detaches the current mesh.
type MeshHolder interface {
	Owner
	SetMesh(mesh MeshResource)
}
