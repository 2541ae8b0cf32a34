// Package primitive generates welded test meshes from signed distance
// functions using the sdfx marching cubes renderer.
package primitive

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// DefaultCells is the default marching cubes resolution along the longest axis.
const DefaultCells = 24

// builders maps primitive names to SDF constructors.
var builders = map[string]func() (sdf.SDF3, error){
	"box": func() (sdf.SDF3, error) {
		return sdf.Box3D(v3.Vec{X: 1, Y: 1, Z: 1}, 0.1)
	},
	"sphere": func() (sdf.SDF3, error) {
		return sdf.Sphere3D(0.5)
	},
	"cylinder": func() (sdf.SDF3, error) {
		return sdf.Cylinder3D(1, 0.5, 0.05)
	},
}

// Names returns the available primitive names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build tessellates the named primitive and welds the triangle soup into an
// indexed mesh, so vertices are shared across neighboring triangles.
func Build(name string, cells int) (*wireframe.SourceMesh, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown primitive %q", name)
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	s, err := build()
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	mesh := &wireframe.SourceMesh{Name: name}
	known := make(map[mgl32.Vec3]uint32)

	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			p := mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}

			idx, ok := known[p]
			if !ok {
				idx = uint32(len(mesh.Positions))
				known[p] = idx
				mesh.Positions = append(mesh.Positions, p)
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}

	return mesh, nil
}
