package wireframe

import "github.com/go-gl/mathgl/mgl32"

// unitCube returns a welded cube with 8 shared corners and 12 triangles.
func unitCube() *SourceMesh {
	return &SourceMesh{
		Name: "cube",
		Positions: []mgl32.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			3, 7, 6, 3, 6, 2, // top
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

// texturedQuad returns two triangles sharing an edge, with normals and UVs.
func texturedQuad() *SourceMesh {
	return &SourceMesh{
		Name:      "quad",
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 2}, {0, 0, 1}, {0, 0.5, 0.5}, {0, 0, 1}},
		TexCoords: []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}
