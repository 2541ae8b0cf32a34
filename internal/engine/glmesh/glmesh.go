// Package glmesh implements mesh resources backed by OpenGL buffer objects.
package glmesh

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/internal/engine/applier"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// Vertex attribute locations shared with the viewer shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2
	AttribColor    = 3
)

var errReleased = errors.New("glmesh: mesh already released")

// Vertex is the interleaved layout stored in the vertex buffer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [4]uint8
}

// Allocator creates GL meshes. It must be used on the thread owning the GL context.
type Allocator struct {
	log  *zap.Logger
	live atomic.Int64
}

// NewAllocator creates an allocator. A nil logger disables logging.
func NewAllocator(log *zap.Logger) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Allocator{log: log}
}

// NewMesh implements applier.Allocator.
func (a *Allocator) NewMesh(name string) (applier.MeshResource, error) {
	m := &Mesh{name: name, alloc: a}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	if m.vao == 0 || m.vbo == 0 || m.ebo == 0 {
		m.deleteObjects()
		return nil, fmt.Errorf("glmesh: allocating buffers for %q failed", name)
	}
	a.live.Add(1)
	a.log.Debug("mesh allocated", zap.String("mesh", name), zap.Uint32("vao", m.vao))
	return m, nil
}

// Live returns the number of meshes allocated and not yet released.
func (a *Allocator) Live() int {
	return int(a.live.Load())
}

// Mesh is a VAO with its vertex and index buffers.
type Mesh struct {
	name       string
	alloc      *Allocator
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	bounds     wireframe.Bounds
	released   bool
}

// Upload implements applier.MeshResource.
func (m *Mesh) Upload(data *applier.MeshData) error {
	if m.released {
		return errReleased
	}

	vertices := Interleave(data)
	m.indexCount = int32(len(data.Indices))
	m.bounds = data.Bounds

	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribNormal, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(AttribTexCoord)
	gl.VertexAttribPointerWithOffset(AttribColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), 8*4)
	gl.EnableVertexAttribArray(AttribColor)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(data.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glmesh: upload %q: gl error 0x%x", m.name, code)
	}
	return nil
}

// Release implements applier.MeshResource. Further calls are no-ops.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	m.deleteObjects()
	m.alloc.live.Add(-1)
	m.alloc.log.Debug("mesh released", zap.String("mesh", m.name))
}

func (m *Mesh) deleteObjects() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// Draw issues the draw call for the whole mesh. The caller binds the program.
func (m *Mesh) Draw() {
	if m.released || m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Name returns the name the mesh was allocated with.
func (m *Mesh) Name() string { return m.name }

// Bounds returns the bounds of the last upload.
func (m *Mesh) Bounds() wireframe.Bounds { return m.bounds }

// TriangleCount returns the number of triangles in the last upload.
func (m *Mesh) TriangleCount() int { return int(m.indexCount) / 3 }

// Interleave packs mesh data into the vertex buffer layout.
// Missing texcoords are left zero.
func Interleave(data *applier.MeshData) []Vertex {
	out := make([]Vertex, len(data.Positions))
	for i, p := range data.Positions {
		v := &out[i]
		v.Position = p
		if i < len(data.Normals) {
			v.Normal = data.Normals[i]
		}
		if i < len(data.TexCoords) {
			v.TexCoord = data.TexCoords[i]
		}
		if i < len(data.Colors) {
			c := data.Colors[i]
			v.Color = [4]uint8{c.R, c.G, c.B, c.A}
		}
	}
	return out
}
