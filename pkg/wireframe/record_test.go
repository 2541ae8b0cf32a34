package wireframe

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func soupBuffers(triangles int) ([]mgl32.Vec3, []uint32, []color.RGBA) {
	n := triangles * 3
	positions := make([]mgl32.Vec3, n)
	indices := make([]uint32, n)
	markers := make([]color.RGBA, n)
	for i := 0; i < n; i++ {
		positions[i] = mgl32.Vec3{float32(i), 0, 0}
		indices[i] = uint32(i)
		markers[i] = Marker(i % 3)
	}
	return positions, indices, markers
}

func TestNewRecord_Valid(t *testing.T) {
	positions, indices, markers := soupBuffers(2)
	normals := make([]mgl32.Vec3, 6)
	texCoords := make([]mgl32.Vec2, 6)

	rec, err := NewRecord("soup", positions, indices, markers, normals, texCoords)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if rec.Name() != "soup" {
		t.Errorf("expected name 'soup', got %s", rec.Name())
	}
	if rec.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", rec.TriangleCount())
	}
	if !rec.HasNormals() || !rec.HasTexCoords() {
		t.Error("expected normals and texcoords to be present")
	}
}

func TestNewRecord_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2)
	}{
		{"missing index", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			*i = (*i)[:5]
		}},
		{"missing marker", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			*m = (*m)[:4]
		}},
		{"partial triangle", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			*p, *i, *m = (*p)[:5], (*i)[:5], (*m)[:5]
		}},
		{"shared vertex", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			(*i)[4] = 0
		}},
		{"short normals", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			*n = make([]mgl32.Vec3, 3)
		}},
		{"short texcoords", func(p *[]mgl32.Vec3, i *[]uint32, m *[]color.RGBA, n *[]mgl32.Vec3, uv *[]mgl32.Vec2) {
			*uv = make([]mgl32.Vec2, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions, indices, markers := soupBuffers(2)
			var normals []mgl32.Vec3
			var texCoords []mgl32.Vec2
			tt.mutate(&positions, &indices, &markers, &normals, &texCoords)

			_, err := NewRecord("bad", positions, indices, markers, normals, texCoords)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestNewRecord_Empty(t *testing.T) {
	rec, err := NewRecord("empty", nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("empty record should be valid: %v", err)
	}
	if !rec.IsEmpty() {
		t.Error("expected empty record")
	}
}

func TestRecord_Immutable(t *testing.T) {
	positions, indices, markers := soupBuffers(1)
	rec, err := NewRecord("tri", positions, indices, markers, nil, nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	// Mutating the input slices must not reach the record.
	positions[0] = mgl32.Vec3{9, 9, 9}
	if rec.Position(0) == positions[0] {
		t.Error("record aliases constructor input")
	}

	// Mutating accessor results must not reach the record either.
	got := rec.Positions()
	got[1] = mgl32.Vec3{7, 7, 7}
	if rec.Position(1) == got[1] {
		t.Error("Positions() exposes internal storage")
	}
	m := rec.Markers()
	m[0] = color.RGBA{}
	if rec.Marker(0) != MarkerA {
		t.Error("Markers() exposes internal storage")
	}
}

func TestRecord_Equal(t *testing.T) {
	a, _ := Unweld(unitCube())
	b, _ := Unweld(unitCube())
	c, _ := Unweld(texturedQuad())

	if !a.Equal(b) {
		t.Error("identical records should be equal")
	}
	if a.Equal(c) {
		t.Error("different records should not be equal")
	}
	if a.Equal(nil) {
		t.Error("record should not equal nil")
	}
}
