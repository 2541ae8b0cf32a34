package primitive

import (
	"testing"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"box", "cylinder", "sphere"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("teapot", 8); err == nil {
		t.Error("expected error for unknown primitive")
	}
}

func TestBuildWelded(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			mesh, err := Build(name, 12)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if mesh.TriangleCount() == 0 {
				t.Fatal("expected triangles")
			}
			if err := mesh.Validate(); err != nil {
				t.Fatalf("generated mesh invalid: %v", err)
			}
			// A closed surface shares most corners between triangles.
			if mesh.VertexCount() >= len(mesh.Indices) {
				t.Errorf("expected welded vertices, got %d vertices for %d indices",
					mesh.VertexCount(), len(mesh.Indices))
			}

			rec, err := wireframe.Unweld(mesh)
			if err != nil {
				t.Fatalf("Unweld failed: %v", err)
			}
			if rec.VertexCount() != len(mesh.Indices) {
				t.Errorf("expected %d soup vertices, got %d", len(mesh.Indices), rec.VertexCount())
			}
		})
	}
}
