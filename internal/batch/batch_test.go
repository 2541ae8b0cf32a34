package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"

	"github.com/Faultbox/wiresoup/internal/assets"
	"github.com/Faultbox/wiresoup/internal/engine/applier"
	"github.com/Faultbox/wiresoup/pkg/formats"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

type memStore struct {
	saved   map[string]*wireframe.Record
	failFor string
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]*wireframe.Record)}
}

func (s *memStore) Save(name string, rec *wireframe.Record) error {
	if s.failFor != "" && strings.HasPrefix(name, s.failFor) {
		return errors.New("disk full")
	}
	s.saved[name] = rec
	return nil
}

type nopMesh struct{}

func (nopMesh) Upload(*applier.MeshData) error { return nil }
func (nopMesh) Release()                       {}

type nopAllocator struct{}

func (nopAllocator) NewMesh(string) (applier.MeshResource, error) { return nopMesh{}, nil }

type owner struct {
	name string
	mesh applier.MeshResource
}

func (o *owner) Name() string                   { return o.name }
func (o *owner) SetMesh(m applier.MeshResource) { o.mesh = m }

func triangle(name string) *wireframe.SourceMesh {
	return &wireframe.SourceMesh{
		Name:      name,
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		display string
		key     string
		want    string
	}{
		{"Cube", "42", "Cube_42_ProcessedData"},
		{"Big Rock 01", "7", "Big_Rock_01_7_ProcessedData"},
		{"  ", "1", "mesh_1_ProcessedData"},
		{"../x", "k", "___x_k_ProcessedData"},
		{"a/b", "k", "a_b_k_ProcessedData"},
		{`Body\Arm`, "k", "Body_Arm_k_ProcessedData"},
		{"..", "k", "mesh_k_ProcessedData"},
		{"Кубик", "k", "Кубик_k_ProcessedData"},
		{"Rock", "../k", "Rock____k_ProcessedData"},
	}
	for _, tt := range tests {
		if got := AssetName(tt.display, tt.key); got != tt.want {
			t.Errorf("AssetName(%q, %q) = %s, want %s", tt.display, tt.key, got, tt.want)
		}
	}
}

func TestAssetNameUniqueForSameDisplayName(t *testing.T) {
	store := newMemStore()
	targets := []Target{
		{Name: "Rock", Mesh: triangle("Rock")},
		{Name: "Rock", Mesh: triangle("Rock")},
	}

	report := Run(targets, store, Options{})
	if report.Failed != 0 {
		t.Fatalf("unexpected failures: %v", report.Err)
	}
	if len(store.saved) != 2 {
		t.Errorf("expected 2 distinct assets, got %d", len(store.saved))
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	store := newMemStore()
	bad := &wireframe.SourceMesh{
		Name:      "broken",
		Positions: []mgl32.Vec3{{0, 0, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	targets := []Target{
		{Name: "a", Mesh: triangle("a"), Key: "1"},
		{Name: "broken", Mesh: bad, Key: "2"},
		{Name: "missing", Key: "3"},
		{Name: "c", Mesh: triangle("c"), Key: "4"},
	}

	report := Run(targets, store, Options{})

	if len(report.Processed) != 2 {
		t.Errorf("expected 2 processed, got %d", len(report.Processed))
	}
	if report.Failed != 2 {
		t.Errorf("expected 2 failures, got %d", report.Failed)
	}
	if !strings.Contains(report.FirstFailure, "broken") {
		t.Errorf("first failure should name 'broken', got %q", report.FirstFailure)
	}
	if !errors.Is(report.Err, wireframe.ErrInvalidTopology) {
		t.Errorf("expected combined error to contain ErrInvalidTopology, got %v", report.Err)
	}
	if n := len(multierr.Errors(report.Err)); n != 2 {
		t.Errorf("expected 2 combined errors, got %d", n)
	}
	if _, ok := store.saved["c_4_ProcessedData"]; !ok {
		t.Error("target after the failures was not saved")
	}
	if !strings.Contains(report.Summary(), "2 failed") {
		t.Errorf("unexpected summary %q", report.Summary())
	}
}

func TestRunStopOnError(t *testing.T) {
	store := newMemStore()
	store.failFor = "a_"
	targets := []Target{
		{Name: "a", Mesh: triangle("a"), Key: "1"},
		{Name: "b", Mesh: triangle("b"), Key: "2"},
	}

	report := Run(targets, store, Options{StopOnError: true})
	if report.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", report.Failed)
	}
	if len(report.Processed) != 0 {
		t.Errorf("expected nothing processed after stop, got %d", len(report.Processed))
	}
}

func TestRunBindsApplier(t *testing.T) {
	o := &owner{name: "tri"}
	binding := applier.New(o, nopAllocator{}, applier.Options{})

	report := Run([]Target{{Name: "tri", Mesh: triangle("tri"), Binding: binding, Key: "k"}}, newMemStore(), Options{})
	if report.Failed != 0 {
		t.Fatalf("unexpected failure: %v", report.Err)
	}
	if binding.State() != applier.BoundLive {
		t.Errorf("expected binding BoundLive, got %s", binding.State())
	}
	if binding.Record() == nil || binding.Record().TriangleCount() != 1 {
		t.Error("binding should hold the new record")
	}
	if o.mesh == nil {
		t.Error("owner should display the generated mesh")
	}
	if report.Processed[0].Asset != "tri_k_ProcessedData" {
		t.Errorf("unexpected asset name %s", report.Processed[0].Asset)
	}
	if report.Summary() != "processed 1 meshes" {
		t.Errorf("unexpected summary %q", report.Summary())
	}
}

func TestDiscoverAndLoad(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "props")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	tri := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	files := map[string]string{
		filepath.Join(root, "b.obj"):   tri,
		filepath.Join(sub, "a.OBJ"):    tri,
		filepath.Join(root, "bad.obj"): "v 0 0 0\nf 1 2 3\n",
		filepath.Join(root, "x.txt"):   "ignored",
	}
	for p, content := range files {
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 obj files, got %v", paths)
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Errorf("paths not sorted: %v", paths)
		}
	}

	targets, errs := LoadTargets(paths)
	if len(targets) != 2 {
		t.Errorf("expected 2 loaded targets, got %d", len(targets))
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 load error, got %d", len(errs))
	}
}

func TestRunKeepsAssetsInsideStore(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	store := assets.NewFileStore(out)

	var targets []Target
	for _, name := range []string{"../escaped", "Body/Arm"} {
		mesh, err := formats.ParseOBJ([]byte("o " + name + "\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
		if err != nil {
			t.Fatalf("ParseOBJ failed: %v", err)
		}
		targets = append(targets, Target{Name: mesh.Name, Mesh: mesh, Key: "k"})
	}

	report := Run(targets, store, Options{})
	if report.Failed != 0 {
		t.Fatalf("unexpected failures: %v", report.Err)
	}

	for _, r := range report.Processed {
		if strings.ContainsAny(r.Asset, `/\.`) {
			t.Errorf("asset name %q contains path characters", r.Asset)
		}
		if filepath.Dir(store.Path(r.Asset)) != out {
			t.Errorf("asset %q resolves outside %s", r.Asset, out)
		}
		if _, err := store.Load(r.Asset); err != nil {
			t.Errorf("Load(%q) failed: %v", r.Asset, err)
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out" {
		t.Errorf("expected only the output dir under root, got %d entries", len(entries))
	}
}
