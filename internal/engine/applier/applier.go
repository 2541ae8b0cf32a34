package applier

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// State is the lifecycle state of a binding.
type State int

const (
	Unbound    State = iota // No record, no resource
	BoundStale              // Record attached, resource missing or out of date
	BoundLive               // Resource materialized from the current record
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Unbound:
		return "Unbound"
	case BoundStale:
		return "BoundStale"
	case BoundLive:
		return "BoundLive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Options controls how a record is materialized.
type Options struct {
	// SmoothNormals averages derived normals at coincident positions.
	// Only used when the record carries no normals.
	SmoothNormals bool
	// Logger receives lifecycle events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Applier owns at most one generated mesh resource for one owner.
// Calls other than AttachRecord must be serialized by the caller.
type Applier struct {
	owner     Owner
	allocator Allocator
	opts      Options
	log       *zap.Logger

	record   atomic.Pointer[wireframe.Record]
	resource MeshResource
	state    State
}

// New creates an unbound applier for owner.
func New(owner Owner, allocator Allocator, opts Options) *Applier {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	name := ""
	if owner != nil {
		name = owner.Name()
	}
	return &Applier{
		owner:     owner,
		allocator: allocator,
		opts:      opts,
		log:       log.With(zap.String("owner", name)),
	}
}

// State returns the current lifecycle state.
func (a *Applier) State() State {
	return a.state
}

// Record returns the attached record, or nil.
func (a *Applier) Record() *wireframe.Record {
	return a.record.Load()
}

// Resource returns the live generated resource, or nil.
func (a *Applier) Resource() MeshResource {
	return a.resource
}

// AttachRecord swaps in a new record. Work is deferred until Activate.
// A live resource built from the previous record is released immediately.
// Attaching nil unbinds the applier.
func (a *Applier) AttachRecord(rec *wireframe.Record) {
	a.record.Store(rec)
	a.releaseResource()

	if rec == nil {
		a.state = Unbound
		a.log.Debug("record detached")
		return
	}
	a.state = BoundStale
	a.log.Debug("record attached",
		zap.String("record", rec.Name()),
		zap.Int("triangles", rec.TriangleCount()))
}

// Activate materializes the attached record into a fresh mesh resource and
// installs it on the owner. It is called when the owner is enabled or started.
//
// ErrMissingRecord and ErrMissingRenderTarget leave the applier unchanged and
// can be retried once the precondition holds.
func (a *Applier) Activate() error {
	rec := a.record.Load()
	if rec == nil {
		a.log.Error("activate without record")
		return wireframe.ErrMissingRecord
	}

	holder, ok := a.owner.(MeshHolder)
	if !ok {
		a.log.Error("activate on owner without mesh holder")
		return wireframe.ErrMissingRenderTarget
	}

	if a.state == BoundLive && a.resource != nil {
		return nil
	}

	a.releaseResource()

	data := a.buildMeshData(rec)

	name := rec.Name()
	if name == "" {
		name = a.owner.Name()
	}
	mesh, err := a.allocator.NewMesh(name)
	if err != nil {
		a.state = BoundStale
		return fmt.Errorf("allocating mesh: %w", err)
	}
	if err := mesh.Upload(data); err != nil {
		mesh.Release()
		a.state = BoundStale
		return fmt.Errorf("uploading mesh: %w", err)
	}

	a.install(holder, mesh)
	a.state = BoundLive

	a.log.Info("mesh applied",
		zap.String("record", rec.Name()),
		zap.Int("vertices", len(data.Positions)),
		zap.Bool("derivedNormals", !rec.HasNormals()))

	return nil
}

// ForceReprocess rebuilds the resource even if nothing changed. Tooling calls
// it after attaching an edited record.
func (a *Applier) ForceReprocess() error {
	if a.record.Load() != nil {
		a.releaseResource()
		a.state = BoundStale
	}
	return a.Activate()
}

// Deactivate releases the generated resource and unbinds the record.
func (a *Applier) Deactivate() {
	a.releaseResource()
	a.record.Store(nil)
	a.state = Unbound
	a.log.Debug("deactivated")
}

// Destroy is called when the owner goes away.
func (a *Applier) Destroy() {
	a.Deactivate()
}

// install hands a new resource to the owner. The previous one must already be
// released; anything else is a lifecycle bug.
func (a *Applier) install(holder MeshHolder, mesh MeshResource) {
	if a.resource != nil {
		panic(fmt.Errorf("%w: owner %q", wireframe.ErrResourceLeak, a.owner.Name()))
	}
	a.resource = mesh
	holder.SetMesh(mesh)
}

func (a *Applier) releaseResource() {
	if a.resource == nil {
		return
	}
	if holder, ok := a.owner.(MeshHolder); ok {
		holder.SetMesh(nil)
	}
	a.resource.Release()
	a.resource = nil
	a.log.Debug("mesh released")
}

func (a *Applier) buildMeshData(rec *wireframe.Record) *MeshData {
	data := &MeshData{
		Positions: rec.Positions(),
		Indices:   rec.Indices(),
		Colors:    rec.Markers(),
		TexCoords: rec.TexCoords(),
	}

	if rec.HasNormals() {
		data.Normals = rec.Normals()
	} else {
		data.Normals = wireframe.FlatNormals(data.Positions)
		if a.opts.SmoothNormals {
			wireframe.SmoothNormals(data.Positions, data.Normals)
		}
	}

	data.Bounds = wireframe.ComputeBounds(data.Positions)
	return data
}
