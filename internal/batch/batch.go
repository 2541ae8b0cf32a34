// Package batch runs the unwelder over many meshes, persists the results and
// rebinds the affected objects.
package batch

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/internal/engine/applier"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

var errNoMesh = errors.New("no source mesh")

// AssetSuffix is appended to every generated asset name.
const AssetSuffix = "_ProcessedData"

// Store persists processed records under a name.
type Store interface {
	Save(name string, rec *wireframe.Record) error
}

// Target is one mesh to process.
type Target struct {
	// Name is the display name of the object owning the mesh.
	Name string
	// Path locates the source, for reporting only.
	Path string
	Mesh *wireframe.SourceMesh
	// Binding, when set, receives the new record and is reprocessed.
	Binding *applier.Applier
	// Key overrides the generated unique part of the asset name.
	Key string
}

// Options configures a batch run.
type Options struct {
	// StopOnError aborts the run at the first failing target.
	StopOnError bool
	Logger      *zap.Logger
}

// Result describes a successfully processed target.
type Result struct {
	Target    string
	Asset     string
	Triangles int
}

// Report summarizes a batch run.
type Report struct {
	Processed []Result
	Failed    int
	// FirstFailure is the message of the first failure, empty if none.
	FirstFailure string
	// Err combines every failure.
	Err error
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	if r.Failed == 0 {
		return fmt.Sprintf("processed %d meshes", len(r.Processed))
	}
	return fmt.Sprintf("processed %d meshes, %d failed (first: %s)", len(r.Processed), r.Failed, r.FirstFailure)
}

// Errors returns the individual failures in the order they happened.
func (r *Report) Errors() []error {
	return multierr.Errors(r.Err)
}

// AssetName builds a collision-resistant asset name from a display name and a
// key. Anything other than letters, digits, '-' and '_' becomes an underscore,
// so the name never addresses a path outside the store.
func AssetName(displayName, key string) string {
	safe := sanitizeName(strings.TrimSpace(displayName))
	if strings.Trim(safe, "_") == "" {
		safe = "mesh"
	}
	return fmt.Sprintf("%s_%s%s", safe, sanitizeName(key), AssetSuffix)
}

func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '_':
			return r
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		default:
			return '_'
		}
	}, s)
}

// NewKey returns a process-local unique key. Callers needing names that stay
// stable across runs must set Target.Key themselves.
func NewKey() string {
	return uuid.NewString()
}

// Run processes every target. A failing target is recorded and skipped; the
// rest of the batch continues unless StopOnError is set.
func Run(targets []Target, store Store, opts Options) *Report {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{}
	for i, t := range targets {
		res, err := processTarget(t, store)
		if err != nil {
			err = fmt.Errorf("%s: %w", targetLabel(t), err)
			if report.Failed == 0 {
				report.FirstFailure = err.Error()
			}
			report.Failed++
			report.Err = multierr.Append(report.Err, err)
			log.Warn("mesh failed", zap.String("target", targetLabel(t)), zap.Error(err))

			if opts.StopOnError {
				log.Info("stopping batch on error", zap.Int("remaining", len(targets)-i-1))
				break
			}
			continue
		}

		report.Processed = append(report.Processed, res)
		log.Debug("mesh processed",
			zap.String("target", res.Target),
			zap.String("asset", res.Asset),
			zap.Int("triangles", res.Triangles))
	}

	log.Info("batch finished",
		zap.Int("processed", len(report.Processed)),
		zap.Int("failed", report.Failed))

	return report
}

func processTarget(t Target, store Store) (Result, error) {
	if t.Mesh == nil {
		return Result{}, errNoMesh
	}

	rec, err := wireframe.Unweld(t.Mesh)
	if err != nil {
		return Result{}, err
	}

	key := t.Key
	if key == "" {
		key = NewKey()
	}
	asset := AssetName(t.Name, key)
	if err := store.Save(asset, rec); err != nil {
		return Result{}, fmt.Errorf("saving %s: %w", asset, err)
	}

	if t.Binding != nil {
		t.Binding.AttachRecord(rec)
		if err := t.Binding.ForceReprocess(); err != nil {
			return Result{}, fmt.Errorf("applying %s: %w", asset, err)
		}
	}

	return Result{
		Target:    targetLabel(t),
		Asset:     asset,
		Triangles: rec.TriangleCount(),
	}, nil
}

func targetLabel(t Target) string {
	if t.Path != "" {
		return t.Path
	}
	return t.Name
}
