package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/wiresoup/pkg/formats"
)

// Discover returns every .obj file under root, sorted by path.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadTargets reads OBJ files into batch targets. Files that fail to parse
// are skipped and returned as errors.
func LoadTargets(paths []string) ([]Target, []error) {
	targets := make([]Target, 0, len(paths))
	var errs []error
	for _, p := range paths {
		mesh, err := formats.LoadOBJ(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		targets = append(targets, Target{
			Name: mesh.Name,
			Path: p,
			Mesh: mesh,
		})
	}
	return targets, errs
}
