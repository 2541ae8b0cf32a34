// wireview previews a processed wireframe record in an SDL2 window.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/internal/assets"
	"github.com/Faultbox/wiresoup/internal/config"
	"github.com/Faultbox/wiresoup/internal/logger"
	"github.com/Faultbox/wiresoup/pkg/formats"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wireview [flags] <file.wfm|file.obj|asset>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	rec, err := loadRecord(assets.NewFileStore(cfg.Bake.OutputDir), args[0])
	if err != nil {
		logger.Error("failed to load record", zap.String("path", args[0]), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("record loaded",
		zap.String("name", rec.Name()),
		zap.Int("triangles", rec.TriangleCount()),
		zap.Bool("normals", rec.HasNormals()),
	)

	v, err := newViewer(cfg, rec)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// loadRecord unwelds an OBJ on the fly, or resolves a baked record by path
// or by asset name in the output directory.
func loadRecord(store *assets.FileStore, ref string) (*wireframe.Record, error) {
	if strings.EqualFold(filepath.Ext(ref), ".obj") {
		mesh, err := formats.LoadOBJ(ref)
		if err != nil {
			return nil, err
		}
		return wireframe.Unweld(mesh)
	}
	return store.Resolve(ref)
}
