// wiretool converts meshes into unwelded wireframe records.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/internal/assets"
	"github.com/Faultbox/wiresoup/internal/batch"
	"github.com/Faultbox/wiresoup/internal/config"
	"github.com/Faultbox/wiresoup/internal/logger"
	"github.com/Faultbox/wiresoup/internal/primitive"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
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

	command := args[0]
	args = args[1:]

	var code int
	switch command {
	case "bake", "b":
		code = cmdBake(cfg, args)
	case "info", "i":
		code = cmdInfo(cfg, args)
	case "list", "ls":
		code = cmdList(cfg)
	case "remove", "rm":
		code = cmdRemove(cfg, args)
	case "primitive", "prim":
		code = cmdPrimitive(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}

	if code != 0 {
		logger.Sync()
		os.Exit(code)
	}
}

func printUsage() {
	fmt.Println(`wiretool - wireframe mesh baking utility

Usage:
  wiretool [flags] <command> [args]

Commands:
  bake <file.obj|dir>                Unweld OBJ meshes and write .wfm records
  info <file.wfm|asset>              Show record information
  list                               List records in the output directory
  remove <asset>...                  Delete records from the output directory
  primitive <box|sphere|cylinder>    Generate, unweld and write a primitive
  help                               Show this message

Flags:
  -out <dir>      Output directory (default from config, "processed")
  -cells <n>      Marching cubes resolution for primitives
  -config <path>  Config file
  -debug          Debug logging

Examples:
  wiretool bake models/
  wiretool -out baked bake models/teapot.obj
  wiretool info processed/teapot_1b9d..._ProcessedData.wfm
  wiretool list
  wiretool -cells 48 primitive sphere`)
}

func cmdBake(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wiretool bake <file.obj|dir>")
		return 1
	}

	paths, err := collectSources(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No .obj files found under %s\n", args[0])
		return 1
	}

	targets, loadErrs := batch.LoadTargets(paths)
	for _, err := range loadErrs {
		logger.Warn("skipping source", zap.Error(err))
	}

	if cfg.Bake.StableKeys {
		for i := range targets {
			targets[i].Key = stableKey(targets[i].Path)
		}
	}

	store := assets.NewFileStore(cfg.Bake.OutputDir)
	report := batch.Run(targets, store, batch.Options{
		StopOnError: cfg.Bake.StopOnError,
		Logger:      logger.Named("bake"),
	})

	for _, r := range report.Processed {
		logger.Debug("baked", zap.String("target", r.Target), zap.String("asset", r.Asset))
		fmt.Printf("  %-32s %6d tris  -> %s\n", r.Target, r.Triangles, store.Path(r.Asset))
	}
	for _, err := range report.Errors() {
		fmt.Fprintf(os.Stderr, "  FAILED %v\n", err)
	}
	fmt.Println(report.Summary())

	if report.Failed > 0 || len(loadErrs) > 0 {
		return 1
	}
	return 0
}

func collectSources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return batch.Discover(path)
	}
	return []string{path}, nil
}

// stableKey derives a deterministic key from a source path so re-baking
// overwrites the previous asset instead of adding a new one.
func stableKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String()
}

func cmdInfo(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wiretool info <file.wfm|asset>")
		return 1
	}

	store := assets.NewFileStore(cfg.Bake.OutputDir)
	rec, err := store.Resolve(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	bounds := wireframe.ComputeBounds(rec.Positions())

	fmt.Printf("Asset:     %s\n", args[0])
	fmt.Printf("Name:      %s\n", rec.Name())
	fmt.Printf("Vertices:  %d\n", rec.VertexCount())
	fmt.Printf("Triangles: %d\n", rec.TriangleCount())
	fmt.Printf("Normals:   %s\n", yesNo(rec.HasNormals()))
	fmt.Printf("TexCoords: %s\n", yesNo(rec.HasTexCoords()))
	if !rec.IsEmpty() {
		fmt.Printf("Bounds:    min %v max %v\n", bounds.Min, bounds.Max)
		fmt.Printf("Size:      %v\n", bounds.Size())
	}
	return 0
}

func cmdList(cfg *config.Config) int {
	store := assets.NewFileStore(cfg.Bake.OutputDir)
	names, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	failed := 0
	for _, name := range names {
		rec, err := store.Load(name)
		if err != nil {
			logger.Warn("unreadable record", zap.String("asset", name), zap.Error(err))
			failed++
			continue
		}
		fmt.Printf("  %-48s %6d tris  %s\n", name, rec.TriangleCount(), rec.Name())
	}
	fmt.Printf("%d records in %s\n", len(names), store.Dir())

	hits, misses := store.CacheStats()
	logger.Debug("record cache", zap.Int("hits", hits), zap.Int("misses", misses))

	if failed > 0 {
		return 1
	}
	return 0
}

func cmdRemove(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wiretool remove <asset>...")
		return 1
	}

	store := assets.NewFileStore(cfg.Bake.OutputDir)
	code := 0
	for _, name := range args {
		if err := store.Delete(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
			continue
		}
		fmt.Printf("removed %s\n", store.Path(name))
	}
	return code
}

func cmdPrimitive(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: wiretool primitive <%s>\n", strings.Join(primitive.Names(), "|"))
		return 1
	}

	mesh, err := primitive.Build(args[0], cfg.Primitive.Cells)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	key := batch.NewKey()
	if cfg.Bake.StableKeys {
		key = stableKey("primitive/" + args[0])
	}

	store := assets.NewFileStore(cfg.Bake.OutputDir)
	report := batch.Run([]batch.Target{{Name: mesh.Name, Path: "primitive:" + args[0], Mesh: mesh, Key: key}}, store, batch.Options{
		StopOnError: true,
		Logger:      logger.Named("primitive"),
	})
	if report.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", report.Err)
		return 1
	}

	r := report.Processed[0]
	fmt.Printf("%s: %d source vertices, %d triangles -> %s\n",
		args[0], mesh.VertexCount(), r.Triangles, store.Path(r.Asset))
	return 0
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
