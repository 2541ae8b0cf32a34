// Package config handles tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Bake      BakeConfig      `yaml:"bake"`
	Primitive PrimitiveConfig `yaml:"primitive"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BakeConfig holds batch processing settings.
type BakeConfig struct {
	OutputDir   string `yaml:"output_dir"`   // Where processed records are written
	StopOnError bool   `yaml:"stop_on_error"` // Abort the batch at the first failure
	StableKeys  bool   `yaml:"stable_keys"`   // Key assets by source path instead of a random ID
}

// PrimitiveConfig holds settings for generated primitive meshes.
type PrimitiveConfig struct {
	Cells int `yaml:"cells"` // Marching cubes resolution
}

// ViewerConfig holds preview window and rendering settings.
type ViewerConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Fullscreen    bool       `yaml:"fullscreen"`
	VSync         bool       `yaml:"vsync"`
	SmoothNormals bool       `yaml:"smooth_normals"`
	WireColor     [3]float32 `yaml:"wire_color"`
	FillColor     [3]float32 `yaml:"fill_color"`
	Background    [3]float32 `yaml:"background"`
	WireWidth     float32    `yaml:"wire_width"` // Edge width in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Bake: BakeConfig{
			OutputDir: "processed",
		},
		Primitive: PrimitiveConfig{
			Cells: 24,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			WireColor:  [3]float32{0.1, 0.9, 0.4},
			FillColor:  [3]float32{0.08, 0.08, 0.1},
			Background: [3]float32{0.02, 0.02, 0.03},
			WireWidth:  1.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
