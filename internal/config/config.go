package config

import (
	"ScrollMat/internal/logger"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where demos look for their configuration.
const DefaultPath = "scrollmat.yaml"

// WindowConfig controls the engine window.
type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// RenderConfig mirrors the renderer switches.
type RenderConfig struct {
	DeferredShading bool `yaml:"deferred_shading"`
	FaceCulling     bool `yaml:"face_culling"`
	FrustumCulling  bool `yaml:"frustum_culling"`
	Wireframe       bool `yaml:"wireframe"`
}

// ScrollConfig tunes the scroll material demos.
type ScrollConfig struct {
	InitialSpeed [2]float32 `yaml:"initial_speed"`
	Step         float32    `yaml:"step"`
	ShaderPath   string     `yaml:"shader_path"` // Overrides the built-in fragment shader when set
}

type Config struct {
	Debug  bool         `yaml:"debug"`
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Scroll ScrollConfig `yaml:"scroll"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "ScrollMat",
			X:      100,
			Y:      100,
		},
		Scroll: ScrollConfig{
			InitialSpeed: [2]float32{0, 1},
			Step:         0.5,
		},
	}
}

// Load reads a YAML file on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Log.Info("No config file found, using defaults", zap.String("path", path))
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot start with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Scroll.Step < 0 {
		return fmt.Errorf("scroll step must not be negative, got %f", c.Scroll.Step)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
