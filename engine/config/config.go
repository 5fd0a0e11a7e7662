// Package config loads run settings: built-in defaults, then an optional
// YAML file, then TOFU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hubastard/tofu/engine/colors"
	"github.com/hubastard/tofu/engine/core"
	"gopkg.in/yaml.v3"
)

// Demo names accepted by Demo.
const (
	DemoCubes   = "cubes"
	DemoModel   = "model"
	DemoGBuffer = "gbuffer"
)

type Config struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	VSync  bool   `yaml:"vsync" env:"VSYNC"`

	Demo      string  `yaml:"demo" env:"DEMO"`
	AssetRoot string  `yaml:"asset_root" env:"ASSET_ROOT"`
	Model     string  `yaml:"model" env:"MODEL"`
	FOV       float32 `yaml:"fov" env:"FOV"`
	Wireframe bool    `yaml:"wireframe" env:"WIREFRAME"`

	GLDebug  bool   `yaml:"gl_debug" env:"GL_DEBUG"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogDev   bool   `yaml:"log_dev" env:"LOG_DEV"`
	Profile  bool   `yaml:"profile" env:"PROFILE"`

	// Debug overlay, toggled with F3. An empty font means Go Regular,
	// otherwise a file under fonts/.
	Overlay         bool    `yaml:"overlay" env:"OVERLAY"`
	OverlayFont     string  `yaml:"overlay_font" env:"OVERLAY_FONT"`
	OverlayFontSize float32 `yaml:"overlay_font_size" env:"OVERLAY_FONT_SIZE"`
}

func Default() Config {
	return Config{
		Title:     "Tofu",
		Width:     1600,
		Height:    900,
		Demo:      DemoGBuffer,
		AssetRoot: "assets",
		Model:     "models/3d_other_ufnscjdga/ufnscjdga_LOD0.obj",
		FOV:       50,
		GLDebug:   true,
		LogLevel:  "info",
		LogDev:    true,

		OverlayFontSize: 16,
	}
}

// Load applies path (skipped when empty) and the environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TOFU_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config %q: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	switch c.Demo {
	case DemoCubes, DemoModel, DemoGBuffer:
	default:
		errs = append(errs, fmt.Errorf("unknown demo %q", c.Demo))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180)", c.FOV))
	}
	if c.AssetRoot == "" {
		errs = append(errs, errors.New("asset_root is empty"))
	}
	if c.OverlayFontSize < 6 || c.OverlayFontSize > 128 {
		errs = append(errs, fmt.Errorf("overlay_font_size %v must be in [6, 128]", c.OverlayFontSize))
	}
	if (c.Demo == DemoModel || c.Demo == DemoGBuffer) && c.Model == "" {
		errs = append(errs, fmt.Errorf("demo %q needs a model", c.Demo))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Window is the engine configuration for this run.
func (c Config) Window() core.Config {
	clear := colors.Black
	if c.Demo == DemoCubes {
		clear = colors.Tofu
	}
	return core.Config{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		VSync:      c.VSync,
		Debug:      c.GLDebug,
		ClearColor: clear,
	}
}
