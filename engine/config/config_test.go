package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/tofu/engine/colors"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tofu.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if cfg.Width != 1600 || cfg.Height != 900 || cfg.FOV != 50 || cfg.Demo != DemoGBuffer {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Overlay || cfg.OverlayFont != "" || cfg.OverlayFontSize != 16 {
		t.Errorf("overlay defaults %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	p := writeFile(t, "demo: cubes\nwidth: 800\nheight: 600\nfov: 70\n")
	t.Setenv("TOFU_WIDTH", "1024")
	t.Setenv("TOFU_VSYNC", "true")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Demo != DemoCubes || cfg.Height != 600 || cfg.FOV != 70 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != 1024 || !cfg.VSync {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.Title != "Tofu" {
		t.Errorf("unset field lost its default: %q", cfg.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "colour: red\n", "colour"},
		{"bad demo", "demo: teapot\n", "unknown demo"},
		{"zero width", "width: 0\n", "window size"},
		{"fov", "fov: 180\n", "fov"},
		{"model demo without model", "demo: model\nmodel: \"\"\n", "needs a model"},
		{"overlay font size", "overlay_font_size: 2\n", "overlay_font_size"},
	}
	for _, tc := range cases {
		_, err := Load(writeFile(t, tc.body))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: err = %v, want mention of %q", tc.name, err, tc.want)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("TOFU_HEIGHT", "tall")
	if _, err := Load(""); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestWindow(t *testing.T) {
	cfg := Default()
	w := cfg.Window()
	if w.Title != cfg.Title || w.Width != cfg.Width || !w.Debug {
		t.Errorf("Window() = %+v", w)
	}
	if w.ClearColor != colors.Black {
		t.Errorf("clear color = %v", w.ClearColor)
	}
	cfg.Demo = DemoCubes
	if cfg.Window().ClearColor != colors.Tofu {
		t.Errorf("cubes clear color = %v", cfg.Window().ClearColor)
	}
}
