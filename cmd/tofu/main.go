package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/config"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/logging"
	"github.com/hubastard/tofu/engine/platform"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	demo := flag.String("demo", "", "demo to run: cubes, model or gbuffer")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *demo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	app := NewApp(cfg, assets.Dir(cfg.AssetRoot), log)

	newWindow := func(c core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(c, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	newRenderer := func(win core.Window, c core.Config) (core.Renderer, error) {
		r, err := glbackend.NewRendererGL(win, c, log)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	if err := core.Run(app, cfg.Window(), log, newWindow, newRenderer); err != nil {
		log.Fatal("run failed", zap.String("demo", cfg.Demo), zap.Error(err))
	}
}

// loadConfig layers the -demo flag over file and environment settings.
func loadConfig(path, demo string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if demo == "" {
		return cfg, nil
	}
	cfg.Demo = demo
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
