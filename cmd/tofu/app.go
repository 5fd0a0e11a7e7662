package main

import (
	"fmt"
	"time"

	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/config"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/profiler"
	"github.com/hubastard/tofu/engine/scratch"
	"go.uber.org/zap"
)

// titleInterval is how often the frame time in the title is refreshed.
const titleInterval = 500 * time.Millisecond

// App owns the run-wide keys (Escape, F1 wireframe, F2 profile dump) and
// pushes the configured demo layer with the debug overlay above it.
type App struct {
	cfg    config.Config
	assets *assets.FS
	log    *zap.Logger

	wireframe bool

	title      *scratch.Buffer
	titleAt    time.Duration
	lastFrame  time.Duration
	frames     int
	frameTotal time.Duration
	lastMillis float64
}

func NewApp(cfg config.Config, a *assets.FS, log *zap.Logger) *App {
	return &App{cfg: cfg, assets: a, log: log, title: scratch.New(64), wireframe: cfg.Wireframe}
}

// newDemoLayer maps a demo name to its layer.
func newDemoLayer(cfg config.Config, a *assets.FS) (core.Layer, error) {
	switch cfg.Demo {
	case config.DemoCubes:
		return NewCubesLayer(a), nil
	case config.DemoModel:
		return NewModelLayer(a, cfg.Model, cfg.FOV), nil
	case config.DemoGBuffer:
		return NewGBufferLayer(a, cfg.Model, cfg.FOV), nil
	}
	return nil, fmt.Errorf("unknown demo %q", cfg.Demo)
}

func (a *App) OnStart(e *core.Engine) error {
	if a.cfg.Profile {
		profiler.Init(profiler.DefaultCapacity)
	}
	glbackend.SetWireframe(a.wireframe)

	layer, err := newDemoLayer(a.cfg, a.assets)
	if err != nil {
		return err
	}
	if err := e.PushLayer(layer); err != nil {
		return fmt.Errorf("start %s demo: %w", a.cfg.Demo, err)
	}
	views, _ := layer.(viewNamer)
	overlay := NewDebugLayer(a.assets, a.cfg, a, views)
	if err := e.PushLayer(overlay); err != nil {
		return fmt.Errorf("start overlay: %w", err)
	}
	a.log.Info("demo started", zap.String("demo", a.cfg.Demo), zap.Bool("profile", a.cfg.Profile))
	return nil
}

// OnUpdate measures frames against the wall clock; the dt handed to layers
// is capped and would hide hitches.
func (a *App) OnUpdate(e *core.Engine, _ float64) {
	if a.tick(e.Uptime()) {
		e.Window.SetTitle(a.frameTitle())
	}
}

// tick records the frame ending at now and reports whether the title is due.
func (a *App) tick(now time.Duration) bool {
	a.frames++
	a.frameTotal += now - a.lastFrame
	a.lastFrame = now
	if now-a.titleAt < titleInterval {
		return false
	}
	a.titleAt = now
	return true
}

// frameTitle formats the average frame time since the last refresh.
func (a *App) frameTitle() string {
	ms := a.frameMillis()
	a.lastMillis = ms
	a.frames, a.frameTotal = 0, 0
	a.title.Reset()
	a.title.S(a.cfg.Title).S(" | ").S(a.cfg.Demo).S(" | ").F(ms, 2).S(" ms")
	return a.title.String()
}

// frameMillis is the mean uncapped frame time since the last title refresh.
func (a *App) frameMillis() float64 {
	if a.frames == 0 {
		return 0
	}
	return a.frameTotal.Seconds() / float64(a.frames) * 1000
}

// FrameMillis is the frame time shown in the title at its last refresh.
func (a *App) FrameMillis() float64 { return a.lastMillis }

func (a *App) Wireframe() bool { return a.wireframe }

func (a *App) OnRender(*core.Engine) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down || k.Repeat {
		return
	}
	switch k.Key {
	case core.KeyEscape:
		e.Window.RequestClose()
	case core.KeyF1:
		a.wireframe = !a.wireframe
		glbackend.SetWireframe(a.wireframe)
	case core.KeyF2:
		a.dumpProfile()
	}
}

func (a *App) dumpProfile() {
	if !profiler.Enabled() {
		a.log.Warn("profiling disabled; set profile: true to record")
		return
	}
	path, err := profiler.Dump("")
	if err != nil {
		a.log.Error("profile dump failed", zap.Error(err))
		return
	}
	a.log.Info("profile written", zap.String("path", path))
}

func (a *App) OnShutdown(e *core.Engine) {
	st := profiler.ReadStats()
	a.log.Info("demo stopped",
		zap.String("demo", a.cfg.Demo),
		zap.Duration("uptime", e.Uptime()),
		zap.Uint64("heap_bytes", st.HeapAlloc),
		zap.Uint64("mallocs", st.Mallocs),
	)
}
