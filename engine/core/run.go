package core

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// maxFrameDelta caps the delta handed to updates after a stall (debugger,
// window drag) so camera easing does not jump.
const maxFrameDelta = 0.25

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, log *zap.Logger, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if log == nil {
		log = zap.NewNop()
	}

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	// window owns the context; renderer shuts down first
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), Log: log, start: time.Now()}
	win.SetEventCallback(func(ev Event) { dispatch(eng, app, ev) })

	if err := app.OnStart(eng); err != nil {
		detachAll(eng)
		return err
	}

	clear := cfg.ClearColor
	prev := time.Now()
	for !win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(prev).Seconds()
		prev = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		app.OnUpdate(eng, dt)
		eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng) })

		win.SwapBuffers()
	}

	detachAll(eng)
	app.OnShutdown(eng)
	log.Info("engine exit", zap.Duration("uptime", eng.Uptime()))
	return nil
}

func dispatch(eng *Engine, app App, ev Event) {
	eng.Input.Handle(ev)
	if r, ok := ev.(EventResize); ok {
		// minimised windows report 0x0; keep the last usable viewport
		if r.W < 1 || r.H < 1 {
			return
		}
		eng.Renderer.Resize(r.W, r.H)
	}
	app.OnEvent(eng, ev)
	eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) })
}

func detachAll(eng *Engine) {
	for {
		l, ok := eng.Layers.Pop()
		if !ok {
			return
		}
		l.OnDetach(eng)
	}
}
