package core

import (
	"time"

	"go.uber.org/zap"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine) error        // called once after window/renderer init
	OnUpdate(e *Engine, dt float64) // called once per frame with the frame delta in seconds
	OnRender(e *Engine)             // called once per frame after the clear
	OnEvent(e *Engine, ev Event)    // input/window events
	OnShutdown(e *Engine)           // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   LayerStack
	Log      *zap.Logger
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Time returns the seconds elapsed since the engine started.
func (e *Engine) Time() float32 { return float32(e.Uptime().Seconds()) }

// PushLayer attaches l and adds it on top of the stack.
func (e *Engine) PushLayer(l Layer) error {
	if err := l.OnAttach(e); err != nil {
		return err
	}
	e.Layers.Push(l)
	return nil
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetCursorMode(m CursorMode)
	SetEventCallback(cb func(Event))
	Destroy()
}

type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorDisabled
)

// Renderer abstraction.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
	Shutdown()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventResize carries the new framebuffer size in pixels.
type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool // held key auto-repeat; Down is also true
	Mods   Mod
}

func (EventKey) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// Key enum (subset used by the demos).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyLeftShift
	KeyLeftControl
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	Key1
	Key2
	Key3
	Key4
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Debug      bool // request a debug GL context and log driver messages
	ClearColor [4]float32
}
