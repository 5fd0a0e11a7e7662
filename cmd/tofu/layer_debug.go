package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/colors"
	"github.com/hubastard/tofu/engine/config"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/gfx/renderer2d"
	"github.com/hubastard/tofu/engine/profiler"
	"github.com/hubastard/tofu/engine/text"
	"github.com/hubastard/tofu/engine/ui"
	"go.uber.org/zap"
)

const overlayMaxQuads = 4096

// runState is the run-wide state the overlay reports; App implements it.
type runState interface {
	FrameMillis() float64
	Wireframe() bool
}

// viewNamer is implemented by demos with switchable composite views.
type viewNamer interface {
	ViewName() string
}

// debugInfo is everything the overlay prints for one frame.
type debugInfo struct {
	demo        string
	frameMillis float64
	view        string // empty when the demo has a single view
	profiling   bool
	wireframe   bool
	mem         profiler.Stats
	r2d         renderer2d.Statistics
	gpu         [3]string // vendor, renderer, version
}

type debugLine struct {
	text    string
	heading bool
}

func debugLines(in debugInfo) []debugLine {
	fps := "-- FPS"
	if in.frameMillis > 0 {
		fps = fmt.Sprintf("%.1f FPS", 1000/in.frameMillis)
	}
	view := in.view
	if view == "" {
		view = "-"
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	return []debugLine{
		{text: "Frame", heading: true},
		{text: fmt.Sprintf("%.2f ms (%s)", in.frameMillis, fps)},
		{text: "Demo", heading: true},
		{text: fmt.Sprintf("Name: %s", in.demo)},
		{text: fmt.Sprintf("G-buffer view: %s", view)},
		{text: fmt.Sprintf("Wireframe: %s", onOff(in.wireframe))},
		{text: fmt.Sprintf("Profiling: %s", onOff(in.profiling))},
		{text: "Memory", heading: true},
		{text: fmt.Sprintf("Heap: %.3f MB", float64(in.mem.HeapAlloc)/(1<<20))},
		{text: fmt.Sprintf("Allocs: %d", in.mem.Mallocs)},
		{text: fmt.Sprintf("Goroutines: %d", in.mem.Goroutines)},
		{text: "Overlay", heading: true},
		{text: fmt.Sprintf("Draw calls: %d", in.r2d.DrawCalls)},
		{text: fmt.Sprintf("Quads: %d", in.r2d.QuadCount)},
		{text: fmt.Sprintf("Textures: %d", in.r2d.TextureCount)},
		{text: "GPU", heading: true},
		{text: fmt.Sprintf("Vendor: %s", in.gpu[0])},
		{text: fmt.Sprintf("Renderer: %s", in.gpu[1])},
		{text: fmt.Sprintf("Version: %s", in.gpu[2])},
	}
}

// DebugLayer draws frame, memory and GPU information in a panel over the
// demo. F3 shows and hides it.
type DebugLayer struct {
	assets   *assets.FS
	fontName string
	fontSize float32
	visible  bool
	demo     string

	run   runState
	views viewNamer // nil for single-view demos

	font       *text.Font
	r2d        *renderer2d.Renderer2D
	projection mgl32.Mat4
	width      float32
	height     float32
	gpu        [3]string
	last       renderer2d.Statistics
}

func NewDebugLayer(a *assets.FS, cfg config.Config, run runState, views viewNamer) *DebugLayer {
	return &DebugLayer{
		assets:   a,
		fontName: cfg.OverlayFont,
		fontSize: cfg.OverlayFontSize,
		visible:  cfg.Overlay,
		demo:     cfg.Demo,
		run:      run,
		views:    views,
	}
}

func (l *DebugLayer) OnAttach(e *core.Engine) (err error) {
	defer func() {
		if err != nil {
			l.OnDetach(e)
			err = fmt.Errorf("overlay: %w", err)
		}
	}()

	if l.fontName == "" {
		l.font, err = text.LoadGoRegular(l.fontSize)
	} else {
		l.font, err = text.LoadFile(l.assets, l.fontName, l.fontSize)
	}
	if err != nil {
		return err
	}
	if l.r2d, err = renderer2d.New(l.assets, overlayMaxQuads); err != nil {
		return err
	}
	l.gpu = [3]string{e.Renderer.GPUVendor(), e.Renderer.GPURenderer(), e.Renderer.GPUVersion()}
	l.resize(e.Window.FramebufferSize())

	e.Log.Debug("overlay ready",
		zap.Float32("font_size", l.fontSize),
		zap.Int("atlas", l.font.AtlasW),
		zap.Bool("visible", l.visible),
	)
	return nil
}

// resize keeps a top-left origin, Y down, one unit per pixel.
func (l *DebugLayer) resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	l.width, l.height = float32(w), float32(h)
	l.projection = mgl32.Ortho2D(0, l.width, l.height, 0)
}

func (l *DebugLayer) OnDetach(*core.Engine) {
	if l.r2d != nil {
		l.r2d.Delete()
		l.r2d = nil
	}
	if l.font != nil {
		l.font.Delete()
		l.font = nil
	}
}

func (l *DebugLayer) OnUpdate(*core.Engine, float64) {}

func (l *DebugLayer) info() debugInfo {
	in := debugInfo{
		demo:        l.demo,
		frameMillis: l.run.FrameMillis(),
		wireframe:   l.run.Wireframe(),
		profiling:   profiler.Enabled(),
		mem:         profiler.ReadStats(),
		r2d:         l.last,
		gpu:         l.gpu,
	}
	if l.views != nil {
		in.view = l.views.ViewName()
	}
	return in
}

// panel builds the overlay tree for in.
func panel(in debugInfo) *ui.UIView {
	lines := debugLines(in)
	labels := make([]ui.UIElement, len(lines))
	for i, ln := range lines {
		if ln.heading {
			labels[i] = ui.Label(ln.text).Color(colors.Yellow).Padding4(0, 8, 0, 0)
			continue
		}
		labels[i] = ui.Label(ln.text).Padding4(12, 0, 0, 0)
	}
	return ui.View(
		ui.View(labels...).
			FlowDirection(ui.LayoutVertical).
			Gap(2).
			Padding(16).
			BgColor(colors.Black.WithAlpha(0.6)),
	).
		Padding(16).
		FlowDirection(ui.LayoutVertical)
}

func (l *DebugLayer) OnRender(*core.Engine) {
	if !l.visible {
		return
	}
	defer profiler.Start("overlay.render")()

	glbackend.BeginOverlay()
	l.r2d.BeginScene(l.projection)
	panel(l.info()).Draw(&ui.Context{
		Viewport:    [4]float32{0, 0, l.width, l.height},
		DefaultFont: l.font,
		Renderer:    l.r2d,
	})
	l.r2d.EndScene()
	l.last = l.r2d.Stats()
	glbackend.EndOverlay()
}

func (l *DebugLayer) OnEvent(_ *core.Engine, ev core.Event) bool {
	switch ev := ev.(type) {
	case core.EventKey:
		if ev.Key == core.KeyF3 && ev.Down && !ev.Repeat {
			l.visible = !l.visible
			return true
		}
	case core.EventResize:
		l.resize(ev.W, ev.H)
	}
	return false
}
