package glbackend

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/hubastard/tofu/engine/core"
	"go.uber.org/zap"
)

// RendererGL owns global GL state: viewport, culling, depth and debug output.
type RendererGL struct {
	win core.Window
	log *zap.Logger
}

func NewRendererGL(win core.Window, cfg core.Config, log *zap.Logger) (*RendererGL, error) {
	r := &RendererGL{win: win, log: log}
	if cfg.Debug {
		EnableDebugOutput(log)
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.DEPTH_TEST)

	log.Info("renderer ready",
		zap.String("vendor", r.GPUVendor()),
		zap.String("renderer", r.GPURenderer()),
		zap.String("version", r.GPUVersion()),
	)
	return r, nil
}

func (r *RendererGL) Shutdown() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

var wireframe bool

// SetWireframe toggles line rasterisation for every draw.
func SetWireframe(on bool) {
	wireframe = on
	applyPolygonMode(on)
}

func applyPolygonMode(lines bool) {
	if lines {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// BeginOverlay sets up screen-space drawing on top of the frame: no depth
// test or culling, straight-alpha blending, filled polygons.
func BeginOverlay() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	applyPolygonMode(false)
}

// EndOverlay restores the 3D state BeginOverlay changed.
func EndOverlay() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	applyPolygonMode(wireframe)
}
