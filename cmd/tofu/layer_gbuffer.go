package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/profiler"
	"github.com/hubastard/tofu/engine/scene"
	"go.uber.org/zap"
)

// G-buffer attachments, in COLOR_ATTACHMENTi order.
var gbufferTargets = []glbackend.RenderTargetDesc{
	glbackend.TargetRGBA16F, // world position, alpha 1 where covered
	glbackend.TargetRGBA16F, // world normal
	glbackend.TargetRGBA8,   // albedo rgb, roughness a
}

// emptyPositionAlpha marks pixels no geometry wrote to.
const emptyPositionAlpha = 1000

const (
	gbufferSpin    = 0.25 // rad/s
	gbufferSpacing = 5
)

// Composite views selected with keys 1-4.
const (
	viewLit = iota
	viewPosition
	viewNormal
	viewAlbedo
)

var viewNames = [...]string{
	viewLit:      "lit",
	viewPosition: "position",
	viewNormal:   "normal",
	viewAlbedo:   "albedo",
}

var viewKeys = map[core.Key]int32{
	core.Key1: viewLit,
	core.Key2: viewPosition,
	core.Key3: viewNormal,
	core.Key4: viewAlbedo,
}

// GBufferLayer renders three model instances into a G-buffer, then
// composites it to the screen with a fullscreen triangle.
type GBufferLayer struct {
	assets *assets.FS
	path   string
	fov    float32

	geometry  *glbackend.Shader
	composite *glbackend.Shader
	model     *glbackend.Model
	screen    *glbackend.Model
	gbuffer   *glbackend.Framebuffer
	view      *flyView
	mode      int32
}

func NewGBufferLayer(a *assets.FS, path string, fov float32) *GBufferLayer {
	return &GBufferLayer{assets: a, path: path, fov: fov}
}

func (l *GBufferLayer) OnAttach(e *core.Engine) (err error) {
	defer func() {
		if err != nil {
			l.OnDetach(e)
			err = fmt.Errorf("gbuffer demo: %w", err)
		}
	}()

	if l.geometry, err = glbackend.LoadShader(l.assets, "mesh.vs", "gbuffer.fs"); err != nil {
		return err
	}
	if l.composite, err = glbackend.LoadShader(l.assets, "copy.vs", "copy.fs"); err != nil {
		return err
	}
	l.composite.Use()
	l.composite.SetInt("uPositionTexture", 0)
	l.composite.SetInt("uNormalTexture", 1)
	l.composite.SetInt("uAlbedoRoughnessTexture", 2)

	if l.model, err = glbackend.LoadModel(l.assets, l.path); err != nil {
		return err
	}
	if l.screen, err = glbackend.NewFullscreenTriangle(); err != nil {
		return err
	}

	w, h := e.Window.FramebufferSize()
	if l.gbuffer, err = glbackend.NewFramebuffer(w, h, gbufferTargets); err != nil {
		return err
	}
	l.view = newFlyView(l.fov, w, h)

	e.Log.Info("gbuffer ready",
		zap.String("model", l.path),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("targets", len(gbufferTargets)),
	)
	return nil
}

// ViewName is the composite view on screen.
func (l *GBufferLayer) ViewName() string { return viewNames[l.mode] }

func (l *GBufferLayer) OnDetach(*core.Engine) {
	if l.gbuffer != nil {
		l.gbuffer.Delete()
		l.gbuffer = nil
	}
	for _, m := range []**glbackend.Model{&l.model, &l.screen} {
		if *m != nil {
			(*m).Delete()
			*m = nil
		}
	}
	for _, s := range []**glbackend.Shader{&l.geometry, &l.composite} {
		if *s != nil {
			(*s).Delete()
			*s = nil
		}
	}
}

func (l *GBufferLayer) OnUpdate(e *core.Engine, dt float64) { l.view.update(e, dt) }

// instanceTransform places instance i (-1, 0, 1) along X, spinning about Y.
func instanceTransform(i int, t float32) scene.Transform {
	return scene.Transform{
		Position: mgl32.Vec3{float32(i) * gbufferSpacing, 0, 0},
		Axis:     mgl32.Vec3{0, 1, 0},
		Angle:    t * gbufferSpin,
	}
}

func (l *GBufferLayer) OnRender(e *core.Engine) {
	t := e.Time()

	end := profiler.Start("gbuffer.geometry")
	l.gbuffer.BindAsTarget()
	e.Renderer.Clear(0, 0, 0, emptyPositionAlpha)
	l.geometry.Use()
	l.geometry.SetFloat("uTime", t)
	for i := -1; i <= 1; i++ {
		l.view.setMeshUniforms(l.geometry, instanceTransform(i, t).Matrix())
		l.model.Draw(l.geometry)
	}
	l.gbuffer.UnbindAsTarget()
	end()

	defer profiler.Start("gbuffer.composite")()
	l.composite.Use()
	l.composite.SetInt("uView", l.mode)
	l.composite.SetVec3("uLightDirection", lightDirection)
	l.composite.SetVec3("uCameraPosition", l.view.cam.Position())
	l.gbuffer.BindAsSource()
	l.screen.Draw(l.composite)
}

func (l *GBufferLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch ev := ev.(type) {
	case core.EventResize:
		if err := l.gbuffer.Resize(ev.W, ev.H); err != nil {
			e.Log.Error("gbuffer resize", zap.Int("width", ev.W), zap.Int("height", ev.H), zap.Error(err))
			return false
		}
		l.view.resize(ev.W, ev.H)
	case core.EventKey:
		if mode, ok := viewKeys[ev.Key]; ok && ev.Down {
			l.mode = mode
			return true
		}
	}
	return false
}
