package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/profiler"
	"go.uber.org/zap"
)

// ModelLayer forward-shades one OBJ model under a directional light.
type ModelLayer struct {
	assets *assets.FS
	path   string
	fov    float32

	shader *glbackend.Shader
	model  *glbackend.Model
	view   *flyView
}

func NewModelLayer(a *assets.FS, path string, fov float32) *ModelLayer {
	return &ModelLayer{assets: a, path: path, fov: fov}
}

func (l *ModelLayer) OnAttach(e *core.Engine) error {
	var err error
	l.shader, err = glbackend.LoadShader(l.assets, "mesh.vs", "model.fs")
	if err != nil {
		return err
	}
	l.model, err = glbackend.LoadModel(l.assets, l.path)
	if err != nil {
		l.OnDetach(e)
		return fmt.Errorf("model demo: %w", err)
	}
	w, h := e.Window.FramebufferSize()
	l.view = newFlyView(l.fov, w, h)

	e.Log.Info("model loaded",
		zap.String("path", l.path),
		zap.Int("meshes", len(l.model.Meshes)),
		zap.Int("textures", l.model.TextureCount()),
	)
	return nil
}

func (l *ModelLayer) OnDetach(*core.Engine) {
	if l.model != nil {
		l.model.Delete()
		l.model = nil
	}
	if l.shader != nil {
		l.shader.Delete()
		l.shader = nil
	}
}

func (l *ModelLayer) OnUpdate(e *core.Engine, dt float64) { l.view.update(e, dt) }

func (l *ModelLayer) OnRender(e *core.Engine) {
	defer profiler.Start("model.render")()

	l.shader.Use()
	l.view.setMeshUniforms(l.shader, mgl32.Ident4())
	l.shader.SetVec3("uLightDirection", lightDirection)
	l.shader.SetVec3("uCameraPosition", l.view.cam.Position())
	l.model.Draw(l.shader)
}

func (l *ModelLayer) OnEvent(_ *core.Engine, ev core.Event) bool {
	l.view.onEvent(ev)
	return false
}
