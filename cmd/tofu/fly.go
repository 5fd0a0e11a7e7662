package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/core"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/scene"
)

var (
	flyStart       = mgl32.Vec3{0, 1, 7}
	lightDirection = mgl32.Vec3{-0.4, -1, -0.3}.Normalize()
)

// flyView is the free-fly camera shared by the model and gbuffer demos.
type flyView struct {
	cam *scene.FlyCamera
	ctl *scene.FlyController
	fov float32
}

func newFlyView(fov float32, w, h int) *flyView {
	cam := scene.NewFlyCamera()
	cam.SetPosition(flyStart)
	v := &flyView{cam: cam, ctl: scene.NewFlyController(cam), fov: fov}
	v.resize(w, h)
	// settle the basis and view before the first frame
	cam.Update(0)
	return v
}

func (v *flyView) resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	v.cam.SetPerspective(v.fov, float32(w)/float32(h))
}

func (v *flyView) update(e *core.Engine, dt float64) {
	v.ctl.Update(e.Input, e.Window)
	v.cam.Update(float32(dt))
}

func (v *flyView) onEvent(ev core.Event) {
	if r, ok := ev.(core.EventResize); ok {
		v.resize(r.W, r.H)
	}
}

// setMeshUniforms fills the transforms mesh.vs expects for one instance.
func (v *flyView) setMeshUniforms(s *glbackend.Shader, model mgl32.Mat4) {
	s.SetMat4("uModelMatrix", model)
	s.SetMat4("uNormalMatrix", scene.NormalMatrix(model))
	s.SetMat4("uModelViewProjectionMatrix", v.cam.ViewProjection().Mul4(model))
}
