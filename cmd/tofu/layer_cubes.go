package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/core"
	"github.com/hubastard/tofu/engine/geom"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"github.com/hubastard/tofu/engine/profiler"
	"github.com/hubastard/tofu/engine/scene"
)

const (
	cubesFOV         = 50
	cubesNear        = 0.1
	cubesOrbitRadius = 10
)

var cubePositions = [...]mgl32.Vec3{
	{0, 0, 0},
	{2, 5, -15},
	{-1.5, -2.2, -2.5},
	{-3.8, -2, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3, -7.5},
	{1.3, -2, -2.5},
	{1.5, 2, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1, -1.5},
}

// CubesLayer draws ten spinning cubes blending two textures, seen from a
// camera orbiting the origin.
type CubesLayer struct {
	assets     *assets.FS
	shader     *glbackend.Shader
	cube       *glbackend.Model
	textures   []*glbackend.Texture
	projection mgl32.Mat4
}

func NewCubesLayer(a *assets.FS) *CubesLayer {
	return &CubesLayer{assets: a}
}

func (l *CubesLayer) OnAttach(e *core.Engine) error {
	var err error
	l.shader, err = glbackend.LoadShader(l.assets, "basic.vs", "basic.fs")
	if err != nil {
		return err
	}

	bindings := make([]glbackend.TextureBinding, 0, 2)
	for i, name := range []string{"textures/dubu.jpg", "textures/twice.png"} {
		tex, err := glbackend.LoadTexture(l.assets, name)
		if err != nil {
			l.OnDetach(e)
			return fmt.Errorf("cubes: %w", err)
		}
		l.textures = append(l.textures, tex)
		bindings = append(bindings, glbackend.TextureBinding{Uniform: fmt.Sprintf("texture%d", i+1), Texture: tex})
	}

	l.cube, err = glbackend.NewModelFromMesh(geom.Cube(), bindings)
	if err != nil {
		l.OnDetach(e)
		return fmt.Errorf("cubes: %w", err)
	}

	l.resize(e.Window.FramebufferSize())
	e.Log.Debug("cubes ready")
	return nil
}

// resize keeps the previous projection while the window is minimized.
func (l *CubesLayer) resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	l.projection = mgl32.Perspective(mgl32.DegToRad(cubesFOV), float32(w)/float32(h), cubesNear, scene.ZFar)
}

func (l *CubesLayer) OnDetach(*core.Engine) {
	if l.cube != nil {
		l.cube.Delete()
		l.cube = nil
	}
	for _, t := range l.textures {
		t.Delete()
	}
	l.textures = nil
	if l.shader != nil {
		l.shader.Delete()
		l.shader = nil
	}
}

func (l *CubesLayer) OnUpdate(*core.Engine, float64) {}

// cubeTransform spins cube i about an axis that wobbles over time. Each
// cube runs its own phase, offset by its index.
func cubeTransform(i int, t float32) scene.Transform {
	phase := t + float32(i)
	return scene.Transform{
		Position: cubePositions[i],
		Axis:     mgl32.Vec3{0.5, 1, float32(math.Sin(float64(phase) * 0.73))}.Normalize(),
		Angle:    phase,
	}
}

func (l *CubesLayer) OnRender(e *core.Engine) {
	defer profiler.Start("cubes.render")()

	t := e.Time()
	viewProjection := l.projection.Mul4(scene.OrbitView(t, cubesOrbitRadius))

	l.shader.Use()
	l.shader.SetFloat("uTime", t)
	for i := range cubePositions {
		model := cubeTransform(i, t).Matrix()
		l.shader.SetMat4("uMVP", viewProjection.Mul4(model))
		l.cube.Draw(l.shader)
	}
}

func (l *CubesLayer) OnEvent(_ *core.Engine, ev core.Event) bool {
	if r, ok := ev.(core.EventResize); ok {
		l.resize(r.W, r.H)
	}
	return false
}
