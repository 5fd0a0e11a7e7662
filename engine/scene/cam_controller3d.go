package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/core"
)

// Speed multipliers while a modifier is held.
const (
	FastMultiplier = 5.0
	SlowMultiplier = 0.1
)

// FlyController: hold the look button and drag to turn, WASD move,
// Q/E down/up, Shift fast, Ctrl slow.
type FlyController struct {
	Camera     *FlyCamera
	LookButton core.MouseButton

	looking      bool
	lastX, lastY float64
}

func NewFlyController(cam *FlyCamera) *FlyController {
	return &FlyController{Camera: cam, LookButton: core.MouseButtonRight}
}

// Looking reports whether the cursor is captured for mouse-look.
func (fc *FlyController) Looking() bool { return fc.looking }

// Update feeds this frame's input into the camera. Call before
// FlyCamera.Update.
func (fc *FlyController) Update(in *core.Input, win core.Window) {
	fc.updateLook(in, win)
	fc.updateMovement(in)
}

func (fc *FlyController) updateLook(in *core.Input, win core.Window) {
	down := in.IsMouseDown(fc.LookButton)
	if fc.looking && !down {
		win.SetCursorMode(core.CursorNormal)
		fc.looking = false
		return
	}

	x, y := in.Mouse()
	if !fc.looking && down {
		win.SetCursorMode(core.CursorDisabled)
		fc.looking = true
		fc.lastX, fc.lastY = x, y
		return
	}
	if !fc.looking {
		return
	}

	dx, dy := x-fc.lastX, y-fc.lastY
	fc.lastX, fc.lastY = x, y
	fc.Camera.AddLook(float32(dx), float32(dy))
}

func (fc *FlyController) updateMovement(in *core.Input) {
	var m mgl32.Vec3
	if in.IsKeyDown(core.KeyW) {
		m[2]++
	}
	if in.IsKeyDown(core.KeyS) {
		m[2]--
	}
	if in.IsKeyDown(core.KeyA) {
		m[0]--
	}
	if in.IsKeyDown(core.KeyD) {
		m[0]++
	}
	if in.IsKeyDown(core.KeyQ) {
		m[1]--
	}
	if in.IsKeyDown(core.KeyE) {
		m[1]++
	}
	if m.Len() == 0 {
		return
	}

	speed := float32(1)
	switch {
	case in.IsKeyDown(core.KeyLeftShift):
		speed = FastMultiplier
	case in.IsKeyDown(core.KeyLeftControl):
		speed = SlowMultiplier
	}
	fc.Camera.AddMovement(m.Normalize().Mul(speed))
}
