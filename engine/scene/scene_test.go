package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/core"
)

const tol = 1e-3

func near(a, b float32) bool { return math.Abs(float64(a-b)) < tol }

func vecNear(a, b mgl32.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestNewFlyCameraBasis(t *testing.T) {
	c := NewFlyCamera()
	if c.Forward() != (mgl32.Vec3{0, 0, -1}) || c.Right() != (mgl32.Vec3{1, 0, 0}) || c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("basis = %v %v %v", c.Forward(), c.Right(), c.Up())
	}
	if c.ViewProjection() != mgl32.Ident4() {
		t.Errorf("initial view-projection is not identity")
	}
	// the basis derived from yaw -90 / pitch 0 matches the initial one
	c.Update(0.016)
	if !vecNear(c.Forward(), mgl32.Vec3{0, 0, -1}) || !vecNear(c.Right(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("basis after update = %v %v", c.Forward(), c.Right())
	}
}

func TestFlyCameraEasesVelocity(t *testing.T) {
	c := NewFlyCamera()
	c.AddMovement(mgl32.Vec3{0, 0, 1})
	c.Update(0.05)
	// velocity reaches half the target (10/s * 0.05s); moved 0.5 * 0.05 * 10
	if !vecNear(c.Position(), mgl32.Vec3{0, 0, -0.25}) {
		t.Errorf("position = %v, want (0, 0, -0.25)", c.Position())
	}

	// movement is consumed; velocity keeps decaying toward zero
	before := c.Position()
	c.Update(0.05)
	moved := c.Position().Sub(before).Len()
	if moved <= 0 || moved >= 0.25 {
		t.Errorf("coasting moved %v, want in (0, 0.25)", moved)
	}
}

func TestFlyCameraLongFrameDoesNotOvershoot(t *testing.T) {
	c := NewFlyCamera()
	c.AddMovement(mgl32.Vec3{1, 0, 0})
	c.AddLook(900, 0)
	c.Update(1)
	if !near(c.Yaw(), 0) {
		t.Errorf("yaw = %v, want 0", c.Yaw())
	}
	// yaw 0 faces +X, so "right" is +Z; velocity capped at the target
	if !vecNear(c.Forward(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("forward = %v", c.Forward())
	}
	if !vecNear(c.Position(), mgl32.Vec3{0, 0, 10}) {
		t.Errorf("position = %v, want (0, 0, 10)", c.Position())
	}
}

func TestFlyCameraPitchClamp(t *testing.T) {
	c := NewFlyCamera()
	c.AddLook(0, -1e6)
	c.Update(1)
	if c.Pitch() != MaxPitch {
		t.Fatalf("pitch = %v, want %v", c.Pitch(), MaxPitch)
	}
	if c.Up().Len() < 0.99 {
		t.Errorf("up vector degenerate at max pitch: %v", c.Up())
	}
	c.AddLook(0, 2e6)
	c.Update(1)
	if c.Pitch() != -MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch(), -MaxPitch)
	}
}

func TestFlyCameraViewProjection(t *testing.T) {
	c := NewFlyCamera()
	c.SetPerspective(50, 16.0/9.0)
	c.SetPosition(mgl32.Vec3{0, 1, 7})
	c.Update(0.016)

	want := c.Projection().Mul4(c.View())
	if !c.ViewProjection().ApproxEqual(want) {
		t.Errorf("view-projection != projection * view")
	}
	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if clip[3] <= 0 {
		t.Fatalf("point ahead of the camera has w = %v", clip[3])
	}
	if ndc := clip.Vec3().Mul(1 / clip[3]); math.Abs(float64(ndc[0])) > 1 || math.Abs(float64(ndc[1])) > 1 {
		t.Errorf("point ahead of the camera is off screen: %v", ndc)
	}
}

func TestSmoothing(t *testing.T) {
	if !near(smoothing(10, 0.01), 0.1) {
		t.Errorf("smoothing(10, 0.01) = %v", smoothing(10, 0.01))
	}
	if smoothing(10, 5) != 1 {
		t.Errorf("smoothing not capped at 1")
	}
	if smoothing(10, -1) != 0 {
		t.Errorf("negative dt not clamped")
	}
}

type cursorWindow struct {
	modes []core.CursorMode
}

func (w *cursorWindow) PollEvents()                       {}
func (w *cursorWindow) SwapBuffers()                      {}
func (w *cursorWindow) ShouldClose() bool                 { return false }
func (w *cursorWindow) RequestClose()                     {}
func (w *cursorWindow) FramebufferSize() (int, int)       { return 1, 1 }
func (w *cursorWindow) SetTitle(string)                   {}
func (w *cursorWindow) SetCursorMode(m core.CursorMode)   { w.modes = append(w.modes, m) }
func (w *cursorWindow) SetEventCallback(func(core.Event)) {}
func (w *cursorWindow) Destroy()                          {}

func TestFlyControllerMouseLook(t *testing.T) {
	cam := NewFlyCamera()
	fc := NewFlyController(cam)
	in := core.NewInput()
	win := &cursorWindow{}

	// moving without the button does nothing
	in.Handle(core.EventMouseMove{X: 50, Y: 50})
	fc.Update(in, win)
	if fc.Looking() || len(win.modes) != 0 {
		t.Fatalf("look started without the button")
	}

	in.Handle(core.EventMouseButton{Button: core.MouseButtonRight, Down: true})
	in.Handle(core.EventMouseMove{X: 100, Y: 100})
	fc.Update(in, win)
	if !fc.Looking() || win.modes[0] != core.CursorDisabled {
		t.Fatalf("press did not capture the cursor: %v", win.modes)
	}

	// the capture frame itself applies no rotation
	in.Handle(core.EventMouseMove{X: 110, Y: 90})
	fc.Update(in, win)
	cam.Update(1)
	if !near(cam.Yaw(), -89) || !near(cam.Pitch(), 1) {
		t.Errorf("yaw/pitch = %v/%v, want -89/1", cam.Yaw(), cam.Pitch())
	}

	in.Handle(core.EventMouseButton{Button: core.MouseButtonRight, Down: false})
	fc.Update(in, win)
	if fc.Looking() || win.modes[len(win.modes)-1] != core.CursorNormal {
		t.Errorf("release did not restore the cursor: %v", win.modes)
	}
}

func TestFlyControllerMovement(t *testing.T) {
	cases := []struct {
		name string
		keys []core.Key
		want mgl32.Vec3
	}{
		{"forward", []core.Key{core.KeyW}, mgl32.Vec3{0, 0, -10}},
		{"opposites cancel", []core.Key{core.KeyW, core.KeyS}, mgl32.Vec3{}},
		{"up", []core.Key{core.KeyE}, mgl32.Vec3{0, 10, 0}},
		{"slow", []core.Key{core.KeyW, core.KeyLeftControl}, mgl32.Vec3{0, 0, -1}},
		{"fast diagonal", []core.Key{core.KeyW, core.KeyD, core.KeyLeftShift},
			mgl32.Vec3{float32(50 / math.Sqrt2), 0, float32(-50 / math.Sqrt2)}},
	}
	for _, tc := range cases {
		cam := NewFlyCamera()
		fc := NewFlyController(cam)
		in := core.NewInput()
		for _, k := range tc.keys {
			in.Handle(core.EventKey{Key: k, Down: true})
		}
		fc.Update(in, &cursorWindow{})
		cam.Update(1)
		if !vecNear(cam.Position(), tc.want) {
			t.Errorf("%s: position = %v, want %v", tc.name, cam.Position(), tc.want)
		}
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Axis:     mgl32.Vec3{0, 1, 0},
		Angle:    math.Pi / 2,
		Scale:    2,
	}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !vecNear(p, mgl32.Vec3{1, 2, 1}) {
		t.Errorf("transformed point = %v, want (1, 2, 1)", p)
	}

	// zero scale and axis mean identity scale and no rotation
	p = Transform{Position: mgl32.Vec3{0, 0, -5}}.Matrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1}).Vec3()
	if !vecNear(p, mgl32.Vec3{1, 1, -4}) {
		t.Errorf("translate-only point = %v", p)
	}
}

func TestNormalMatrix(t *testing.T) {
	model := mgl32.Scale3D(2, 1, 1)
	nm := NormalMatrix(model)
	n := nm.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	if !vecNear(n, mgl32.Vec3{0.5, 0, 0}) {
		t.Errorf("normal = %v, want (0.5, 0, 0)", n)
	}
	if nm[15] != 1 {
		t.Errorf("normal matrix w = %v", nm[15])
	}
	// pure rotations are their own normal matrix
	rot := mgl32.HomogRotate3DY(0.7)
	if !NormalMatrix(rot).ApproxEqualThreshold(rot, 1e-5) {
		t.Errorf("rotation normal matrix differs from rotation")
	}
}

func TestOrbitView(t *testing.T) {
	v := OrbitView(0, 10)
	eye := v.Mul4x1(mgl32.Vec4{0, 0, 10, 1}).Vec3()
	if !vecNear(eye, mgl32.Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", eye)
	}
	target := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !vecNear(target, mgl32.Vec3{0, 0, -10}) {
		t.Errorf("origin in view space = %v, want (0, 0, -10)", target)
	}
}
