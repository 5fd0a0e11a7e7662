package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ZNear            = 0.01
	ZFar             = 100.0
	MovementSpeed    = 10.0
	MouseSensitivity = 0.1
	MaxPitch         = 89.99

	rotationSmoothing = 15.0
	velocitySmoothing = 10.0
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a yaw/pitch perspective camera. Look and movement input set
// targets; Update eases toward them so motion stays smooth at any frame rate.
type FlyCamera struct {
	position       mgl32.Vec3
	projection     mgl32.Mat4
	view           mgl32.Mat4
	viewProjection mgl32.Mat4

	velocity mgl32.Vec3
	movement mgl32.Vec3 // camera space: x right, y up, z forward

	forward, right, up mgl32.Vec3

	yaw, pitch             float32 // degrees
	targetYaw, targetPitch float32
}

func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		projection:     mgl32.Ident4(),
		view:           mgl32.Ident4(),
		viewProjection: mgl32.Ident4(),
		forward:        mgl32.Vec3{0, 0, -1},
		right:          mgl32.Vec3{1, 0, 0},
		up:             mgl32.Vec3{0, 1, 0},
		yaw:            -90,
		targetYaw:      -90,
	}
}

// SetPerspective rebuilds the projection; fovy is in degrees.
func (c *FlyCamera) SetPerspective(fovy, aspect float32) {
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovy), aspect, ZNear, ZFar)
	c.viewProjection = c.projection.Mul4(c.view)
}

func (c *FlyCamera) SetPosition(p mgl32.Vec3) { c.position = p }
func (c *FlyCamera) Translate(d mgl32.Vec3)   { c.position = c.position.Add(d) }

// AddMovement accumulates desired movement for the next Update.
func (c *FlyCamera) AddMovement(v mgl32.Vec3) { c.movement = c.movement.Add(v) }

// AddLook turns the target orientation by a cursor delta in pixels.
func (c *FlyCamera) AddLook(dx, dy float32) {
	c.targetYaw += dx * MouseSensitivity
	c.targetPitch -= dy * MouseSensitivity
	c.targetPitch = mgl32.Clamp(c.targetPitch, -MaxPitch, MaxPitch)
}

// Update advances the camera by dt seconds.
func (c *FlyCamera) Update(dt float32) {
	k := smoothing(rotationSmoothing, dt)
	c.pitch += (c.targetPitch - c.pitch) * k
	c.yaw += (c.targetYaw - c.yaw) * k
	c.updateBasis()

	c.velocity = c.velocity.Add(c.movement.Sub(c.velocity).Mul(smoothing(velocitySmoothing, dt)))
	c.movement = mgl32.Vec3{}

	v := c.velocity.Mul(dt * MovementSpeed)
	c.Translate(c.right.Mul(v[0]).Add(c.up.Mul(v[1])).Add(c.forward.Mul(v[2])))

	c.view = mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
	c.viewProjection = c.projection.Mul4(c.view)
}

// smoothing is the per-frame easing factor for a rate, capped so a long
// frame lands on the target instead of overshooting it.
func smoothing(rate, dt float32) float32 {
	k := rate * dt
	if k > 1 {
		return 1
	}
	if k < 0 {
		return 0
	}
	return k
}

func (c *FlyCamera) updateBasis() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

func (c *FlyCamera) Position() mgl32.Vec3       { return c.position }
func (c *FlyCamera) Forward() mgl32.Vec3        { return c.forward }
func (c *FlyCamera) Right() mgl32.Vec3          { return c.right }
func (c *FlyCamera) Up() mgl32.Vec3             { return c.up }
func (c *FlyCamera) Yaw() float32               { return c.yaw }
func (c *FlyCamera) Pitch() float32             { return c.pitch }
func (c *FlyCamera) View() mgl32.Mat4           { return c.view }
func (c *FlyCamera) Projection() mgl32.Mat4     { return c.projection }
func (c *FlyCamera) ViewProjection() mgl32.Mat4 { return c.viewProjection }
