package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an instance: scale, then rotate Angle radians about
// Axis, then translate.
type Transform struct {
	Position mgl32.Vec3
	Axis     mgl32.Vec3 // zero means no rotation
	Angle    float32
	Scale    float32 // zero means 1
}

func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	m := mgl32.Scale3D(s, s, s)
	if t.Axis.Len() > 0 {
		m = mgl32.HomogRotate3D(t.Angle, t.Axis.Normalize()).Mul4(m)
	}
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(m)
}

// NormalMatrix transforms normals for model: the inverse-transpose of its
// upper 3x3, widened back to a Mat4.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Mat3().Inv().Transpose().Mat4()
}

// OrbitView looks at the origin from a point circling it in the XZ plane.
func OrbitView(t, radius float32) mgl32.Mat4 {
	eye := mgl32.Vec3{
		float32(math.Sin(float64(t))),
		0,
		float32(math.Cos(float64(t))),
	}.Mul(radius)
	return mgl32.LookAtV(eye, mgl32.Vec3{}, worldUp)
}
