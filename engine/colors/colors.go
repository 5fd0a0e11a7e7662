package colors

import "github.com/go-gl/mathgl/mgl32"

type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Gray  = Color{0.5, 0.5, 0.5, 1}

	// Yellow marks overlay headings.
	Yellow = Color{1, 0.85, 0.2, 1}

	// Tofu is the cubes demo background.
	Tofu = Color{1, 0.37, 0.64, 1}.Scale(0.2)
)

// Scale multiplies the RGB channels, leaving alpha alone.
func (c Color) Scale(k float32) Color {
	return Color{c[0] * k, c[1] * k, c[2] * k, c[3]}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

func (c Color) RGB() mgl32.Vec3 { return mgl32.Vec3{c[0], c[1], c[2]} }

// RGBA8 quantizes c to bytes, clamping each channel to [0, 1].
func (c Color) RGBA8() (r, g, b, a uint8) {
	q := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return q(c[0]), q(c[1]), q(c[2]), q(c[3])
}
