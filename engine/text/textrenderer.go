package text

import (
	"github.com/hubastard/tofu/engine/colors"
	"github.com/hubastard/tofu/engine/gfx/renderer2d"
)

// Walk lays s out with its top-left corner at (x, y), positive Y down, and
// calls fn (when non-nil) with the top-left corner of every visible glyph.
// Runes missing from the atlas advance like a space. It returns the size of
// the laid out block.
func (f *Font) Walk(x, y float32, s string, fn func(g Glyph, left, top float32)) (width, height float32) {
	penX := x
	baseY := y + f.Ascent
	lineH := f.LineHeight()
	height = lineH
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			width = max(width, penX-x)
			penX = x
			baseY += lineH
			height += lineH
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			penX += f.Glyphs[' '].Advance
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += f.Kern(prev, r)
		}
		if fn != nil && g.W > 0 && g.H > 0 {
			fn(g, penX+g.BearingX, baseY-g.BearingY)
		}
		penX += g.Advance
		prev = r
	}
	return max(width, penX-x), height
}

// MeasureText is the size of s as drawn by DrawText.
func MeasureText(f *Font, s string) (width, height float32) {
	return f.Walk(0, 0, s, nil)
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(r2d *renderer2d.Renderer2D, f *Font, x, y float32, s string, color colors.Color) {
	f.Walk(x, y, s, func(g Glyph, left, top float32) {
		w, h := float32(g.W), float32(g.H)
		r2d.DrawTexturedQuadUV(left+w*0.5, top+h*0.5, w, h, f.Texture, color, 0, g.U0, g.V0, g.U1, g.V1)
	})
}
