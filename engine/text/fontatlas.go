// Package text rasterizes TrueType/OpenType fonts into a glyph atlas and
// lays out strings over the 2D renderer.
package text

import (
	"errors"
	"fmt"
	"image"
	"path"

	"github.com/hubastard/tofu/engine/assets"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked into the atlas.
const (
	firstRune = ' '
	lastRune  = '~'
)

const (
	atlasPadding = 2
	atlasStart   = 128
	atlasMax     = 4096
)

type Glyph struct {
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // baseline to glyph top in pixels
	W, H     int     // bitmap size
	U0, V0   float32 // atlas UVs, v from the top
	U1, V1   float32
}

type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32 // Descent is negative
	Glyphs                   map[rune]Glyph
	Texture                  *glbackend.Texture
	AtlasW, AtlasH           int

	kerning map[[2]rune]float32
}

// LineHeight is the baseline-to-baseline distance.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Kern is the extra advance between a and b.
func (f *Font) Kern(a, b rune) float32 { return f.kerning[[2]rune{a, b}] }

// LoadGoRegular builds the Go Regular font at sizePx and uploads its atlas.
func LoadGoRegular(sizePx float32) (*Font, error) {
	return Load(goregular.TTF, sizePx)
}

// LoadFile reads fonts/<name> from the asset tree.
func LoadFile(a *assets.FS, name string, sizePx float32) (*Font, error) {
	b, err := a.ReadFile(path.Join("fonts", name))
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Load(b, sizePx)
}

// Load rasterizes ttf and uploads the atlas as a texture.
func Load(ttf []byte, sizePx float32) (*Font, error) {
	f, img, err := Rasterize(ttf, sizePx)
	if err != nil {
		return nil, err
	}
	if f.Texture, err = glbackend.NewPixelTexture(img); err != nil {
		return nil, fmt.Errorf("font atlas: %w", err)
	}
	return f, nil
}

func (f *Font) Delete() {
	if f.Texture != nil {
		f.Texture.Delete()
		f.Texture = nil
	}
}

type measured struct {
	r    rune
	w, h int
	adv  float32
	minX int
	minY int
}

// Rasterize lays the glyphs out in a square atlas of white texels whose
// alpha is the glyph coverage. The returned Font has no texture yet.
func Rasterize(ttf []byte, sizePx float32) (*Font, *image.NRGBA, error) {
	if sizePx <= 0 {
		return nil, nil, fmt.Errorf("font size %v must be positive", sizePx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent
	if lineGap < 0 {
		lineGap = 0
	}

	var glyphs []measured
	for r := rune(firstRune); r <= lastRune; r++ {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
		glyphs = append(glyphs, measured{
			r: r, w: b.Max.X.Ceil() - x0, h: b.Max.Y.Ceil() - y0,
			adv: float32(adv.Round()), minX: x0, minY: y0,
		})
	}
	if len(glyphs) == 0 {
		return nil, nil, errors.New("font has no printable ASCII glyphs")
	}

	sizes := make([]image.Point, len(glyphs))
	for i, g := range glyphs {
		sizes[i] = image.Pt(g.w, g.h)
	}
	pos, side, err := packShelves(sizes, atlasPadding, atlasStart, atlasMax)
	if err != nil {
		return nil, nil, err
	}

	coverage := image.NewAlpha(image.Rect(0, 0, side, side))
	drawer := &font.Drawer{Dst: coverage, Src: image.Opaque, Face: face}
	f := &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs: make(map[rune]Glyph, len(glyphs)),
		AtlasW: side, AtlasH: side,
	}
	for i, g := range glyphs {
		out := Glyph{
			Advance:  g.adv,
			BearingX: float32(g.minX),
			BearingY: float32(-g.minY),
			W:        g.w,
			H:        g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[i]
			drawer.Dot = fixed.P(p.X-g.minX, p.Y-g.minY)
			drawer.DrawString(string(g.r))
			out.U0, out.V0 = float32(p.X)/float32(side), float32(p.Y)/float32(side)
			out.U1, out.V1 = float32(p.X+g.w)/float32(side), float32(p.Y+g.h)/float32(side)
		}
		f.Glyphs[g.r] = out
	}

	f.kerning = make(map[[2]rune]float32)
	for _, a := range glyphs {
		for _, b := range glyphs {
			if k := face.Kern(a.r, b.r); k != 0 {
				f.kerning[[2]rune{a.r, b.r}] = float32(k) / 64
			}
		}
	}

	img := image.NewNRGBA(coverage.Rect)
	for i, a := range coverage.Pix {
		copy(img.Pix[i*4:], []byte{255, 255, 255, a})
	}
	return f, img, nil
}

// packShelves places boxes left to right in rows, doubling the square
// atlas side from start until everything fits within limit. Empty boxes get
// the zero point.
func packShelves(sizes []image.Point, padding, start, limit int) ([]image.Point, int, error) {
	for side := start; side <= limit; side *= 2 {
		if pos, ok := tryShelves(sizes, padding, side); ok {
			return pos, side, nil
		}
	}
	return nil, 0, fmt.Errorf("font atlas larger than %dx%d", limit, limit)
}

func tryShelves(sizes []image.Point, padding, side int) ([]image.Point, bool) {
	pos := make([]image.Point, len(sizes))
	x, y, rowH := padding, padding, 0
	for i, s := range sizes {
		if s.X == 0 || s.Y == 0 {
			continue
		}
		if s.X+2*padding > side {
			return nil, false
		}
		if x+s.X+padding > side {
			x = padding
			y += rowH + padding
			rowH = 0
		}
		if y+s.Y+padding > side {
			return nil, false
		}
		pos[i] = image.Pt(x, y)
		x += s.X + padding
		if s.Y > rowH {
			rowH = s.Y
		}
	}
	return pos, true
}
