package text

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func goRegular(t *testing.T) (*Font, *image.NRGBA) {
	t.Helper()
	f, img, err := Rasterize(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	return f, img
}

func TestRasterizeMetrics(t *testing.T) {
	f, img := goRegular(t)
	if f.Ascent <= 0 || f.Descent >= 0 {
		t.Errorf("ascent %v, descent %v", f.Ascent, f.Descent)
	}
	if f.LineHeight() < f.Ascent-f.Descent {
		t.Errorf("line height %v below ascent+descent", f.LineHeight())
	}
	if b := img.Bounds(); b.Dx() != f.AtlasW || b.Dy() != f.AtlasH || f.AtlasW != f.AtlasH {
		t.Errorf("atlas %v, font says %dx%d", b, f.AtlasW, f.AtlasH)
	}
	if len(f.Glyphs) != lastRune-firstRune+1 {
		t.Errorf("glyphs = %d, want all printable ASCII", len(f.Glyphs))
	}
	sp := f.Glyphs[' ']
	if sp.W != 0 || sp.H != 0 || sp.Advance <= 0 {
		t.Errorf("space glyph = %+v", sp)
	}
}

func TestRasterizeDrawsCoverage(t *testing.T) {
	f, img := goRegular(t)
	g := f.Glyphs['A']
	if g.W == 0 || g.H == 0 || g.Advance <= 0 {
		t.Fatalf("glyph A = %+v", g)
	}
	for _, uv := range []float32{g.U0, g.V0, g.U1, g.V1} {
		if uv < 0 || uv > 1 {
			t.Fatalf("uv out of range: %+v", g)
		}
	}
	if g.U1 <= g.U0 || g.V1 <= g.V0 {
		t.Fatalf("empty uv rect: %+v", g)
	}

	x0 := int(g.U0 * float32(f.AtlasW))
	y0 := int(g.V0 * float32(f.AtlasH))
	var peak uint8
	for y := y0; y < y0+g.H; y++ {
		for x := x0; x < x0+g.W; x++ {
			c := img.NRGBAAt(x, y)
			if c.A > 0 && (c.R != 255 || c.G != 255 || c.B != 255) {
				t.Fatalf("texel (%d, %d) = %v, want white", x, y, c)
			}
			peak = max(peak, c.A)
		}
	}
	if peak < 200 {
		t.Errorf("glyph A peak coverage = %d", peak)
	}
	// padding between glyphs stays clear
	if c := img.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("atlas corner = %v", c)
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, _, err := Rasterize([]byte("not a font"), 16); err == nil {
		t.Error("garbage parsed as a font")
	}
	if _, _, err := Rasterize(goregular.TTF, 0); err == nil {
		t.Error("zero size accepted")
	}
}

func TestPackShelves(t *testing.T) {
	sizes := []image.Point{{10, 10}, {0, 0}, {10, 10}, {10, 10}}
	pos, side, err := packShelves(sizes, 2, 16, 64)
	if err != nil {
		t.Fatalf("packShelves: %v", err)
	}
	if side != 32 {
		t.Errorf("side = %d, want 32", side)
	}
	want := []image.Point{{2, 2}, {}, {14, 2}, {2, 14}}
	for i, p := range pos {
		if p != want[i] {
			t.Errorf("box %d at %v, want %v", i, p, want[i])
		}
	}

	if _, _, err := packShelves([]image.Point{{100, 4}}, 2, 16, 64); err == nil {
		t.Error("oversized box packed")
	}
}

func TestWalkLayout(t *testing.T) {
	f, _ := goRegular(t)
	a, b := f.Glyphs['A'], f.Glyphs['V']

	w, h := MeasureText(f, "AV\nA")
	if want := a.Advance + f.Kern('A', 'V') + b.Advance; w != want {
		t.Errorf("width = %v, want %v", w, want)
	}
	if h != 2*f.LineHeight() {
		t.Errorf("height = %v, want two lines", h)
	}

	var tops, lefts []float32
	f.Walk(10, 20, "A\nA", func(_ Glyph, left, top float32) {
		lefts = append(lefts, left)
		tops = append(tops, top)
	})
	if len(tops) != 2 {
		t.Fatalf("visited %d glyphs", len(tops))
	}
	if lefts[0] != 10+a.BearingX || tops[0] != 20+f.Ascent-a.BearingY {
		t.Errorf("first glyph at (%v, %v)", lefts[0], tops[0])
	}
	if tops[1]-tops[0] != f.LineHeight() || lefts[1] != lefts[0] {
		t.Errorf("second line at (%v, %v)", lefts[1], tops[1])
	}
}

func TestWalkMissingRuneAdvancesLikeSpace(t *testing.T) {
	f, _ := goRegular(t)
	w, _ := MeasureText(f, "é")
	if w != f.Glyphs[' '].Advance {
		t.Errorf("width = %v, want space advance %v", w, f.Glyphs[' '].Advance)
	}
}
