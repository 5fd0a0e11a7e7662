package glbackend

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/hubastard/tofu/engine/assets"
)

// RenderTargetDesc describes the storage of a render texture.
type RenderTargetDesc struct {
	InternalFormat int32
	Format         uint32
	DataType       uint32
}

// Common color target formats.
var (
	TargetRGBA8   = RenderTargetDesc{InternalFormat: gl.RGBA8, Format: gl.RGBA, DataType: gl.UNSIGNED_BYTE}
	TargetRGBA16F = RenderTargetDesc{InternalFormat: gl.RGBA16F, Format: gl.RGBA, DataType: gl.FLOAT}
)

type Texture struct {
	id     uint32
	width  int
	height int
	desc   RenderTargetDesc
	render bool // storage-only; may be resized
}

// LoadTexture decodes name and uploads it.
func LoadTexture(a *assets.FS, name string) (*Texture, error) {
	img, err := a.Image(name)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(img)
}

// NewTextureFromImage uploads img (straight alpha) flipped to GL's
// bottom-left origin, with repeat wrapping, trilinear filtering and a full
// mip chain.
func NewTextureFromImage(img *image.NRGBA) (*Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture: empty image")
	}
	pixels := assets.FlipVertical(img)

	t := &Texture{width: w, height: h}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewPixelTexture uploads img (flipped like NewTextureFromImage) for
// pixel-exact sampling: clamped, nearest filtering, no mipmaps. Used for
// glyph atlases and the 2D white texture.
func NewPixelTexture(img *image.NRGBA) (*Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture: empty image")
	}
	pixels := assets.FlipVertical(img)

	t := &Texture{width: w, height: h}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewSolidTexture is a 1x1 texture of one color, used where a material has
// no map for a slot.
func NewSolidTexture(r, g, b, a uint8) (*Texture, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{r, g, b, a})
	return NewTextureFromImage(img)
}

// NewRenderTexture allocates uninitialised storage for use as a framebuffer
// attachment.
func NewRenderTexture(desc RenderTargetDesc, w, h int) *Texture {
	t := &Texture{desc: desc, render: true}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	t.SetMinMagFilters(gl.NEAREST, gl.NEAREST)
	t.allocate(w, h)
	return t
}

func (t *Texture) allocate(w, h int) {
	t.width, t.height = w, h
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, t.desc.InternalFormat, int32(w), int32(h), 0, t.desc.Format, t.desc.DataType, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) ID() uint32           { return t.id }
func (t *Texture) Size() (int, int)     { return t.width, t.height }
func (t *Texture) IsRenderTarget() bool { return t.render }

// Bind makes t current on texture unit GL_TEXTURE0+unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) SetMinMagFilters(minFilter, magFilter int32) {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
}

// Resize re-specifies the storage of a render texture. Contents are lost.
func (t *Texture) Resize(w, h int) error {
	if !t.render {
		return fmt.Errorf("texture %d: resize of an image texture", t.id)
	}
	if w == t.width && h == t.height {
		return nil
	}
	t.allocate(w, h)
	return nil
}

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
