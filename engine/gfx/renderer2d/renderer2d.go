// Package renderer2d draws batched, screen-space quads: solid, textured or
// sub-rects of an atlas. It backs the debug overlay's text and panels.
package renderer2d

import (
	"fmt"
	"image"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/colors"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
)

const defaultMaxQuads = 10000

type Renderer2D struct {
	shader   *glbackend.Shader
	mesh     *glbackend.DynamicMesh
	white    *glbackend.Texture // 1x1 white (slot 0)
	batch    *batch
	vp       mgl32.Mat4
	texNames [maxTexSlots]string
}

// New compiles renderer2d.vs/.fs and allocates a buffer for maxQuads quads
// (10000 when maxQuads <= 0).
func New(a *assets.FS, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = defaultMaxQuads
	}
	shader, err := glbackend.LoadShader(a, "renderer2d.vs", "renderer2d.fs")
	if err != nil {
		return nil, fmt.Errorf("renderer2d: %w", err)
	}
	rd := &Renderer2D{shader: shader}

	px := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(px.Pix, []byte{255, 255, 255, 255})
	if rd.white, err = glbackend.NewPixelTexture(px); err != nil {
		rd.Delete()
		return nil, fmt.Errorf("renderer2d: %w", err)
	}

	rd.mesh, err = glbackend.NewDynamicMesh(quadAttribs, vStride*4, maxQuads*vertsPerQuad*vStride, maxQuads*indsPerQuad)
	if err != nil {
		rd.Delete()
		return nil, fmt.Errorf("renderer2d: %w", err)
	}

	for i := range rd.texNames {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.batch = newBatch(rd.white, maxQuads, rd.draw)
	return rd, nil
}

// BeginScene starts a frame drawn with the view-projection vp.
func (rd *Renderer2D) BeginScene(vp mgl32.Mat4) {
	rd.vp = vp
	rd.batch.begin()
}

func (rd *Renderer2D) EndScene() { rd.batch.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.batch.stats }

// DrawQuad draws a solid color quad centred on (x, y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.batch.quad(x, y, w, h, color, rotationRad, rd.white, 0, 0, 1, 1)
}

// DrawTexturedQuad draws all of tex, tinted.
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex *glbackend.Texture, tint colors.Color, rotationRad float32) {
	rd.batch.quad(x, y, w, h, tint, rotationRad, tex, 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws the sub-rect (u0,v0)-(u1,v1) of tex, with v
// measured from the top of the image.
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex *glbackend.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.batch.quad(x, y, w, h, tint, rotationRad, tex, u0, v0, u1, v1)
}

func (rd *Renderer2D) draw(verts []float32, inds []uint32, textures []*glbackend.Texture) {
	if err := rd.mesh.Update(verts, inds); err != nil {
		panic(err)
	}
	rd.shader.Use()
	rd.shader.SetMat4("uVP", rd.vp)
	for i, t := range textures {
		rd.shader.SetInt(rd.texNames[i], int32(i))
		t.Bind(uint32(i))
	}
	rd.mesh.Draw()
}

func (rd *Renderer2D) Delete() {
	if rd.mesh != nil {
		rd.mesh.Delete()
		rd.mesh = nil
	}
	if rd.white != nil {
		rd.white.Delete()
		rd.white = nil
	}
	if rd.shader != nil {
		rd.shader.Delete()
		rd.shader = nil
	}
}
