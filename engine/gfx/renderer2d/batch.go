package renderer2d

import (
	"math"

	"github.com/hubastard/tofu/engine/colors"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadAttribs = []glbackend.Attrib{
	{Location: 0, Size: 2, Offset: 0},     // pos
	{Location: 1, Size: 4, Offset: 2 * 4}, // color
	{Location: 2, Size: 2, Offset: 6 * 4}, // uv
	{Location: 3, Size: 1, Offset: 8 * 4}, // texIndex
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// batch accumulates quads and hands them to submit when full, when it runs
// out of texture slots, or on flush. Slot 0 is always the white texture.
type batch struct {
	white  *glbackend.Texture
	texArr [maxTexSlots]*glbackend.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	stats  Statistics
	submit func(verts []float32, inds []uint32, textures []*glbackend.Texture)
}

func newBatch(white *glbackend.Texture, maxQuads int, submit func([]float32, []uint32, []*glbackend.Texture)) *batch {
	b := &batch{
		white:    white,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
		submit:   submit,
	}
	b.reset()
	return b
}

func (b *batch) begin() {
	b.stats = Statistics{}
	b.reset()
}

func (b *batch) texSlot(t *glbackend.Texture) float32 {
	for i := 0; i < b.texCnt; i++ {
		if b.texArr[i] == t {
			return float32(i)
		}
	}
	if b.texCnt >= maxTexSlots {
		b.flush()
	}
	b.texArr[b.texCnt] = t
	b.texCnt++
	if b.texCnt > b.stats.TextureCount {
		b.stats.TextureCount = b.texCnt
	}
	return float32(b.texCnt - 1)
}

// quad appends a quad centred on (x, y). Positive Y goes down, so the top
// edge is at y - h/2.
func (b *batch) quad(x, y, w, h float32, color colors.Color, rotationRad float32, tex *glbackend.Texture, u0, v0, u1, v1 float32) {
	if b.quadCount >= b.maxQuads {
		b.flush()
	}
	// slot after the capacity flush so the index refers to this batch
	texIndex := b.texSlot(tex)

	halfW, halfH := w*0.5, h*0.5
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(1), float32(0)
	if rotationRad != 0 {
		c, s = float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))
	}

	start := uint32(len(b.verts) / vStride)
	for _, p := range corners {
		b.verts = append(b.verts,
			p[0]*c-p[1]*s+x, p[0]*s+p[1]*c+y,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	b.inds = append(b.inds,
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
	b.quadCount++
	b.stats.QuadCount++
}

func (b *batch) flush() {
	if b.quadCount == 0 {
		return
	}
	b.submit(b.verts, b.inds, b.texArr[:b.texCnt])
	b.stats.DrawCalls++
	b.reset()
}

func (b *batch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quadCount = 0
	for i := range b.texArr {
		b.texArr[i] = nil
	}
	b.texArr[0] = b.white
	b.texCnt = 1
}
