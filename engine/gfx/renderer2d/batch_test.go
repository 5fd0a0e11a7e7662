package renderer2d

import (
	"math"
	"testing"

	"github.com/hubastard/tofu/engine/colors"
	glbackend "github.com/hubastard/tofu/engine/gfx/gl"
)

type submission struct {
	quads    int
	textures []*glbackend.Texture
	verts    []float32
	inds     []uint32
}

func recordingBatch(maxQuads int) (*batch, *[]submission) {
	var subs []submission
	b := newBatch(&glbackend.Texture{}, maxQuads, func(v []float32, i []uint32, tex []*glbackend.Texture) {
		subs = append(subs, submission{
			quads:    len(i) / indsPerQuad,
			textures: append([]*glbackend.Texture(nil), tex...),
			verts:    append([]float32(nil), v...),
			inds:     append([]uint32(nil), i...),
		})
	})
	b.begin()
	return b, &subs
}

func TestQuadVertices(t *testing.T) {
	b, subs := recordingBatch(4)
	b.quad(10, 20, 4, 2, colors.White, 0, b.white, 0.25, 0.5, 0.75, 1)
	b.flush()

	if len(*subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(*subs))
	}
	v := (*subs)[0].verts
	want := [4][4]float32{
		{8, 19, 0.25, 0.5},
		{12, 19, 0.75, 0.5},
		{8, 21, 0.25, 1},
		{12, 21, 0.75, 1},
	}
	for i, w := range want {
		got := v[i*vStride : (i+1)*vStride]
		if got[0] != w[0] || got[1] != w[1] || got[6] != w[2] || got[7] != w[3] {
			t.Errorf("corner %d = %v, want pos (%v, %v) uv (%v, %v)", i, got, w[0], w[1], w[2], w[3])
		}
		if got[8] != 0 {
			t.Errorf("corner %d tex index = %v, want white slot 0", i, got[8])
		}
	}
	if got := (*subs)[0].inds; len(got) != 6 || got[0] != 0 || got[1] != 2 || got[5] != 3 {
		t.Errorf("indices = %v", got)
	}
}

func TestQuadRotation(t *testing.T) {
	b, subs := recordingBatch(1)
	b.quad(10, 20, 4, 2, colors.White, math.Pi/2, b.white, 0, 0, 1, 1)
	b.flush()

	v := (*subs)[0].verts
	// top-left corner (-2, -1) rotated a quarter turn lands at (1, -2)
	if math.Abs(float64(v[0]-11)) > 1e-5 || math.Abs(float64(v[1]-18)) > 1e-5 {
		t.Errorf("rotated corner = (%v, %v), want (11, 18)", v[0], v[1])
	}
}

func TestBatchSplitsAtCapacity(t *testing.T) {
	b, subs := recordingBatch(2)
	for i := 0; i < 5; i++ {
		b.quad(0, 0, 1, 1, colors.White, 0, b.white, 0, 0, 1, 1)
	}
	b.flush()

	got := []int{}
	for _, s := range *subs {
		got = append(got, s.quads)
	}
	if len(got) != 3 || got[0] != 2 || got[1] != 2 || got[2] != 1 {
		t.Errorf("quads per draw = %v, want [2 2 1]", got)
	}
	st := b.stats
	if st.DrawCalls != 3 || st.QuadCount != 5 {
		t.Errorf("stats = %+v", st)
	}
	if st.TotalVertexCount() != 20 || st.TotalIndexCount() != 30 {
		t.Errorf("totals = %d vertices, %d indices", st.TotalVertexCount(), st.TotalIndexCount())
	}
	// indices restart at zero in every draw
	if (*subs)[1].inds[0] != 0 {
		t.Errorf("second draw starts at index %d", (*subs)[1].inds[0])
	}
}

func TestBatchFlushesWhenSlotsRunOut(t *testing.T) {
	b, subs := recordingBatch(100)
	textures := make([]*glbackend.Texture, maxTexSlots)
	for i := range textures {
		textures[i] = &glbackend.Texture{}
		b.quad(0, 0, 1, 1, colors.White, 0, textures[i], 0, 0, 1, 1)
	}
	b.flush()

	if len(*subs) != 2 {
		t.Fatalf("draws = %d, want 2", len(*subs))
	}
	first := (*subs)[0]
	if len(first.textures) != maxTexSlots || first.textures[0] != b.white {
		t.Errorf("first draw binds %d textures, slot 0 white = %v", len(first.textures), first.textures[0] == b.white)
	}
	second := (*subs)[1]
	if len(second.textures) != 2 || second.textures[1] != textures[maxTexSlots-1] {
		t.Errorf("second draw textures = %d", len(second.textures))
	}
	if idx := second.verts[8]; idx != 1 {
		t.Errorf("overflowing texture slot = %v, want 1", idx)
	}
	if b.stats.TextureCount != maxTexSlots {
		t.Errorf("texture count = %d", b.stats.TextureCount)
	}
}

func TestBatchReusesSlots(t *testing.T) {
	b, subs := recordingBatch(10)
	tex := &glbackend.Texture{}
	b.quad(0, 0, 1, 1, colors.White, 0, tex, 0, 0, 1, 1)
	b.quad(0, 0, 1, 1, colors.White, 0, b.white, 0, 0, 1, 1)
	b.quad(0, 0, 1, 1, colors.White, 0, tex, 0, 0, 1, 1)
	b.flush()
	b.flush()

	if len(*subs) != 1 || len((*subs)[0].textures) != 2 {
		t.Fatalf("submissions = %+v", *subs)
	}
	if b.stats.DrawCalls != 1 {
		t.Errorf("empty flush counted as a draw")
	}
	b.begin()
	if b.stats != (Statistics{}) {
		t.Errorf("begin kept stats %+v", b.stats)
	}
}
