package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// MaxRenderTargets is the minimum GL_MAX_DRAW_BUFFERS every GL 4 driver
// provides.
const MaxRenderTargets = 8

var depthStencilDesc = RenderTargetDesc{
	InternalFormat: gl.DEPTH24_STENCIL8,
	Format:         gl.DEPTH_STENCIL,
	DataType:       gl.UNSIGNED_INT_24_8,
}

// Framebuffer is an off-screen target with several color attachments and a
// depth-stencil texture, e.g. a geometry buffer.
type Framebuffer struct {
	fbo           uint32
	targets       []*Texture
	depthStencil  *Texture
	width, height int
}

func validateTargets(descs []RenderTargetDesc, w, h int) error {
	if len(descs) == 0 {
		return fmt.Errorf("framebuffer: no render targets")
	}
	if len(descs) > MaxRenderTargets {
		return fmt.Errorf("framebuffer: %d render targets, at most %d", len(descs), MaxRenderTargets)
	}
	if w < 1 || h < 1 {
		return fmt.Errorf("framebuffer: invalid size %dx%d", w, h)
	}
	return nil
}

// NewFramebuffer creates one color texture per description on
// COLOR_ATTACHMENTi, enables all of them as draw buffers and checks
// completeness.
func NewFramebuffer(w, h int, descs []RenderTargetDesc) (*Framebuffer, error) {
	if err := validateTargets(descs, w, h); err != nil {
		return nil, err
	}
	fb := &Framebuffer{width: w, height: h}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	attachments := make([]uint32, len(descs))
	for i, desc := range descs {
		t := NewRenderTexture(desc, w, h)
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachments[i], gl.TEXTURE_2D, t.ID(), 0)
		fb.targets = append(fb.targets, t)
	}

	fb.depthStencil = NewRenderTexture(depthStencilDesc, w, h)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, fb.depthStencil.ID(), 0)

	gl.DrawBuffers(int32(len(attachments)), &attachments[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Delete()
		return nil, fmt.Errorf("framebuffer incomplete: %s (0x%x)", framebufferStatusName(status), status)
	}
	return fb, nil
}

func (fb *Framebuffer) BindAsTarget()   { gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo) }
func (fb *Framebuffer) UnbindAsTarget() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

// BindAsSource binds render target i to texture unit i.
func (fb *Framebuffer) BindAsSource() {
	for i, t := range fb.targets {
		t.Bind(uint32(i))
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// Resize reallocates every attachment. Contents are lost.
func (fb *Framebuffer) Resize(w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("framebuffer: invalid size %dx%d", w, h)
	}
	for _, t := range fb.targets {
		if err := t.Resize(w, h); err != nil {
			return err
		}
	}
	if err := fb.depthStencil.Resize(w, h); err != nil {
		return err
	}
	fb.width, fb.height = w, h
	return nil
}

func (fb *Framebuffer) Size() (int, int) { return fb.width, fb.height }

// Target returns color attachment i.
func (fb *Framebuffer) Target(i int) *Texture { return fb.targets[i] }

func (fb *Framebuffer) Delete() {
	for _, t := range fb.targets {
		t.Delete()
	}
	fb.targets = nil
	if fb.depthStencil != nil {
		fb.depthStencil.Delete()
		fb.depthStencil = nil
	}
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
}
