package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/hubastard/tofu/engine/geom"
)

// TextureBinding pairs a texture with the sampler uniform that reads it.
type TextureBinding struct {
	Uniform string
	Texture *Texture
}

type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	Textures      []TextureBinding
}

// vertex attribute locations shared by every mesh shader
var meshAttribs = []struct {
	location uint32
	size     int32
	offset   int
}{
	{0, 3, geom.OffsetPosition},
	{1, 3, geom.OffsetNormal},
	{2, 2, geom.OffsetUV},
	{3, 3, geom.OffsetTangent},
	{4, 1, geom.OffsetHandedness},
}

func NewMesh(md geom.MeshData, textures []TextureBinding) (*Mesh, error) {
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	verts := md.Interleave()
	m := &Mesh{indexCount: int32(len(md.Indices)), Textures: textures}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(md.Indices)*4, gl.Ptr(md.Indices), gl.STATIC_DRAW)

	for _, a := range meshAttribs {
		gl.EnableVertexAttribArray(a.location)
		gl.VertexAttribPointer(a.location, a.size, gl.FLOAT, false, geom.VertexStride, gl.PtrOffset(a.offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// Draw binds texture i to unit i, points its sampler at that unit and
// issues one indexed draw.
func (m *Mesh) Draw(s *Shader) {
	for i, tb := range m.Textures {
		s.SetInt(tb.Uniform, int32(i))
		tb.Texture.Bind(uint32(i))
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.ActiveTexture(gl.TEXTURE0)
}

func (m *Mesh) IndexCount() int { return int(m.indexCount) }

// Delete releases buffers; textures belong to whoever created them.
func (m *Mesh) Delete() {
	if m.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
