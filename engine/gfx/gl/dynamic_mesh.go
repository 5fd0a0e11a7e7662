package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Attrib is one float vertex attribute of a DynamicMesh.
type Attrib struct {
	Location uint32
	Size     int32
	Offset   int // bytes
}

// DynamicMesh is a vertex/index buffer pair sized once and refilled every
// frame, for batched geometry.
type DynamicMesh struct {
	vao, vbo, ebo uint32
	maxFloats     int
	maxIndices    int
	indexCount    int32
}

func NewDynamicMesh(attribs []Attrib, stride int32, maxFloats, maxIndices int) (*DynamicMesh, error) {
	if maxFloats < 1 || maxIndices < 1 {
		return nil, fmt.Errorf("dynamic mesh: capacity %d floats / %d indices", maxFloats, maxIndices)
	}
	m := &DynamicMesh{maxFloats: maxFloats, maxIndices: maxIndices}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxFloats*4, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, maxIndices*4, nil, gl.DYNAMIC_DRAW)

	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, gl.PtrOffset(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// Update replaces the buffer contents from the start.
func (m *DynamicMesh) Update(verts []float32, indices []uint32) error {
	if len(verts) > m.maxFloats || len(indices) > m.maxIndices {
		return fmt.Errorf("dynamic mesh: %d floats / %d indices exceed capacity %d / %d",
			len(verts), len(indices), m.maxFloats, m.maxIndices)
	}
	m.indexCount = int32(len(indices))
	if len(verts) == 0 || len(indices) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	gl.BindVertexArray(0)
	return nil
}

func (m *DynamicMesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *DynamicMesh) Delete() {
	if m.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
