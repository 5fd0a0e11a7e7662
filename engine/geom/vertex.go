// Package geom holds CPU-side mesh data: the vertex layout shared by every
// GPU mesh, tangent-space generation and the few built-in primitives.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex: pos3 + normal3 + uv2 + tangent3 + handedness1 => 12 floats
type Vertex struct {
	Position   mgl32.Vec3
	Normal     mgl32.Vec3
	UV         mgl32.Vec2
	Tangent    mgl32.Vec3
	Handedness float32 // sign of the bitangent relative to normal x tangent
}

const (
	FloatsPerVertex = 12
	VertexStride    = FloatsPerVertex * 4 // bytes

	// byte offsets inside one interleaved vertex
	OffsetPosition   = 0
	OffsetNormal     = 3 * 4
	OffsetUV         = 6 * 4
	OffsetTangent    = 8 * 4
	OffsetHandedness = 11 * 4
)

// MeshData is an indexed triangle list.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Validate reports whether the index buffer describes whole triangles that
// only reference existing vertices.
func (md *MeshData) Validate() error {
	if len(md.Indices) == 0 {
		return fmt.Errorf("mesh has no indices")
	}
	if len(md.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(md.Indices))
	}
	n := uint32(len(md.Vertices))
	for i, idx := range md.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Interleave packs the vertices in the GPU layout.
func (md *MeshData) Interleave() []float32 {
	out := make([]float32, 0, len(md.Vertices)*FloatsPerVertex)
	for _, v := range md.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
			v.Tangent[0], v.Tangent[1], v.Tangent[2],
			v.Handedness,
		)
	}
	return out
}
