package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-8

// ComputeNormals replaces every vertex normal with the area-weighted average
// of the faces that use it.
func ComputeNormals(md *MeshData) { FillMissingNormals(md, nil) }

// FillMissingNormals computes area-weighted normals for the vertices with
// missing[i] set and leaves the others untouched. A nil missing means all.
func FillMissingNormals(md *MeshData, missing []bool) {
	want := func(i uint32) bool { return missing == nil || missing[i] }

	sums := make([]mgl32.Vec3, len(md.Vertices))
	for i := 0; i+2 < len(md.Indices); i += 3 {
		i0, i1, i2 := md.Indices[i], md.Indices[i+1], md.Indices[i+2]
		if !want(i0) && !want(i1) && !want(i2) {
			continue
		}
		p0 := md.Vertices[i0].Position
		n := md.Vertices[i1].Position.Sub(p0).Cross(md.Vertices[i2].Position.Sub(p0))
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i := range md.Vertices {
		if !want(uint32(i)) {
			continue
		}
		if sums[i].Len() < epsilon {
			md.Vertices[i].Normal = mgl32.Vec3{0, 1, 0}
			continue
		}
		md.Vertices[i].Normal = sums[i].Normalize()
	}
}

// ComputeTangents fills Tangent and Handedness for a mesh with normals and
// UVs. UV V is stored flipped (1 - v), so the V deltas are taken on the
// file's orientation to keep the bitangent pointing along +v.
func ComputeTangents(md *MeshData) {
	bitangents := make([]mgl32.Vec3, len(md.Vertices))
	for i := range md.Vertices {
		md.Vertices[i].Tangent = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(md.Indices); i += 3 {
		i0, i1, i2 := md.Indices[i], md.Indices[i+1], md.Indices[i+2]
		v0, v1, v2 := &md.Vertices[i0], &md.Vertices[i1], &md.Vertices[i2]

		q1 := v1.Position.Sub(v0.Position)
		q2 := v2.Position.Sub(v0.Position)
		s1 := v1.UV[0] - v0.UV[0]
		s2 := v2.UV[0] - v0.UV[0]
		t1 := (1 - v1.UV[1]) - (1 - v0.UV[1])
		t2 := (1 - v2.UV[1]) - (1 - v0.UV[1])

		det := s1*t2 - s2*t1
		if abs(det) < epsilon {
			continue
		}
		// mirrored UV islands flip both vectors; the sign keeps them on +u/+v
		r := float32(1)
		if det < 0 {
			r = -1
		}
		tangent := q1.Mul(t2).Sub(q2.Mul(t1)).Mul(r)
		bitangent := q2.Mul(s1).Sub(q1.Mul(s2)).Mul(r)
		if tangent.Len() < epsilon || bitangent.Len() < epsilon {
			continue
		}
		tangent = tangent.Normalize()
		bitangent = bitangent.Normalize()

		for _, idx := range [3]uint32{i0, i1, i2} {
			md.Vertices[idx].Tangent = md.Vertices[idx].Tangent.Add(tangent)
			bitangents[idx] = bitangents[idx].Add(bitangent)
		}
	}

	for i := range md.Vertices {
		v := &md.Vertices[i]
		n := v.Normal
		// Gram-Schmidt against the normal
		t := v.Tangent.Sub(n.Mul(n.Dot(v.Tangent)))
		if t.Len() < epsilon {
			t = perpendicular(n)
		} else {
			t = t.Normalize()
		}
		v.Tangent = t

		if n.Cross(t).Dot(bitangents[i]) < 0 {
			v.Handedness = -1
		} else {
			v.Handedness = 1
		}
	}
}

// perpendicular returns some unit vector orthogonal to n.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if abs(n[0]) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	t := axis.Sub(n.Mul(n.Dot(axis)))
	if t.Len() < epsilon {
		return axis
	}
	return t.Normalize()
}

func abs(f float32) float32 { return float32(math.Abs(float64(f))) }
