package geom

import "github.com/go-gl/mathgl/mgl32"

var cubeCorners = [8]struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}{
	{mgl32.Vec3{-0.5, 0.5, -0.5}, mgl32.Vec2{0, 1}},
	{mgl32.Vec3{0.5, 0.5, -0.5}, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec2{0, 0}},
	{mgl32.Vec3{0.5, -0.5, -0.5}, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{-0.5, 0.5, 0.5}, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec2{0, 1}},
	{mgl32.Vec3{-0.5, -0.5, 0.5}, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{0.5, -0.5, 0.5}, mgl32.Vec2{0, 0}},
}

var cubeIndices = [36]uint32{
	0, 1, 2, 1, 3, 2,
	0, 4, 5, 0, 5, 1,
	2, 3, 7, 2, 7, 6,
	6, 5, 4, 6, 7, 5,
	4, 0, 6, 0, 2, 6,
	1, 5, 3, 5, 7, 3,
}

// Cube returns the unit cube centred on the origin. Corners are shared
// between faces, so normals are smoothed and the UVs wrap around the sides.
func Cube() MeshData {
	md := MeshData{
		Vertices: make([]Vertex, len(cubeCorners)),
		Indices:  append([]uint32(nil), cubeIndices[:]...),
	}
	for i, c := range cubeCorners {
		md.Vertices[i] = Vertex{Position: c.pos, UV: c.uv}
	}
	ComputeNormals(&md)
	ComputeTangents(&md)
	return md
}

// FullscreenTriangle covers clip space with one oversized triangle; the
// visible part maps UV 0..1 across the screen.
func FullscreenTriangle() MeshData {
	n := mgl32.Vec3{0, 0, 1}
	t := mgl32.Vec3{1, 0, 0}
	return MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-1, -1, 0}, Normal: n, UV: mgl32.Vec2{0, 0}, Tangent: t, Handedness: 1},
			{Position: mgl32.Vec3{3, -1, 0}, Normal: n, UV: mgl32.Vec2{2, 0}, Tangent: t, Handedness: 1},
			{Position: mgl32.Vec3{-1, 3, 0}, Normal: n, UV: mgl32.Vec2{0, 2}, Tangent: t, Handedness: 1},
		},
		Indices: []uint32{0, 1, 2},
	}
}
