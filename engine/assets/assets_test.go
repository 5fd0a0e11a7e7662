package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
)

func TestShaderFallsBackToBuiltin(t *testing.T) {
	a := New(fstest.MapFS{
		"shaders/basic.vs": {Data: []byte("#version 460 core\n// override\n")},
	})

	src, err := a.Shader("basic.vs")
	if err != nil {
		t.Fatalf("Shader(basic.vs): %v", err)
	}
	if !strings.Contains(src, "override") {
		t.Errorf("disk shader did not take precedence")
	}

	src, err = a.Shader("copy.fs")
	if err != nil {
		t.Fatalf("Shader(copy.fs): %v", err)
	}
	if !strings.Contains(src, "uAlbedoRoughnessTexture") {
		t.Errorf("built-in copy.fs not served")
	}
}

func TestShaderMissing(t *testing.T) {
	_, err := New(nil).Shader("nope.vs")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestShaderEmpty(t *testing.T) {
	a := New(fstest.MapFS{"shaders/empty.fs": {Data: nil}})
	if _, err := a.Shader("empty.fs"); err == nil {
		t.Fatal("empty shader accepted")
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestImageDecodesToNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	src.Set(1, 2, color.NRGBA{0, 0, 255, 255})

	a := New(fstest.MapFS{"images/t.png": {Data: encodePNG(t, src)}})
	img, err := a.Image("images/t.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.Stride != 8 {
		t.Errorf("stride = %d, want tightly packed 8", img.Stride)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}

	flipped := FlipVertical(img)
	if got := flipped.NRGBAAt(0, 2); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("flipped (0,2) = %v, want red", got)
	}
	if got := flipped.NRGBAAt(1, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("flipped (1,0) = %v, want blue", got)
	}
}

func TestImageKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 128})
	src.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 0})

	a := New(fstest.MapFS{"images/alpha.png": {Data: encodePNG(t, src)}})
	img, err := a.Image("images/alpha.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.Pix[0:4]; !bytes.Equal(got, []byte{255, 0, 0, 128}) {
		t.Errorf("half transparent texel = %v, want [255 0 0 128]", got)
	}
	if got := img.Pix[4:8]; !bytes.Equal(got, []byte{0, 255, 0, 0}) {
		t.Errorf("transparent texel lost its color: %v", got)
	}
}

func TestImageConvertsOtherModels(t *testing.T) {
	// a paletted GIF goes through the conversion path rather than pass-through
	pal := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.NRGBA{10, 20, 30, 255}})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatal(err)
	}
	a := New(fstest.MapFS{"images/p.gif": {Data: buf.Bytes()}})
	img, err := a.Image("images/p.gif")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestImageRejectsGarbage(t *testing.T) {
	a := New(fstest.MapFS{"images/bad.png": {Data: []byte("not an image")}})
	if _, err := a.Image("images/bad.png"); err == nil {
		t.Fatal("garbage decoded")
	}
}

const cubeOBJ = `# two faces of a box
mtllib box.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 -1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
vn 0 -1 0
o Box
usemtl front
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl bottom
f -5/1/2 -1/2/2 -4/3/2
`

const boxMTL = `newmtl front
Kd 0.5 0.25 1
map_Kd textures/front.png
map_Bump -bm 0.5 textures/front_n.png
map_Ns textures/front_r.png
map_Ka textures/front_m.png

newmtl bottom
Ns 10
d 0.5
`

func TestParseOBJGroupsAndDedup(t *testing.T) {
	groups, libs, err := ParseOBJ(strings.NewReader(cubeOBJ), "box.obj")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(libs) != 1 || libs[0] != "box.mtl" {
		t.Errorf("libs = %v", libs)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (split by usemtl)", len(groups))
	}

	front := groups[0]
	if front.Name != "Box" || front.Material != "front" {
		t.Errorf("front group = %q/%q", front.Name, front.Material)
	}
	// quad fan-triangulated over 4 shared vertices
	if len(front.Mesh.Vertices) != 4 || len(front.Mesh.Indices) != 6 {
		t.Errorf("front mesh = %d verts, %d indices", len(front.Mesh.Vertices), len(front.Mesh.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range front.Mesh.Indices {
		if idx != want[i] {
			t.Errorf("front index %d = %d, want %d", i, idx, want[i])
		}
	}
	// V is flipped on load
	if uv := front.Mesh.Vertices[2].UV; uv != (mgl32.Vec2{1, 0}) {
		t.Errorf("vertex 2 uv = %v, want (1, 0)", uv)
	}
	if tg := front.Mesh.Vertices[0].Tangent; tg.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-5 {
		t.Errorf("front tangent = %v, want +X", tg)
	}

	bottom := groups[1]
	if bottom.Name != "Box" || bottom.Material != "bottom" {
		t.Errorf("bottom group = %q/%q", bottom.Name, bottom.Material)
	}
	// negative indices: -5 is v1, -1 is v5, -4 is v2
	got := []mgl32.Vec3{
		bottom.Mesh.Vertices[0].Position,
		bottom.Mesh.Vertices[1].Position,
		bottom.Mesh.Vertices[2].Position,
	}
	wantPos := []mgl32.Vec3{{0, 0, 0}, {0, 0, -1}, {1, 0, 0}}
	for i := range wantPos {
		if got[i] != wantPos[i] {
			t.Errorf("bottom vertex %d = %v, want %v", i, got[i], wantPos[i])
		}
	}
}

func TestParseOBJComputesMissingNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	groups, _, err := ParseOBJ(strings.NewReader(src), "tri.obj")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	for i, v := range groups[0].Mesh.Vertices {
		if v.Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}
}

func TestParseOBJKeepsAuthoredNormals(t *testing.T) {
	// one corner lacks vn; the authored (tilted) normals must survive
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 1 0\nf 1//1 2//1 3\n"
	groups, _, err := ParseOBJ(strings.NewReader(src), "mixed.obj")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	vs := groups[0].Mesh.Vertices
	if vs[0].Normal != (mgl32.Vec3{0, 1, 0}) || vs[1].Normal != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("authored normals replaced: %v %v", vs[0].Normal, vs[1].Normal)
	}
	if vs[2].Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("missing normal = %v, want face normal (0, 0, 1)", vs[2].Normal)
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := map[string]string{
		"bad number":    "v 0 x 0\n",
		"short face":    "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"out of range":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"zero index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"no position":   "v 0 0 0\nf /1 /1 /1\n",
		"no faces":      "v 0 0 0\n",
		"empty usemtl":  "usemtl\n",
		"texcoord oob":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n",
		"too many part": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n",
	}
	for name, src := range cases {
		if _, _, err := ParseOBJ(strings.NewReader(src), "bad.obj"); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestParseOBJErrorNamesLine(t *testing.T) {
	_, _, err := ParseOBJ(strings.NewReader("v 0 0 0\n\nv 1 nope 0\n"), "m.obj")
	if err == nil || !strings.Contains(err.Error(), "m.obj:3") {
		t.Fatalf("err = %v, want location m.obj:3", err)
	}
}

func TestParseMTL(t *testing.T) {
	mats, err := ParseMTL(strings.NewReader(boxMTL), "box.mtl")
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	front := mats["front"]
	if front == nil {
		t.Fatal("front material missing")
	}
	if front.Diffuse != [3]float32{0.5, 0.25, 1} {
		t.Errorf("Kd = %v", front.Diffuse)
	}
	if front.DiffuseMap != "textures/front.png" || front.NormalMap != "textures/front_n.png" ||
		front.RoughnessMap != "textures/front_r.png" || front.MetallicMap != "textures/front_m.png" {
		t.Errorf("maps = %+v", front)
	}
	bottom := mats["bottom"]
	if bottom.Shininess != 10 || bottom.Dissolve != 0.5 || bottom.DiffuseMap != "" {
		t.Errorf("bottom = %+v", bottom)
	}
	if bottom.Diffuse != [3]float32{1, 1, 1} {
		t.Errorf("default Kd = %v", bottom.Diffuse)
	}
}

func TestParseMTLErrors(t *testing.T) {
	for name, src := range map[string]string{
		"before newmtl": "Kd 1 1 1\n",
		"short color":   "newmtl a\nKd 1 1\n",
		"bad ns":        "newmtl a\nNs high\n",
		"empty map":     "newmtl a\nmap_Kd\n",
	} {
		if _, err := ParseMTL(strings.NewReader(src), "bad.mtl"); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestLoadOBJResolvesLibraryRelativeToModel(t *testing.T) {
	a := New(fstest.MapFS{
		"models/box/box.obj": {Data: []byte(cubeOBJ)},
		"models/box/box.mtl": {Data: []byte(boxMTL)},
	})
	obj, err := a.OBJ("models/box/box.obj")
	if err != nil {
		t.Fatalf("OBJ: %v", err)
	}
	if obj.Dir() != "models/box" {
		t.Errorf("Dir = %q", obj.Dir())
	}
	if len(obj.Materials) != 2 {
		t.Errorf("materials = %d", len(obj.Materials))
	}
}

func TestLoadOBJUnknownMaterial(t *testing.T) {
	a := New(fstest.MapFS{
		"m.obj": {Data: []byte("mtllib m.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl ghost\nf 1 2 3\n")},
		"m.mtl": {Data: []byte("newmtl real\n")},
	})
	if _, err := a.OBJ("m.obj"); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("err = %v, want unknown material", err)
	}
}

func TestLoadOBJMissingLibrary(t *testing.T) {
	a := New(fstest.MapFS{"m.obj": {Data: []byte(cubeOBJ)}})
	if _, err := a.OBJ("m.obj"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}
