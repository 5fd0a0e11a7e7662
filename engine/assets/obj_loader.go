package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tofu/engine/geom"
)

// OBJGroup is one drawable piece of an OBJ file: the faces between two
// o/g/usemtl statements.
type OBJGroup struct {
	Name     string
	Material string // usemtl name; empty when none was set
	Mesh     geom.MeshData
}

// OBJ is a parsed Wavefront model with its materials.
type OBJ struct {
	Path      string
	Groups    []OBJGroup
	Materials map[string]*Material
}

// Dir is the directory texture paths are relative to.
func (o *OBJ) Dir() string { return path.Dir(o.Path) }

// OBJ loads name plus every material library it references and computes
// tangent space for each group.
func (a *FS) OBJ(name string) (*OBJ, error) {
	b, err := a.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", name, err)
	}
	groups, libs, err := ParseOBJ(bytes.NewReader(b), name)
	if err != nil {
		return nil, err
	}

	obj := &OBJ{Path: name, Groups: groups, Materials: map[string]*Material{}}
	for _, lib := range libs {
		libPath := path.Join(obj.Dir(), lib)
		mb, err := a.ReadFile(libPath)
		if err != nil {
			return nil, fmt.Errorf("load material library %q: %w", libPath, err)
		}
		mats, err := ParseMTL(bytes.NewReader(mb), libPath)
		if err != nil {
			return nil, err
		}
		for k, m := range mats {
			obj.Materials[k] = m
		}
	}
	for _, g := range obj.Groups {
		if g.Material == "" {
			continue
		}
		if _, ok := obj.Materials[g.Material]; !ok {
			return nil, fmt.Errorf("%s: group %q uses unknown material %q", name, g.Name, g.Material)
		}
	}
	return obj, nil
}

type vertexKey [3]int // position, texcoord, normal; -1 when absent

type groupBuilder struct {
	name         string
	material     string
	mesh         geom.MeshData
	seen         map[vertexKey]uint32
	missing      []bool // per vertex: no vn in the file
	needsNormals bool
}

func newGroup(name, material string) *groupBuilder {
	return &groupBuilder{name: name, material: material, seen: map[vertexKey]uint32{}}
}

type objParser struct {
	file      string
	line      int
	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3
	cur       *groupBuilder
	groups    []OBJGroup
	libs      []string
}

// ParseOBJ reads OBJ geometry. Faces with more than three corners are fan
// triangulated; vertices are shared within a group when position, texcoord
// and normal all match. It returns the groups and the referenced material
// library names.
func ParseOBJ(r io.Reader, file string) ([]OBJGroup, []string, error) {
	p := &objParser{file: file, cur: newGroup("", "")}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", file, err)
	}
	p.flush()
	if len(p.groups) == 0 {
		return nil, nil, fmt.Errorf("%s: no faces", file)
	}
	return p.groups, p.libs, nil
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.file, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "v":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := p.floats(args, 1)
		if err != nil {
			return err
		}
		uv := mgl32.Vec2{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.texcoords = append(p.texcoords, uv)
	case "vn":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "f":
		return p.face(args)
	case "o", "g":
		p.flush()
		p.cur = newGroup(strings.Join(args, " "), p.cur.material)
	case "usemtl":
		if len(args) == 0 {
			return p.errorf("usemtl without a name")
		}
		name := strings.Join(args, " ")
		if len(p.cur.mesh.Indices) > 0 {
			p.flush()
			p.cur = newGroup(p.cur.name, name)
		}
		p.cur.material = name
	case "mtllib":
		if len(args) == 0 {
			return p.errorf("mtllib without a file")
		}
		p.libs = append(p.libs, args...)
	}
	// s, l, p and vendor extensions are ignored
	return nil
}

func (p *objParser) floats(args []string, min int) ([]float32, error) {
	if len(args) < min {
		return nil, p.errorf("expected %d values, got %d", min, len(args))
	}
	out := make([]float32, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, p.errorf("bad number %q", a)
		}
		out = append(out, float32(f))
	}
	return out, nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(args))
	}
	corners := make([]uint32, len(args))
	for i, ref := range args {
		idx, err := p.vertex(ref)
		if err != nil {
			return err
		}
		corners[i] = idx
	}
	for i := 1; i+1 < len(corners); i++ {
		p.cur.mesh.Indices = append(p.cur.mesh.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

// vertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
func (p *objParser) vertex(ref string) (uint32, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return 0, p.errorf("bad face vertex %q", ref)
	}
	key := vertexKey{-1, -1, -1}
	counts := [3]int{len(p.positions), len(p.texcoords), len(p.normals)}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return 0, p.errorf("face vertex %q has no position", ref)
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, p.errorf("bad face vertex %q", ref)
		}
		idx, ok := resolveIndex(n, counts[i])
		if !ok {
			return 0, p.errorf("face vertex %q out of range", ref)
		}
		key[i] = idx
	}

	g := p.cur
	if idx, ok := g.seen[key]; ok {
		return idx, nil
	}
	v := geom.Vertex{Position: p.positions[key[0]]}
	if key[1] >= 0 {
		tc := p.texcoords[key[1]]
		v.UV = mgl32.Vec2{tc[0], 1 - tc[1]}
	}
	if key[2] >= 0 {
		v.Normal = p.normals[key[2]]
	} else {
		g.needsNormals = true
	}
	idx := uint32(len(g.mesh.Vertices))
	g.mesh.Vertices = append(g.mesh.Vertices, v)
	g.missing = append(g.missing, key[2] < 0)
	g.seen[key] = idx
	return idx, nil
}

// resolveIndex maps a 1-based (or negative, relative) OBJ index to 0-based.
func resolveIndex(n, count int) (int, bool) {
	switch {
	case n > 0 && n <= count:
		return n - 1, true
	case n < 0 && -n <= count:
		return count + n, true
	default:
		return 0, false
	}
}

func (p *objParser) flush() {
	g := p.cur
	if len(g.mesh.Indices) == 0 {
		return
	}
	if g.needsNormals {
		geom.FillMissingNormals(&g.mesh, g.missing)
	}
	geom.ComputeTangents(&g.mesh)
	p.groups = append(p.groups, OBJGroup{Name: g.name, Material: g.material, Mesh: g.mesh})
	p.cur = newGroup(g.name, g.material)
}
