package glbackend

import (
	"fmt"
	"path"

	"github.com/hubastard/tofu/engine/assets"
	"github.com/hubastard/tofu/engine/geom"
)

// Sampler uniforms every material shader declares.
const (
	UniformAlbedo    = "uAlbedoTexture"
	UniformNormal    = "uNormalTexture"
	UniformRoughness = "uRoughnessTexture"
	UniformMetallic  = "uMetallicTexture"
)

type materialSlot struct {
	uniform string
	color   [4]uint8 // stand-in when the material has no map
}

var materialSlots = [...]materialSlot{
	{UniformAlbedo, [4]uint8{255, 255, 255, 255}},
	{UniformNormal, [4]uint8{128, 128, 255, 255}}, // +Z in tangent space
	{UniformRoughness, [4]uint8{160, 160, 160, 255}},
	{UniformMetallic, [4]uint8{0, 0, 0, 255}},
}

// materialMaps returns the texture path for each slot in materialSlots
// order, resolved against dir; "" where the material has no map.
func materialMaps(m *assets.Material, dir string) [len(materialSlots)]string {
	var out [len(materialSlots)]string
	if m == nil {
		return out
	}
	for i, p := range [...]string{m.DiffuseMap, m.NormalMap, m.RoughnessMap, m.MetallicMap} {
		if p != "" {
			out[i] = path.Join(dir, p)
		}
	}
	return out
}

// Model is a set of meshes sharing one texture cache.
type Model struct {
	Meshes   []*Mesh
	textures map[string]*Texture
	fallback [len(materialSlots)]*Texture
}

// LoadModel reads an OBJ with its materials and uploads one mesh per group.
// Every mesh gets all material slots bound; missing maps use neutral 1x1
// textures so shaders never sample an unbound unit.
func LoadModel(a *assets.FS, name string) (*Model, error) {
	obj, err := a.OBJ(name)
	if err != nil {
		return nil, err
	}

	m := &Model{textures: map[string]*Texture{}}
	for _, g := range obj.Groups {
		maps := materialMaps(obj.Materials[g.Material], obj.Dir())
		bindings := make([]TextureBinding, 0, len(materialSlots))
		for i, slot := range materialSlots {
			tex, err := m.texture(a, i, maps[i])
			if err != nil {
				m.Delete()
				return nil, fmt.Errorf("model %q group %q: %w", name, g.Name, err)
			}
			bindings = append(bindings, TextureBinding{Uniform: slot.uniform, Texture: tex})
		}

		mesh, err := NewMesh(g.Mesh, bindings)
		if err != nil {
			m.Delete()
			return nil, fmt.Errorf("model %q group %q: %w", name, g.Name, err)
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	return m, nil
}

// texture returns the cached texture for p, loading it on first use, or the
// slot's fallback when p is empty.
func (m *Model) texture(a *assets.FS, slot int, p string) (*Texture, error) {
	if p == "" {
		if m.fallback[slot] == nil {
			c := materialSlots[slot].color
			t, err := NewSolidTexture(c[0], c[1], c[2], c[3])
			if err != nil {
				return nil, err
			}
			m.fallback[slot] = t
		}
		return m.fallback[slot], nil
	}
	if t, ok := m.textures[p]; ok {
		return t, nil
	}
	t, err := LoadTexture(a, p)
	if err != nil {
		return nil, err
	}
	m.textures[p] = t
	return t, nil
}

// NewFullscreenTriangle is a texture-less model for screen-space passes.
func NewFullscreenTriangle() (*Model, error) {
	mesh, err := NewMesh(geom.FullscreenTriangle(), nil)
	if err != nil {
		return nil, err
	}
	return &Model{Meshes: []*Mesh{mesh}}, nil
}

// NewModelFromMesh wraps a single mesh built from md.
func NewModelFromMesh(md geom.MeshData, textures []TextureBinding) (*Model, error) {
	mesh, err := NewMesh(md, textures)
	if err != nil {
		return nil, err
	}
	return &Model{Meshes: []*Mesh{mesh}}, nil
}

func (m *Model) Draw(s *Shader) {
	for _, mesh := range m.Meshes {
		mesh.Draw(s)
	}
}

// TextureCount reports distinct textures uploaded for this model.
func (m *Model) TextureCount() int { return len(m.textures) }

func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
	m.Meshes = nil
	for p, t := range m.textures {
		t.Delete()
		delete(m.textures, p)
	}
	for i, t := range m.fallback {
		if t != nil {
			t.Delete()
			m.fallback[i] = nil
		}
	}
}
