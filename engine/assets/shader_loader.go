package assets

import (
	"fmt"
	"path"
)

// Shader reads a GLSL file from shaders/.
func (a *FS) Shader(name string) (string, error) {
	p := path.Join("shaders", name)
	b, err := a.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("load shader %q: empty source", name)
	}
	return string(b), nil
}
