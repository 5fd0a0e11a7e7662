package assets

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Material is the subset of an MTL entry the renderer understands. Map
// paths are relative to the model directory.
type Material struct {
	Name      string
	Diffuse   [3]float32 // Kd
	Shininess float32    // Ns
	Dissolve  float32    // d

	DiffuseMap   string // map_Kd
	NormalMap    string // map_Bump, bump, norm
	RoughnessMap string // map_Ns
	MetallicMap  string // map_Ka
}

// ParseMTL reads a material library.
func ParseMTL(r io.Reader, file string) (map[string]*Material, error) {
	mats := map[string]*Material{}
	var cur *Material
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		key, args := strings.ToLower(fields[0]), fields[1:]

		if key == "newmtl" {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s:%d: newmtl without a name", file, line)
			}
			cur = &Material{Name: strings.Join(args, " "), Diffuse: [3]float32{1, 1, 1}, Dissolve: 1}
			mats[cur.Name] = cur
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("%s:%d: %q before newmtl", file, line, fields[0])
		}

		var err error
		switch key {
		case "kd":
			err = parseColor(args, &cur.Diffuse)
		case "ns":
			cur.Shininess, err = parseScalar(args)
		case "d":
			cur.Dissolve, err = parseScalar(args)
		case "map_kd":
			cur.DiffuseMap, err = mapPath(args)
		case "map_bump", "bump", "norm":
			cur.NormalMap, err = mapPath(args)
		case "map_ns":
			cur.RoughnessMap, err = mapPath(args)
		case "map_ka":
			cur.MetallicMap, err = mapPath(args)
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", file, line, fields[0], err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return mats, nil
}

func parseScalar(args []string) (float32, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	f, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", args[0])
	}
	return float32(f), nil
}

func parseColor(args []string, out *[3]float32) error {
	if len(args) < 3 {
		return fmt.Errorf("expected 3 components, got %d", len(args))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("bad number %q", args[i])
		}
		out[i] = float32(f)
	}
	return nil
}

// mapPath returns the file of a map statement; options such as "-bm 0.5"
// precede it, so the path is the last field.
func mapPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing texture path")
	}
	return strings.ReplaceAll(args[len(args)-1], `\`, "/"), nil
}
