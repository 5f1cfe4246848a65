package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"strafe/pkg/math3d"
)

// OBJLoader loads Wavefront OBJ files into Mesh format.
//
// Texture coordinates are converted from normalized [0,1] UVs to
// texture pixel units (the sampler works in pixels), with the V axis
// flipped to top-left origin. Polygons are fan-triangulated with the
// winding inverted, so meshes authored counter-clockwise come out
// clockwise in screen space.
type OBJLoader struct {
	// TexSize is the pixel size UVs are scaled by. Zero means the
	// canonical 16px sprite.
	TexSize float64

	// Materials maps usemtl names to material ids. Unknown and
	// unset materials resolve to id 0.
	Materials map[string]int
}

// NewOBJLoader creates an OBJ loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{TexSize: 16}
}

// LoadOBJ loads an OBJ file with default options.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// Load loads an OBJ file and returns a validated Mesh.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := l.Parse(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return mesh, nil
}

// Parse reads OBJ text from r into a Mesh.
func (l *OBJLoader) Parse(r io.Reader, name string) (*Mesh, error) {
	texSize := l.TexSize
	if texSize == 0 {
		texSize = 16
	}

	mesh := NewMesh(name)
	var uvs []math3d.Vec2
	material := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Verts = append(mesh.Verts, v)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineNo)
			}
			// Pixel units, V flipped to top-left origin.
			uvs = append(uvs, math3d.V2(u*texSize, (1-v)*texSize))

		case "usemtl":
			if len(fields) > 1 {
				material = l.Materials[fields[1]]
			}

		case "f":
			if err := l.appendFace(mesh, uvs, fields[1:], material); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// appendFace fan-triangulates a polygon face with inverted winding.
func (l *OBJLoader) appendFace(mesh *Mesh, uvs []math3d.Vec2, refs []string, material int) error {
	if len(refs) < 3 {
		return fmt.Errorf("face needs at least 3 vertices")
	}

	type corner struct {
		v  int
		uv math3d.Vec2
	}
	corners := make([]corner, len(refs))
	for i, ref := range refs {
		vi, ti, err := parseFaceRef(ref, len(mesh.Verts), len(uvs))
		if err != nil {
			return err
		}
		c := corner{v: vi}
		if ti >= 0 {
			c.uv = uvs[ti]
		}
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i+1], corners[i]
		mesh.Faces = append(mesh.Faces, Face{
			V:        [3]int{a.v, b.v, c.v},
			Material: material,
			UV:       [3]math3d.Vec2{a.uv, b.uv, c.uv},
		})
	}
	return nil
}

// parseFaceRef parses one "v", "v/vt", "v//vn" or "v/vt/vn" reference
// into zero-based vertex and texcoord indices (texcoord -1 if absent).
// Negative OBJ indices count back from the current element count.
func parseFaceRef(ref string, nVerts, nUVs int) (vi, ti int, err error) {
	parts := strings.Split(ref, "/")

	vi, err = resolveIndex(parts[0], nVerts)
	if err != nil {
		return 0, 0, fmt.Errorf("face vertex %q: %w", ref, err)
	}

	ti = -1
	if len(parts) > 1 && parts[1] != "" {
		ti, err = resolveIndex(parts[1], nUVs)
		if err != nil {
			return 0, 0, fmt.Errorf("face texcoord %q: %w", ref, err)
		}
	}
	return vi, ti, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %s out of range (%d elements)", s, count)
	}
	return n, nil
}

func parseFloats3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		out[i] = f
	}
	return math3d.V3(out[0], out[1], out[2]), nil
}
