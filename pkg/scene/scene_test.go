package scene

import (
	"math"
	"strings"
	"testing"

	"strafe/pkg/math3d"
)

func TestValidateRejectsBadIndices(t *testing.T) {
	m := NewMesh("bad")
	m.Verts = []math3d.Vec3{{}, {X: 1}, {Y: 1}}

	m.Faces = []Face{{V: [3]int{0, 1, 2}}}
	if err := m.Validate(); err != nil {
		t.Errorf("valid mesh rejected: %v", err)
	}

	m.Faces = []Face{{V: [3]int{0, 1, 3}}}
	if err := m.Validate(); err == nil {
		t.Error("expected error for out-of-range index")
	}

	m.Faces = []Face{{V: [3]int{0, -1, 2}}}
	if err := m.Validate(); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestMeshBounds(t *testing.T) {
	m := NewMesh("box")
	m.Verts = []math3d.Vec3{
		{X: -1, Y: 2, Z: 0},
		{X: 3, Y: -4, Z: 1},
		{X: 0, Y: 0, Z: -2},
	}
	m.CalculateBounds()

	if m.BoundsMin != math3d.V3(-1, -4, -2) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if m.BoundsMax != math3d.V3(3, 2, 1) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
	if c := m.Center(); c != math3d.V3(1, -1, -0.5) {
		t.Errorf("Center = %v", c)
	}
}

const quadOBJ = `
# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestOBJFanTriangulation(t *testing.T) {
	mesh, err := NewOBJLoader().Parse(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("vertices = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", mesh.TriangleCount())
	}

	// Fan triangulation of (1,2,3,4) with inverted winding.
	if got := mesh.Faces[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("face 0 = %v, want [0 2 1]", got)
	}
	if got := mesh.Faces[1].V; got != [3]int{0, 3, 2} {
		t.Errorf("face 1 = %v, want [0 3 2]", got)
	}
}

func TestOBJUVPixelUnits(t *testing.T) {
	mesh, err := NewOBJLoader().Parse(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// vt 0 0 maps to pixel (0, 16): scaled by 16 with V flipped.
	uv := mesh.Faces[0].UV[0]
	if math.Abs(uv.X) > 1e-9 || math.Abs(uv.Y-16) > 1e-9 {
		t.Errorf("uv for vt(0,0) = %v, want (0,16)", uv)
	}

	// vt 1 1 maps to pixel (16, 0).
	uv = mesh.Faces[0].UV[1] // corner index 3 in OBJ order, vt 3
	if math.Abs(uv.X-16) > 1e-9 || math.Abs(uv.Y) > 1e-9 {
		t.Errorf("uv for vt(1,1) = %v, want (16,0)", uv)
	}
}

func TestOBJNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	mesh, err := NewOBJLoader().Parse(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := mesh.Faces[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("face = %v, want [0 2 1]", got)
	}
}

func TestOBJMaterialMapping(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl hull
f 1 2 3
usemtl unknown
f 1 2 3
`
	loader := NewOBJLoader()
	loader.Materials = map[string]int{"hull": 3}

	mesh, err := loader.Parse(strings.NewReader(src), "mat")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mesh.Faces[0].Material != 3 {
		t.Errorf("face 0 material = %d, want 3", mesh.Faces[0].Material)
	}
	if mesh.Faces[1].Material != 0 {
		t.Errorf("face 1 material = %d, want 0", mesh.Faces[1].Material)
	}
}

func TestOBJBadInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"vertex index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"short vertex", "v 1 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOBJLoader().Parse(strings.NewReader(tt.src), "bad"); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := NewMesh("orig")
	m.Verts = []math3d.Vec3{{X: 1}}
	m.Faces = []Face{{V: [3]int{0, 0, 0}}}

	c := m.Clone()
	c.Verts[0].X = 9
	if m.Verts[0].X != 1 {
		t.Error("clone shares vertex storage with original")
	}
}
