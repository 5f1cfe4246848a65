package render

import (
	"testing"

	"strafe/pkg/math3d"
	"strafe/pkg/scene"
)

func testPipeline() (*DrawList, *Framebuffer) {
	fb := NewFramebuffer(480, 270)
	atlas := NewAtlas()
	atlas.Add(1, NewSolidSprite(16, 16, 7))
	atlas.Add(2, NewSolidSprite(16, 16, 8))

	dl := NewDrawList(NewCamera(), fb, atlas)
	dl.Projector().CameraDepth = 0
	return dl, fb
}

func materialTriangle(z float64, material int) *scene.Mesh {
	m := triangleAt(z)
	m.Faces[0].Material = material
	return m
}

func TestDrawListPainterOrder(t *testing.T) {
	dl, fb := testPipeline()

	// The near triangle is added first but must paint last.
	dl.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	dl.Add(RenderRequest{Mesh: materialTriangle(10, 2)})
	dl.Render()

	if got := fb.IndexAt(240, 135); got != 7 {
		t.Errorf("center pixel = %d, want 7 from the near triangle", got)
	}
}

func TestDrawListBiasDepth(t *testing.T) {
	dl, fb := testPipeline()

	dl.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	start := dl.Add(RenderRequest{Mesh: materialTriangle(10, 2)})
	dl.BiasDepth(start, -100)
	dl.Render()

	if got := fb.IndexAt(240, 135); got != 8 {
		t.Errorf("center pixel = %d, want 8 from the depth-biased triangle", got)
	}
}

func TestDrawListReset(t *testing.T) {
	dl, fb := testPipeline()

	dl.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	if dl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", dl.Len())
	}

	dl.Reset()
	if dl.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", dl.Len())
	}

	dl.Render()
	if n := countIndex(fb, 7); n != 0 {
		t.Errorf("render after Reset wrote %d pixels", n)
	}
}

func TestDrawListMissingMaterial(t *testing.T) {
	dl, fb := testPipeline()

	dl.Add(RenderRequest{Mesh: materialTriangle(5, 42)})
	if dl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", dl.Len())
	}
	dl.Render()

	for _, p := range fb.Pixels {
		if p != 0 {
			t.Fatal("face with unregistered material wrote pixels")
		}
	}
}

func TestDrawListFlamePattern(t *testing.T) {
	dl, fb := testPipeline()
	dl.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	dl.Render()
	solid := countIndex(fb, 7)

	dl2, fb2 := testPipeline()
	dl2.SetTranslucent(1, -1)
	dl2.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	dl2.Render()
	flame := countIndex(fb2, 7)

	if solid == 0 {
		t.Fatal("solid render wrote no pixels")
	}
	if flame == 0 || flame >= solid {
		t.Errorf("flame render wrote %d pixels, solid wrote %d; want a dithered subset", flame, solid)
	}
	if p := dl2.ras.Pattern(); p != PatternSolid {
		t.Errorf("pattern after Render = %#x, want solid", uint16(p))
	}
}

func TestDrawListSmokePattern(t *testing.T) {
	dl, fb := testPipeline()
	dl.Add(RenderRequest{Mesh: materialTriangle(5, 2)})
	dl.Render()
	solid := countIndex(fb, 8)

	dl2, fb2 := testPipeline()
	dl2.SetTranslucent(-1, 2)
	dl2.Add(RenderRequest{Mesh: materialTriangle(5, 2), Density: 0.5})
	dl2.Render()
	smoke := countIndex(fb2, 8)

	if smoke == 0 || smoke >= solid {
		t.Errorf("smoke render wrote %d pixels, solid wrote %d; want a dithered subset", smoke, solid)
	}
}

func TestDrawListFogPattern(t *testing.T) {
	big := scene.NewMesh("wall")
	big.Verts = []math3d.Vec3{
		{X: 0, Y: 10, Z: 0},
		{X: 10, Y: -10, Z: 0},
		{X: -10, Y: -10, Z: 0},
	}
	big.Faces = []scene.Face{{V: [3]int{0, 1, 2}, Material: 1}}
	big.CalculateBounds()

	req := RenderRequest{Mesh: big, Offset: math3d.V3(0, 0, 50)}

	dl, fb := testPipeline()
	dl.Add(req)
	dl.Render()
	solid := countIndex(fb, 7)

	req.HasFog = true
	req.FogStart = 1
	req.FarPlane = 51
	dl2, fb2 := testPipeline()
	dl2.Add(req)
	dl2.Render()
	fogged := countIndex(fb2, 7)

	if solid == 0 {
		t.Fatal("solid render wrote no pixels")
	}
	if fogged == 0 || fogged >= solid {
		t.Errorf("fogged render wrote %d pixels, solid wrote %d; want a dithered subset", fogged, solid)
	}
}

func TestRenderWireframe(t *testing.T) {
	dl, fb := testPipeline()
	dl.Add(RenderRequest{Mesh: materialTriangle(5, 1)})
	dl.RenderWireframe(9)

	if n := countIndex(fb, 9); n == 0 {
		t.Error("wireframe drew no edges")
	}
	if n := countIndex(fb, 7); n != 0 {
		t.Error("wireframe filled the face")
	}
}
