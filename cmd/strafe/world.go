package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/harmonica"

	"strafe/pkg/math3d"
	"strafe/pkg/render"
	"strafe/pkg/scene"
)

// Material ids used by the demo world.
const (
	matGround = iota + 1
	matSky
	matShip
	matFlame
	matSmoke
)

const (
	orbitRadius = 18.0
	orbitHeight = 3.5
	smokeLife   = 1.6 // seconds
	maxPuffs    = 24
	puffEvery   = 0.12 // seconds between smoke puffs
)

type smokePuff struct {
	pos math3d.Vec3
	age float64
}

// world holds the demo scene: a ship circling over a tiled ground
// plane inside a skybox, trailing flame and smoke billboards. The
// camera chases the ship on critically damped springs.
type world struct {
	ground *scene.Mesh
	sky    *scene.Mesh
	ship   *scene.Mesh
	flame  *scene.Mesh
	smoke  *scene.Mesh

	shipOverride bool // Loaded meshes carry no usable material ids

	angle    float64
	shipPos  math3d.Vec3
	shipYaw  float64
	shipRoll float64
	heading  math3d.Vec3

	puffs     []smokePuff
	puffTimer float64

	spring              harmonica.Spring
	camPos              math3d.Vec3
	camVX, camVY, camVZ float64
}

func newWorld(fps int, modelPath string) (*world, error) {
	w := &world{
		ground: groundMesh(12, 6),
		sky:    skyboxMesh(60, 30),
		flame:  billboardMesh(1.4, 1.4, matFlame),
		smoke:  billboardMesh(2.2, 2.2, matSmoke),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
		camPos: math3d.V3(0, orbitHeight+2, -orbitRadius-8),
	}

	if modelPath == "" {
		w.ship = shipMesh()
		return w, nil
	}

	mesh, err := loadShip(modelPath)
	if err != nil {
		return nil, err
	}
	w.ship = mesh
	w.shipOverride = true
	return w, nil
}

// loadShip loads an OBJ or GLB mesh and normalizes it to roughly
// three world units.
func loadShip(path string) (*scene.Mesh, error) {
	var (
		mesh *scene.Mesh
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		mesh, err = scene.NewOBJLoader().Load(path)
	case ".glb", ".gltf":
		mesh, err = scene.NewGLTFLoader().Load(path)
	default:
		return nil, fmt.Errorf("unsupported model format: %s (use .obj or .glb)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		s := 3.0 / maxDim
		for i := range mesh.Verts {
			mesh.Verts[i] = mesh.Verts[i].Sub(center).Scale(s)
		}
		mesh.CalculateBounds()
	}
	return mesh, nil
}

// update advances the flight path, camera springs and smoke trail by
// dt seconds.
func (w *world) update(dt float64) {
	w.angle += dt * 0.45

	a := w.angle
	w.shipPos = math3d.V3(
		orbitRadius*math.Sin(a),
		orbitHeight+0.6*math.Sin(a*2.3),
		orbitRadius*math.Cos(a),
	)
	w.shipYaw = a + math.Pi/2
	w.shipRoll = -0.35
	w.heading = math3d.V3(math.Sin(w.shipYaw), 0, math.Cos(w.shipYaw))

	// Chase position: behind and above the ship.
	want := w.shipPos.Sub(w.heading.Scale(8)).Add(math3d.V3(0, 2.5, 0))
	w.camPos.X, w.camVX = w.spring.Update(w.camPos.X, w.camVX, want.X)
	w.camPos.Y, w.camVY = w.spring.Update(w.camPos.Y, w.camVY, want.Y)
	w.camPos.Z, w.camVZ = w.spring.Update(w.camPos.Z, w.camVZ, want.Z)

	// The flame breathes by rewriting its quad in place.
	s := 1.4 * (1 + 0.3*math.Sin(w.angle*23))
	setBillboardSize(w.flame, s, s)

	w.puffTimer += dt
	if w.puffTimer >= puffEvery {
		w.puffTimer = 0
		tail := w.shipPos.Sub(w.heading.Scale(1.8))
		w.puffs = append(w.puffs, smokePuff{pos: tail})
		if len(w.puffs) > maxPuffs {
			w.puffs = w.puffs[1:]
		}
	}

	alive := w.puffs[:0]
	for _, p := range w.puffs {
		p.age += dt
		p.pos.Y += dt * 0.8 // smoke rises
		if p.age < smokeLife {
			alive = append(alive, p)
		}
	}
	w.puffs = alive
}

// draw queues the frame and renders it.
func (w *world) draw(dl *render.DrawList, cam *render.Camera, farPlane, fogStart float64, wireframe bool) {
	cam.SetPosition(w.camPos)
	cam.LookAt(w.shipPos)

	dl.Reset()

	// The skybox follows the camera so its walls never recede.
	dl.Add(render.RenderRequest{Mesh: w.sky, Offset: cam.Position(), Skybox: true})

	dl.Add(render.RenderRequest{
		Mesh:     w.ground,
		Ground:   true,
		HasFog:   true,
		FogStart: fogStart,
		FarPlane: farPlane,
	})

	dl.Add(render.RenderRequest{
		Mesh:                w.ship,
		Offset:              w.shipPos,
		Rotated:             true,
		Yaw:                 w.shipYaw,
		Roll:                w.shipRoll,
		HasMaterialOverride: w.shipOverride,
		MaterialOverride:    matShip,
		HasFog:              true,
		FogStart:            fogStart,
		FarPlane:            farPlane,
	})

	// Flame sits at the tail, nudged nearer so it paints over the
	// hull it touches.
	flameStart := dl.Add(render.RenderRequest{
		Mesh:    w.flame,
		Offset:  w.shipPos.Sub(w.heading.Scale(1.6)),
		Rotated: true,
		Yaw:     cam.Yaw,
	})
	dl.BiasDepth(flameStart, -0.5)

	for _, p := range w.puffs {
		density := 1 - p.age/smokeLife
		if density < 0.1 {
			density = 0.1
		}
		dl.Add(render.RenderRequest{
			Mesh:    w.smoke,
			Offset:  p.pos,
			Rotated: true,
			Yaw:     cam.Yaw,
			Density: density,
		})
	}

	if wireframe {
		dl.RenderWireframe(11)
		return
	}
	dl.Render()
}

// buildAtlas registers the demo's procedural sprites.
func buildAtlas() *render.Atlas {
	atlas := render.NewAtlas()
	atlas.Add(matGround, render.NewCheckerSprite(16, 16, 8, 3, 27))
	atlas.Add(matSky, render.NewSolidSprite(16, 16, 12))
	atlas.Add(matShip, render.NewCheckerSprite(16, 16, 4, 6, 5))
	atlas.Add(matFlame, render.NewCheckerSprite(16, 16, 2, 9, 10))
	atlas.Add(matSmoke, render.NewSolidSprite(16, 16, 6))
	return atlas
}

// appendQuad adds a quad as two triangles. Corners are given
// clockwise as seen from the visible side.
func appendQuad(m *scene.Mesh, a, b, c, d math3d.Vec3, material int) {
	base := len(m.Verts)
	m.Verts = append(m.Verts, a, b, c, d)

	uvA := math3d.V2(0, 0)
	uvB := math3d.V2(render.SpriteSize, 0)
	uvC := math3d.V2(render.SpriteSize, render.SpriteSize)
	uvD := math3d.V2(0, render.SpriteSize)

	m.Faces = append(m.Faces,
		scene.Face{V: [3]int{base, base + 1, base + 2}, Material: material, UV: [3]math3d.Vec2{uvA, uvB, uvC}},
		scene.Face{V: [3]int{base, base + 2, base + 3}, Material: material, UV: [3]math3d.Vec2{uvA, uvC, uvD}},
	)
}

// groundMesh builds an n-by-n tile grid in the XZ plane at y = 0.
func groundMesh(n int, tileSize float64) *scene.Mesh {
	m := scene.NewMesh("ground")
	half := float64(n) * tileSize / 2

	for tz := 0; tz < n; tz++ {
		for tx := 0; tx < n; tx++ {
			x0 := float64(tx)*tileSize - half
			z0 := float64(tz)*tileSize - half
			x1 := x0 + tileSize
			z1 := z0 + tileSize
			appendQuad(m,
				math3d.V3(x0, 0, z1),
				math3d.V3(x1, 0, z1),
				math3d.V3(x1, 0, z0),
				math3d.V3(x0, 0, z0),
				matGround,
			)
		}
	}

	m.CalculateBounds()
	return m
}

// skyboxMesh builds four walls and a ceiling facing inward.
func skyboxMesh(d, h float64) *scene.Mesh {
	m := scene.NewMesh("sky")

	// Each wall's corners run clockwise as seen from the center.
	appendQuad(m, // ahead, +Z
		math3d.V3(-d, h, d), math3d.V3(d, h, d), math3d.V3(d, -h, d), math3d.V3(-d, -h, d), matSky)
	appendQuad(m, // behind, -Z
		math3d.V3(d, h, -d), math3d.V3(-d, h, -d), math3d.V3(-d, -h, -d), math3d.V3(d, -h, -d), matSky)
	appendQuad(m, // right, +X
		math3d.V3(d, h, d), math3d.V3(d, h, -d), math3d.V3(d, -h, -d), math3d.V3(d, -h, d), matSky)
	appendQuad(m, // left, -X
		math3d.V3(-d, h, -d), math3d.V3(-d, h, d), math3d.V3(-d, -h, d), math3d.V3(-d, -h, -d), matSky)
	appendQuad(m, // ceiling
		math3d.V3(-d, h, -d), math3d.V3(d, h, -d), math3d.V3(d, h, d), math3d.V3(-d, h, d), matSky)

	m.CalculateBounds()
	return m
}

// billboardMesh builds a camera-facing quad centered on its origin.
func billboardMesh(w, h float64, material int) *scene.Mesh {
	m := scene.NewMesh("billboard")
	appendQuad(m,
		math3d.V3(-w/2, h/2, 0),
		math3d.V3(w/2, h/2, 0),
		math3d.V3(w/2, -h/2, 0),
		math3d.V3(-w/2, -h/2, 0),
		material,
	)
	m.CalculateBounds()
	return m
}

// setBillboardSize resizes a billboard quad without reallocating.
func setBillboardSize(m *scene.Mesh, w, h float64) {
	m.Verts[0] = math3d.V3(-w/2, h/2, 0)
	m.Verts[1] = math3d.V3(w/2, h/2, 0)
	m.Verts[2] = math3d.V3(w/2, -h/2, 0)
	m.Verts[3] = math3d.V3(-w/2, -h/2, 0)
	m.CalculateBounds()
}

// shipMesh builds the fallback ship: a low tetrahedral dart.
func shipMesh() *scene.Mesh {
	m := scene.NewMesh("ship")
	m.Verts = []math3d.Vec3{
		{X: 0, Y: 0.25, Z: 1.5}, // nose
		{X: -1, Y: 0, Z: -1},    // left wingtip
		{X: 1, Y: 0, Z: -1},     // right wingtip
		{X: 0, Y: 0.8, Z: -1},   // fin
	}

	uv := [3]math3d.Vec2{{X: 8, Y: 0}, {X: 16, Y: 16}, {X: 0, Y: 16}}
	for _, v := range [][3]int{
		{0, 2, 3}, // right flank
		{0, 3, 1}, // left flank
		{0, 1, 2}, // belly
		{3, 2, 1}, // stern
	} {
		m.Faces = append(m.Faces, scene.Face{V: v, Material: matShip, UV: uv})
	}

	m.CalculateBounds()
	return m
}
