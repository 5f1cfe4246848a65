package render

import (
	"math"

	"strafe/pkg/math3d"
	"strafe/pkg/scene"
)

// Projection constants.
const (
	// DefaultNearPlane is the camera-space depth below which a
	// vertex is dropped. There is no clipping, only all-or-nothing
	// face inclusion.
	DefaultNearPlane = 0.1

	// DefaultCameraDepth is the fixed bias added to camera-space Z
	// so visible geometry sits at positive depth for the
	// perspective divide.
	DefaultCameraDepth = 4.0

	// GroundDepthBias is added to ground sort depths so terrain
	// always paints behind everything else.
	GroundDepthBias = 1000.0

	// skyboxDotThreshold lets skybox faces survive slight grazing
	// angles in the horizontal-only backface test.
	skyboxDotThreshold = -0.1
)

// FogOpacity is an optional fog value. Valid=false means fog was not
// requested for the face; Valid=true with Value 0 means fully clear.
type FogOpacity struct {
	Valid bool
	Value float64
}

// ScreenPoint is a projected vertex: screen coordinates plus inverse
// camera-space depth.
type ScreenPoint struct {
	X, Y float64
	W    float64 // 1 / depth
}

// RenderRequest asks the Projector to project one object.
type RenderRequest struct {
	Mesh   *scene.Mesh
	Offset math3d.Vec3 // World position of the mesh origin

	// Object orientation, applied when Rotated is set.
	Rotated          bool
	Pitch, Yaw, Roll float64

	// Material override replaces every face's material id.
	HasMaterialOverride bool
	MaterialOverride    int

	Ground bool // Terrain: skip distance and backface culls, sort behind
	Skybox bool // Horizontal-only backface test, never fogged

	FarPlane float64 // Distance cull radius; 0 disables the cull
	HasFog   bool
	FogStart float64

	// Density is the per-face opacity scalar for smoke materials.
	// Zero means fully opaque.
	Density float64
}

// ProjectedFace is one drawable triangle: projected points, resolved
// material and UVs, sort depth and fog.
type ProjectedFace struct {
	Pts      [3]ScreenPoint
	UV       [3]math3d.Vec2
	Material int
	Depth    float64
	Fog      FogOpacity
	Ground   bool
	Skybox   bool
	Density  float64
}

// Projector transforms, culls and projects meshes into drawable
// faces. Scratch buffers are reused across calls, so a Projector is
// single-writer: the returned slice is valid until the next Project
// call, and concurrent use requires one Projector per goroutine.
type Projector struct {
	Width, Height int
	FOV           float64 // Vertical field of view in radians
	NearPlane     float64
	CameraDepth   float64
	GroundBehind  bool // Apply GroundDepthBias to ground faces

	camVerts []math3d.Vec3
	pts      []ScreenPoint
	valid    []bool
	out      []ProjectedFace
}

// NewProjector creates a projector for the given screen size with
// default projection parameters.
func NewProjector(width, height int) *Projector {
	return &Projector{
		Width:        width,
		Height:       height,
		FOV:          math.Pi / 3,
		NearPlane:    DefaultNearPlane,
		CameraDepth:  DefaultCameraDepth,
		GroundBehind: true,
	}
}

// Project culls and projects one object, returning its drawable
// faces annotated with depth and fog. An empty result is the normal
// outcome of culling, never an error.
func (p *Projector) Project(req RenderRequest, cam *Camera) []ProjectedFace {
	p.out = p.out[:0]

	mesh := req.Mesh
	if mesh == nil || len(mesh.Faces) == 0 {
		return p.out
	}

	rel := req.Offset.Sub(cam.Position())
	distSq := rel.HorizontalLenSq()
	far := req.FarPlane
	if !req.Ground && far > 0 && distSq > far*far {
		return p.out
	}

	view := cam.ViewRotation()
	if !req.Ground && p.allBehind(mesh, rel, view) {
		return p.out
	}

	// One matrix per vertex: fold the object rotation into the view
	// rotation, and the camera position into the translation.
	m := view
	if req.Rotated {
		m = view.Mul(math3d.ObjectRotation(req.Pitch, req.Yaw, req.Roll))
	}
	trans := view.MulVec3(rel)

	p.transformVerts(mesh.Verts, m, trans)

	for i := range mesh.Faces {
		f := &mesh.Faces[i]
		i1, i2, i3 := f.V[0], f.V[1], f.V[2]
		if !p.valid[i1] || !p.valid[i2] || !p.valid[i3] {
			continue
		}

		c1, c2, c3 := p.camVerts[i1], p.camVerts[i2], p.camVerts[i3]
		s1, s2, s3 := p.pts[i1], p.pts[i2], p.pts[i3]

		if !req.Ground {
			// Camera-space backface test: the face normal dotted
			// with the centroid view vector must be positive.
			e1 := c2.Sub(c1)
			e2 := c3.Sub(c1)
			normal := e2.Cross(e1)
			centroid := c1.Add(c2).Add(c3).Scale(1.0 / 3)

			if req.Skybox {
				// Horizontal components only, so the skybox never
				// culls while looking up or down. No winding check:
				// a pitched-away skybox face may wind either way on
				// screen and the rasterizer does not care.
				if normal.X*centroid.X+normal.Z*centroid.Z <= skyboxDotThreshold {
					continue
				}
			} else {
				if normal.Dot(centroid) <= 0 {
					continue
				}
				// Screen-space winding safety net: front faces wind
				// clockwise in pixel coordinates.
				if (s2.X-s1.X)*(s3.Y-s1.Y)-(s2.Y-s1.Y)*(s3.X-s1.X) <= 0 {
					continue
				}
			}
		}

		depth := (c1.Z + c2.Z + c3.Z) / 3
		sortDepth := depth
		if req.Ground && p.GroundBehind {
			sortDepth += GroundDepthBias
		}

		var fog FogOpacity
		if req.HasFog && !req.Skybox && far > req.FogStart {
			d := math.Sqrt(distSq)
			if req.Ground {
				d = depth
			}
			fog = FogOpacity{Valid: true, Value: fogRamp(d, req.FogStart, far)}
		}

		material := f.Material
		if req.HasMaterialOverride {
			material = req.MaterialOverride
		}
		density := req.Density
		if density == 0 {
			density = 1
		}

		p.out = append(p.out, ProjectedFace{
			Pts:      [3]ScreenPoint{s1, s2, s3},
			UV:       f.UV,
			Material: material,
			Depth:    sortDepth,
			Fog:      fog,
			Ground:   req.Ground,
			Skybox:   req.Skybox,
			Density:  density,
		})
	}

	return p.out
}

// transformVerts applies the combined rotation and translation to
// every vertex, projecting those in front of the near plane.
func (p *Projector) transformVerts(verts []math3d.Vec3, m math3d.Mat3, trans math3d.Vec3) {
	n := len(verts)
	if cap(p.camVerts) < n {
		p.camVerts = make([]math3d.Vec3, n)
		p.pts = make([]ScreenPoint, n)
		p.valid = make([]bool, n)
	}
	p.camVerts = p.camVerts[:n]
	p.pts = p.pts[:n]
	p.valid = p.valid[:n]

	halfW := float64(p.Width) / 2
	halfH := float64(p.Height) / 2
	k := halfH / math.Tan(p.FOV/2)

	for i, v := range verts {
		c := m.MulVec3(v).Add(trans)
		c.Z += p.CameraDepth
		p.camVerts[i] = c

		if c.Z > p.NearPlane {
			w := 1 / c.Z
			p.pts[i] = ScreenPoint{
				X: halfW + c.X*k*w,
				Y: halfH - c.Y*k*w,
				W: w,
			}
			p.valid[i] = true
		} else {
			p.valid[i] = false
		}
	}
}

// allBehind reports whether the mesh's translated AABB lies entirely
// behind the near plane. The object rotation is ignored; the test
// only rejects, never accepts, whole objects.
func (p *Projector) allBehind(mesh *scene.Mesh, rel math3d.Vec3, view math3d.Mat3) bool {
	if len(mesh.Verts) == 0 {
		return false
	}

	lo := mesh.BoundsMin.Add(rel)
	hi := mesh.BoundsMax.Add(rel)

	for corner := range 8 {
		c := math3d.V3(lo.X, lo.Y, lo.Z)
		if corner&1 != 0 {
			c.X = hi.X
		}
		if corner&2 != 0 {
			c.Y = hi.Y
		}
		if corner&4 != 0 {
			c.Z = hi.Z
		}
		if view.MulVec3(c).Z+p.CameraDepth > p.NearPlane {
			return false
		}
	}
	return true
}

// fogRamp computes the quadratic fog opacity for a distance d.
func fogRamp(d, start, far float64) float64 {
	if d <= start {
		return 0
	}
	t := (d - start) / (far - start)
	t *= t
	if t > 1 {
		return 1
	}
	return t
}
