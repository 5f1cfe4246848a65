// Package scene provides mesh representation and loading for the
// strafe renderer.
package scene

import (
	"fmt"

	"strafe/pkg/math3d"
)

// Mesh represents a triangle mesh. Verts may be rewritten in place
// between frames (animated geometry); Faces are fixed after load.
type Mesh struct {
	Name  string
	Verts []math3d.Vec3
	Faces []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle with vertex indices, a material id and
// per-corner texture coordinates in texture pixel units.
type Face struct {
	V        [3]int // Indices into Mesh.Verts
	Material int    // Material id resolved through the atlas
	UV       [3]math3d.Vec2
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:  name,
		Verts: make([]math3d.Vec3, 0),
		Faces: make([]Face, 0),
	}
}

// Validate checks that every face references vertices that exist.
// Meshes are validated once at load time so the render path can index
// without bounds checks.
func (m *Mesh) Validate() error {
	n := len(m.Verts)
	for i, f := range m.Faces {
		for _, vi := range f.V {
			if vi < 0 || vi >= n {
				return fmt.Errorf("mesh %q: face %d references vertex %d of %d", m.Name, i, vi, n)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Verts) == 0 {
		return
	}

	m.BoundsMin = m.Verts[0]
	m.BoundsMax = m.Verts[0]

	for _, v := range m.Verts[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Verts)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Verts:     make([]math3d.Vec3, len(m.Verts)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Verts, m.Verts)
	copy(clone.Faces, m.Faces)
	return clone
}
