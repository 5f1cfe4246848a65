package render

import (
	"math"

	"strafe/pkg/math3d"
)

// attr is the per-scanline interpolant set: screen X plus the
// perspective-correct texture numerators and inverse depth. Position
// interpolates linearly in screen space; UVs interpolate linearly in
// 1/z space and divide back out per pixel.
type attr struct {
	x, uw, vw, w float64
}

func (a attr) add(b attr) attr {
	return attr{a.x + b.x, a.uw + b.uw, a.vw + b.vw, a.w + b.w}
}

func (a attr) sub(b attr) attr {
	return attr{a.x - b.x, a.uw - b.uw, a.vw - b.vw, a.w - b.w}
}

func (a attr) scale(s float64) attr {
	return attr{a.x * s, a.uw * s, a.vw * s, a.w * s}
}

// attrVert is a triangle vertex carrying its interpolants.
type attrVert struct {
	y float64
	a attr
}

// scanSpan is one rasterized row: left and right edge interpolants.
type scanSpan struct {
	y    int
	l, r attr
}

// Rasterizer fills textured triangles into a framebuffer one
// scanline at a time. The span buffer and the active fill pattern are
// instance state reused across calls: single-writer, not safe for
// concurrent use.
type Rasterizer struct {
	fb      *Framebuffer
	pattern FillPattern
	spans   []scanSpan
}

// NewRasterizer creates a rasterizer writing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// SetPattern selects the fill pattern applied to subsequent
// triangles.
func (r *Rasterizer) SetPattern(p FillPattern) {
	r.pattern = p
}

// Pattern returns the active fill pattern.
func (r *Rasterizer) Pattern() FillPattern {
	return r.pattern
}

// FillTextured fills one triangle with perspective-correct UV
// interpolation, sampling the sprite in texture pixel units. Rows are
// clipped vertically to [-1, height-1]; horizontal overdraw is
// clamped to the buffer. Degenerate triangles emit nothing.
func (r *Rasterizer) FillTextured(pts [3]ScreenPoint, uvs [3]math3d.Vec2, sprite *Sprite) {
	if sprite == nil {
		return
	}

	// Zero-area triangles paint nothing.
	area := (pts[1].X-pts[0].X)*(pts[2].Y-pts[0].Y) - (pts[1].Y-pts[0].Y)*(pts[2].X-pts[0].X)
	if area == 0 {
		return
	}

	var v [3]attrVert
	for i := range 3 {
		w := pts[i].W
		v[i] = attrVert{
			y: pts[i].Y,
			a: attr{x: pts[i].X, uw: uvs[i].X * w, vw: uvs[i].Y * w, w: w},
		}
	}

	// Sort top to bottom.
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}

	y1 := int(math.Floor(v[0].y))
	y2 := int(math.Floor(v[1].y))
	y3 := int(math.Floor(v[2].y))
	if y3-y1 <= 0 {
		return
	}

	// The long edge spans the whole triangle; the short edges cover
	// one half each. One slope vector per edge, stepped per row.
	longSlope := v[2].a.sub(v[0].a).scale(1 / (v[2].y - v[0].y))

	r.spans = r.spans[:0]
	if y2-y1 > 0 {
		shortSlope := v[1].a.sub(v[0].a).scale(1 / (v[1].y - v[0].y))
		r.gatherRows(y1, y2, v[0], longSlope, v[0], shortSlope)
	}
	if y3-y2 > 0 {
		shortSlope := v[2].a.sub(v[1].a).scale(1 / (v[2].y - v[1].y))
		r.gatherRows(y2, y3, v[0], longSlope, v[1], shortSlope)
	}

	for _, s := range r.spans {
		r.fillSpan(s.y, s.l, s.r, sprite)
	}
}

// gatherRows steps both edges down the half-triangle rows
// [yStart, yStop) and records one span per row.
func (r *Rasterizer) gatherRows(yStart, yStop int, va attrVert, aSlope attr, vb attrVert, bSlope attr) {
	if yStart < -1 {
		yStart = -1
	}
	if yStop > r.fb.Height {
		yStop = r.fb.Height
	}
	if yStop-yStart <= 0 {
		return
	}

	a := va.a.add(aSlope.scale(float64(yStart) - va.y))
	b := vb.a.add(bSlope.scale(float64(yStart) - vb.y))

	for y := yStart; y < yStop; y++ {
		if y >= 0 {
			r.spans = append(r.spans, scanSpan{y: y, l: a, r: b})
		}
		a = a.add(aSlope)
		b = b.add(bSlope)
	}
}

// fillSpan fills one row between two edge interpolants, recovering
// perspective-corrected UVs per pixel.
func (r *Rasterizer) fillSpan(y int, a, b attr, sprite *Sprite) {
	if a.x > b.x {
		a, b = b, a
	}

	x0 := int(math.Floor(a.x))
	x1 := int(math.Floor(b.x))

	var step attr
	if dx := b.x - a.x; dx > 0 {
		step = b.sub(a).scale(1 / dx)
	}

	if x0 < 0 {
		a = a.add(step.scale(float64(-x0)))
		x0 = 0
	}
	if x1 >= r.fb.Width {
		x1 = r.fb.Width - 1
	}

	row := y * r.fb.Width
	for x := x0; x <= x1; x++ {
		if !r.pattern.Skip(x, y) && a.w > 0 {
			idx := sprite.Sample(a.uw/a.w, a.vw/a.w)
			if idx != TransparentIndex {
				r.fb.Pixels[row+x] = idx
			}
		}
		a = a.add(step)
	}
}
