package render

// DrawList drives one frame: it projects every requested object,
// depth-sorts the combined face list, then rasterizes each face with
// the fill pattern its material and fog call for. The face slice is
// reused across frames; no other state persists between frames.
type DrawList struct {
	cam    *Camera
	proj   *Projector
	sorter *Sorter
	ras    *Rasterizer
	atlas  *Atlas

	// Semi-transparent material ids. Negative means unset.
	flameMaterial int
	smokeMaterial int

	faces []ProjectedFace
}

// NewDrawList wires a pipeline over the given framebuffer and atlas.
func NewDrawList(cam *Camera, fb *Framebuffer, atlas *Atlas) *DrawList {
	return &DrawList{
		cam:           cam,
		proj:          NewProjector(fb.Width, fb.Height),
		sorter:        NewSorter(),
		ras:           NewRasterizer(fb),
		atlas:         atlas,
		flameMaterial: -1,
		smokeMaterial: -1,
	}
}

// Projector exposes the projector for parameter tuning (fov, far
// plane bias, ground sorting).
func (d *DrawList) Projector() *Projector {
	return d.proj
}

// SetTranslucent registers the material ids rendered with inherent
// dither transparency.
func (d *DrawList) SetTranslucent(flame, smoke int) {
	d.flameMaterial = flame
	d.smokeMaterial = smoke
}

// Reset discards the current frame's faces. Call once per frame
// before adding requests.
func (d *DrawList) Reset() {
	d.faces = d.faces[:0]
}

// Add projects one object and appends its drawable faces. It returns
// the index of the first appended face, for use with BiasDepth.
func (d *DrawList) Add(req RenderRequest) int {
	start := len(d.faces)
	d.faces = append(d.faces, d.proj.Project(req, d.cam)...)
	return start
}

// Len returns the number of faces queued this frame.
func (d *DrawList) Len() int {
	return len(d.faces)
}

// BiasDepth shifts the sort depth of every face from index from
// onward. Collaborators use it to force a batch nearer or farther
// before the sort (an object resting on a surface sorts in front of
// it regardless of true depth).
func (d *DrawList) BiasDepth(from int, delta float64) {
	for i := from; i < len(d.faces); i++ {
		d.faces[i].Depth += delta
	}
}

// Render sorts the queued faces back to front and rasterizes them.
func (d *DrawList) Render() {
	d.sorter.Sort(d.faces)

	for i := range d.faces {
		f := &d.faces[i]

		sprite := d.atlas.Sprite(f.Material)
		if sprite == nil {
			// Missing material drops the face, never the frame.
			continue
		}

		switch {
		case f.Material == d.flameMaterial:
			d.ras.SetPattern(PatternFlame)
		case f.Material == d.smokeMaterial:
			d.ras.SetPattern(SmokePattern(f.Density))
		case f.Fog.Valid && f.Fog.Value > 0:
			d.ras.SetPattern(FogPattern(f.Fog.Value))
		}

		d.ras.FillTextured(f.Pts, f.UV, sprite)
		d.ras.SetPattern(PatternSolid)
	}
}
