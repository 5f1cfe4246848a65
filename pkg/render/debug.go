package render

// RenderWireframe draws the queued faces as edge outlines instead of
// filled triangles. Debug aid for inspecting culling and sort order;
// the faces are sorted the same way Render sorts them.
func (d *DrawList) RenderWireframe(idx uint8) {
	d.sorter.Sort(d.faces)

	fb := d.ras.fb
	for i := range d.faces {
		f := &d.faces[i]
		for e := range 3 {
			a := f.Pts[e]
			b := f.Pts[(e+1)%3]
			fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), idx)
		}
	}
}
