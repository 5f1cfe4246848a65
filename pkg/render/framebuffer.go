// Package render provides the software rendering pipeline for strafe.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Default framebuffer resolution.
const (
	DefaultWidth  = 480
	DefaultHeight = 270
)

// PaletteSize is the number of entries in the indexed palette.
const PaletteSize = 32

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// DefaultPalette returns the 32-entry console palette.
func DefaultPalette() [PaletteSize]Color {
	return [PaletteSize]Color{
		RGB(0x00, 0x00, 0x00), // 0 black
		RGB(0x1d, 0x2b, 0x53), // 1 dark blue
		RGB(0x7e, 0x25, 0x53), // 2 dark purple
		RGB(0x00, 0x87, 0x51), // 3 dark green
		RGB(0xab, 0x52, 0x36), // 4 brown
		RGB(0x5f, 0x57, 0x4f), // 5 dark gray
		RGB(0xc2, 0xc3, 0xc7), // 6 light gray
		RGB(0xff, 0xf1, 0xe8), // 7 white
		RGB(0xff, 0x00, 0x4d), // 8 red
		RGB(0xff, 0xa3, 0x00), // 9 orange
		RGB(0xff, 0xec, 0x27), // 10 yellow
		RGB(0x00, 0xe4, 0x36), // 11 green
		RGB(0x29, 0xad, 0xff), // 12 blue
		RGB(0x83, 0x76, 0x9c), // 13 lavender
		RGB(0xff, 0x77, 0xa8), // 14 pink
		RGB(0xff, 0xcc, 0xaa), // 15 peach
		RGB(0x29, 0x18, 0x14), // 16 darkest brown
		RGB(0x11, 0x1d, 0x35), // 17 darker blue
		RGB(0x42, 0x21, 0x36), // 18 darker purple
		RGB(0x12, 0x53, 0x59), // 19 blue green
		RGB(0x74, 0x2f, 0x29), // 20 dark brown
		RGB(0x49, 0x33, 0x3b), // 21 darker gray
		RGB(0xa2, 0x88, 0x79), // 22 medium gray
		RGB(0xf3, 0xef, 0x7d), // 23 light yellow
		RGB(0xbe, 0x12, 0x50), // 24 dark red
		RGB(0xff, 0x6c, 0x24), // 25 dark orange
		RGB(0xa8, 0xe7, 0x2e), // 26 lime green
		RGB(0x00, 0xb5, 0x43), // 27 medium green
		RGB(0x06, 0x5a, 0xb5), // 28 true blue
		RGB(0x75, 0x46, 0x65), // 29 mauve
		RGB(0xff, 0x6e, 0x59), // 30 dark peach
		RGB(0xff, 0x9d, 0x81), // 31 salmon
	}
}

// Framebuffer is a 2D indexed-color pixel surface. Each pixel is a
// palette index; presenters resolve indices through Palette.
type Framebuffer struct {
	Width   int
	Height  int
	Pixels  []uint8 // Row-major palette indices
	Palette [PaletteSize]Color
}

// NewFramebuffer creates a framebuffer with the given dimensions and
// the default palette.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:   width,
		Height:  height,
		Pixels:  make([]uint8, width*height),
		Palette: DefaultPalette(),
	}
}

// Clear fills the framebuffer with a single palette index.
func (fb *Framebuffer) Clear(idx uint8) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling clear.
	fb.Pixels[0] = idx
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetIndex sets the pixel at (x, y) to the given palette index.
// Bounds checking is performed.
func (fb *Framebuffer) SetIndex(x, y int, idx uint8) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = idx
}

// IndexAt returns the palette index at (x, y).
// Returns 0 if out of bounds.
func (fb *Framebuffer) IndexAt(x, y int) uint8 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// RGBAAt returns the resolved color at (x, y).
func (fb *Framebuffer) RGBAAt(x, y int) Color {
	return fb.Palette[fb.IndexAt(x, y)&(PaletteSize-1)]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, idx uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetIndex(x0, y0, idx)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, idx uint8) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetIndex(px, py, idx)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Palette[fb.Pixels[y*fb.Width+x]&(PaletteSize-1)])
		}
	}
	return img
}

// WriteRGBA resolves the palette into dst as packed RGBA bytes.
// dst must hold Width*Height*4 bytes.
func (fb *Framebuffer) WriteRGBA(dst []byte) {
	for i, idx := range fb.Pixels {
		c := fb.Palette[idx&(PaletteSize-1)]
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
