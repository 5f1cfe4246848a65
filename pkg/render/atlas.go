package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
)

// SpriteSize is the canonical sprite dimension materials default to.
const SpriteSize = 16

// TransparentIndex is the palette index treated as a color key:
// sampled pixels with this index are not written.
const TransparentIndex = 0

// Material describes a texture source. Dimensions are always carried;
// materials constructed from a bare id get the canonical sprite size.
type Material struct {
	ID int
	W  int
	H  int
}

// MaterialID creates a material descriptor with canonical dimensions.
func MaterialID(id int) Material {
	return Material{ID: id, W: SpriteSize, H: SpriteSize}
}

// Sprite holds indexed pixel data for one material.
type Sprite struct {
	W, H   int
	Pixels []uint8 // Row-major palette indices
}

// NewSprite creates an empty sprite.
func NewSprite(w, h int) *Sprite {
	return &Sprite{W: w, H: h, Pixels: make([]uint8, w*h)}
}

// Set sets the pixel at (x, y) with bounds checking.
func (s *Sprite) Set(x, y int, idx uint8) {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return
	}
	s.Pixels[y*s.W+x] = idx
}

// Sample returns the palette index at texture pixel coordinates
// (u, v), wrapping outside the sprite.
func (s *Sprite) Sample(u, v float64) uint8 {
	x := int(u) % s.W
	if x < 0 {
		x += s.W
	}
	y := int(v) % s.H
	if y < 0 {
		y += s.H
	}
	return s.Pixels[y*s.W+x]
}

// NewCheckerSprite creates a procedural checkerboard sprite.
func NewCheckerSprite(w, h, checkSize int, c1, c2 uint8) *Sprite {
	s := NewSprite(w, h)
	for y := range h {
		for x := range w {
			if (x/checkSize+y/checkSize)%2 == 0 {
				s.Set(x, y, c1)
			} else {
				s.Set(x, y, c2)
			}
		}
	}
	return s
}

// NewSolidSprite creates a sprite filled with a single index.
func NewSolidSprite(w, h int, idx uint8) *Sprite {
	s := NewSprite(w, h)
	for i := range s.Pixels {
		s.Pixels[i] = idx
	}
	return s
}

// SpriteFromImage quantizes an image against a palette by nearest
// color. Fully transparent source pixels map to the color key.
func SpriteFromImage(img image.Image, palette [PaletteSize]Color) *Sprite {
	bounds := img.Bounds()
	s := NewSprite(bounds.Dx(), bounds.Dy())

	for y := range s.H {
		for x := range s.W {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			if a < 0x8000 {
				s.Set(x, y, TransparentIndex)
				continue
			}
			s.Set(x, y, nearestIndex(palette, uint8(r>>8), uint8(g>>8), uint8(b>>8)))
		}
	}
	return s
}

// LoadSprite loads an image file and quantizes it against a palette.
func LoadSprite(path string, palette [PaletteSize]Color) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite: %w", err)
	}
	return SpriteFromImage(img, palette), nil
}

func nearestIndex(palette [PaletteSize]Color, r, g, b uint8) uint8 {
	best := 0
	bestDist := 1 << 30
	for i, p := range palette {
		dr := int(p.R) - int(r)
		dg := int(p.G) - int(g)
		db := int(p.B) - int(b)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// Atlas maps material ids to sprites.
type Atlas struct {
	sprites map[int]*Sprite
}

// NewAtlas creates an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{sprites: make(map[int]*Sprite)}
}

// Add registers a sprite under a material id, replacing any previous
// sprite for that id.
func (a *Atlas) Add(id int, s *Sprite) {
	a.sprites[id] = s
}

// Sprite returns the sprite for a material id, or nil if unregistered.
func (a *Atlas) Sprite(id int) *Sprite {
	return a.sprites[id]
}

// Material returns the descriptor for a material id. Unregistered ids
// get the canonical sprite dimensions.
func (a *Atlas) Material(id int) Material {
	if s, ok := a.sprites[id]; ok {
		return Material{ID: id, W: s.W, H: s.H}
	}
	return MaterialID(id)
}
