package render

import (
	"image"
	"image/color"
	"testing"
)

func TestSpriteSampleWrap(t *testing.T) {
	s := NewCheckerSprite(16, 16, 8, 1, 2)

	tests := []struct {
		name string
		u, v float64
		want uint8
	}{
		{"origin", 0, 0, 1},
		{"second check", 8, 0, 2},
		{"wrap right", 16, 0, 1},
		{"wrap far", 40, 0, 2},
		{"wrap negative", -1, 0, 2},
		{"wrap down", 0, 24, 2},
		{"fractional", 7.9, 0.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %d, want %d", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestSpriteSetBounds(t *testing.T) {
	s := NewSprite(4, 4)
	s.Set(-1, 0, 9)
	s.Set(0, -1, 9)
	s.Set(4, 0, 9)
	s.Set(0, 4, 9)
	for _, p := range s.Pixels {
		if p != 0 {
			t.Fatal("out-of-bounds Set wrote a pixel")
		}
	}
}

func TestAtlasLookup(t *testing.T) {
	a := NewAtlas()
	a.Add(1, NewSolidSprite(32, 8, 5))

	if a.Sprite(1) == nil {
		t.Fatal("registered sprite not found")
	}
	if a.Sprite(99) != nil {
		t.Error("unregistered id returned a sprite")
	}

	if m := a.Material(1); m.W != 32 || m.H != 8 {
		t.Errorf("registered material = %dx%d, want 32x8", m.W, m.H)
	}
	if m := a.Material(99); m.W != SpriteSize || m.H != SpriteSize {
		t.Errorf("fallback material = %dx%d, want %dx%d", m.W, m.H, SpriteSize, SpriteSize)
	}
}

func TestSpriteFromImageColorKey(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 0})          // transparent
	img.Set(1, 0, color.RGBA{255, 0, 77, 255})     // pico-8 red

	s := SpriteFromImage(img, DefaultPalette())
	if got := s.Pixels[0]; got != TransparentIndex {
		t.Errorf("transparent pixel quantized to %d, want color key %d", got, TransparentIndex)
	}
	if got := s.Pixels[1]; got != 8 {
		t.Errorf("red pixel quantized to %d, want palette index 8", got)
	}
}
