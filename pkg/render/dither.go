package render

// FillPattern is a 4x4 ordered-dither bitmask. Bit (y&3)*4+(x&3) set
// means the pixel is skipped, letting whatever was painted underneath
// show through. It stands in for alpha blending on an indexed surface.
type FillPattern uint16

// PatternSolid draws every pixel.
const PatternSolid FillPattern = 0

// PatternFlame is the checkerboard used for flame faces.
const PatternFlame FillPattern = 0xa5a5

// Skip reports whether the pixel at (x, y) is masked out.
func (p FillPattern) Skip(x, y int) bool {
	return p&(1<<uint((y&3)*4+(x&3))) != 0
}

// Density returns the fraction of pixels the pattern skips.
func (p FillPattern) Density() float64 {
	n := 0
	for i := 0; i < 16; i++ {
		if p&(1<<uint(i)) != 0 {
			n++
		}
	}
	return float64(n) / 16
}

// bayer4 is the 4x4 Bayer threshold matrix, row-major.
var bayer4 = [16]uint8{
	0, 8, 2, 10,
	12, 4, 14, 6,
	3, 11, 1, 9,
	15, 7, 13, 5,
}

// ditherMask builds a pattern skipping the n lowest-threshold cells
// of the Bayer matrix, distributing the skipped pixels evenly.
func ditherMask(n int) FillPattern {
	var p FillPattern
	for i, t := range bayer4 {
		if int(t) < n {
			p |= 1 << uint(i)
		}
	}
	return p
}

// fogPatterns holds the eight fog density tiers: tier 0 is solid,
// tier 7 skips 14 of 16 pixels.
var fogPatterns = [8]FillPattern{
	ditherMask(0),
	ditherMask(2),
	ditherMask(4),
	ditherMask(6),
	ditherMask(8),
	ditherMask(10),
	ditherMask(12),
	ditherMask(14),
}

// smokePatterns holds the four smoke density tiers, densest first.
var smokePatterns = [4]FillPattern{
	ditherMask(4),
	ditherMask(7),
	ditherMask(10),
	ditherMask(13),
}

// FogPattern maps a fog opacity in [0,1] to one of eight dither
// tiers.
func FogPattern(opacity float64) FillPattern {
	tier := int(opacity * 8)
	if tier < 0 {
		tier = 0
	}
	if tier > 7 {
		tier = 7
	}
	return fogPatterns[tier]
}

// SmokePattern maps a smoke density in (0,1] to one of four dither
// tiers. Density 1 gives the densest tier.
func SmokePattern(density float64) FillPattern {
	tier := int((1 - density) * 4)
	if tier < 0 {
		tier = 0
	}
	if tier > 3 {
		tier = 3
	}
	return smokePatterns[tier]
}
