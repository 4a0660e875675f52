package agl

// Ramp is an ordered sequence of glyphs from visually sparse to dense,
// used to represent intensity on a character grid.
type Ramp []rune

// DefaultRamp is the standard ten-step intensity ramp.
var DefaultRamp = Ramp(" .:-=+*%#@")

// Index maps an intensity in [0, 1] to the nearest ramp index.
// Out-of-range intensities clamp to the ends of the ramp.
func (r Ramp) Index(intensity float32) int {
	if len(r) == 0 {
		return 0
	}
	n := len(r) - 1
	i := int(intensity*float32(n) + 0.5)
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Glyph returns the glyph for an intensity in [0, 1].
func (r Ramp) Glyph(intensity float32) rune {
	if len(r) == 0 {
		return ' '
	}
	return r[r.Index(intensity)]
}

// Level returns the representational intensity of ramp index i: the fraction
// of the cell the glyph is treated as covering.
func (r Ramp) Level(i int) float32 {
	if len(r) < 2 {
		return 0
	}
	return float32(i) / float32(len(r)-1)
}

// CharAspect returns the assumed width:height aspect ratio of terminal
// characters. Cells are about twice as tall as they are wide, so the result
// is (1, 2); the renderer folds this into the projection so circles stay
// round on a character grid.
func CharAspect() (w, h int) {
	return 1, 2
}
