// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package term

import (
	"github.com/gdamore/tcell/v2"

	agl "github.com/asciigl/agl"
	icolor "github.com/asciigl/agl/internal/color"
	"github.com/asciigl/agl/internal/dither"
)

// Quantizer converts a linear-light float framebuffer into a Grid of
// glyph+color cells.
//
// The quantizer owns the dithering state for one render target. The state
// carries quantization error across frames, so two targets must never share
// a Quantizer; conversely, rendering the same framebuffer through the same
// quantizer state twice produces identical grids.
//
// Quantization works in gamma-encoded sRGB space: the eye perceives equal
// sRGB steps as equal brightness steps, so ramp levels spaced there look
// uniform. Each cell picks the nearest glyph by intensity and the nearest
// encodable color, then hands its rounding error to neighboring cells
// through the error-diffusion kernel in internal/dither.
type Quantizer struct {
	mode      ColorMode
	supported ColorMode
	ramp      agl.Ramp

	state    *dither.State
	lastMode ColorMode
	started  bool
}

// NewQuantizer creates a quantizer for the requested color mode with the
// default glyph ramp and no terminal capability restriction.
func NewQuantizer(mode ColorMode) *Quantizer {
	return &Quantizer{
		mode:      mode,
		supported: TrueColor,
		ramp:      agl.DefaultRamp,
		state:     dither.New(),
	}
}

// SetMode changes the requested color mode.
func (q *Quantizer) SetMode(mode ColorMode) { q.mode = mode }

// SetSupported caps the color mode at what the consumer's terminal can
// display. Requests beyond the cap fall back to the cap.
func (q *Quantizer) SetSupported(mode ColorMode) { q.supported = mode }

// SetRamp replaces the glyph ramp. Ramps shorter than two glyphs are
// ignored.
func (q *Quantizer) SetRamp(r agl.Ramp) {
	if len(r) >= 2 {
		q.ramp = r
	}
}

// Mode returns the effective color mode after capability fallback.
func (q *Quantizer) Mode() ColorMode { return q.mode.Clamp(q.supported) }

// Ramp returns the active glyph ramp.
func (q *Quantizer) Ramp() agl.Ramp { return q.ramp }

// Frame quantizes a cols x rows framebuffer into a fresh grid.
// fb is row-major, one linear RGB value per cell.
//
// The dithering state persists across calls and resets itself when the
// resolution or the effective color mode changes, so the first frame after
// such a change starts from zero accumulated error.
func (q *Quantizer) Frame(fb []agl.RGB, cols, rows int) *Grid {
	eff := q.Mode()
	if q.started && eff != q.lastMode {
		q.state.Reset()
	}
	q.lastMode = eff
	q.started = true
	q.state.BeginFrame(cols, rows)

	g := NewGrid(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s := fb[y*cols+x].SRGB()
			er, eg, eb := q.state.Take(x, y)
			vr, vg, vb := s.R+er, s.G+eg, s.B+eb

			idx := q.ramp.Index(icolor.Luma(vr, vg, vb))
			cov := q.ramp.Level(idx)
			fg, rr, rg, rb := encodeColor(eff, vr, vg, vb, cov)

			q.state.Diffuse(x, y,
				clampErr(vr-rr), clampErr(vg-rg), clampErr(vb-rb))
			g.Set(x, y, Cell{Glyph: q.ramp[idx], FG: fg})
		}
	}
	return g
}

// encodeColor picks the output color for a cell and returns it together
// with the sRGB value the cell will actually appear as: the chosen color
// weighted by the glyph's coverage. The difference between the true value
// and that representation is what gets diffused.
func encodeColor(mode ColorMode, vr, vg, vb, cov float32) (fg tcell.Color, rr, rg, rb float32) {
	if cov <= 0 {
		// Empty glyph: nothing shows regardless of color.
		return tcell.ColorDefault, 0, 0, 0
	}

	switch mode {
	case Mono:
		return tcell.ColorDefault, cov, cov, cov

	case Palette16:
		tr, tg, tb := colorTarget(vr, vg, vb, cov)
		p := palette16[nearest16(tr, tg, tb)]
		return p.color, p.r * cov, p.g * cov, p.b * cov

	case Palette256:
		tr, tg, tb := colorTarget(vr, vg, vb, cov)
		i := nearestPalette(palette256, tr, tg, tb)
		p := palette256[i]
		return p.color, p.r * cov, p.g * cov, p.b * cov

	default: // TrueColor
		m := max3(vr, vg, vb)
		if m <= 0 {
			return tcell.ColorDefault, 0, 0, 0
		}
		cr, cg, cb := clamp01(vr/m), clamp01(vg/m), clamp01(vb/m)
		fg = tcell.NewRGBColor(
			int32(cr*255+0.5), int32(cg*255+0.5), int32(cb*255+0.5))
		return fg, cr * cov, cg * cov, cb * cov
	}
}

// colorTarget is the color that, drawn at the given glyph coverage, would
// best reproduce the true value: the value scaled back up by the coverage.
func colorTarget(vr, vg, vb, cov float32) (r, g, b float32) {
	return clamp01(vr / cov), clamp01(vg / cov), clamp01(vb / cov)
}

// Darken dims the cell at (x, y) to increase contrast around overlay text.
// The glyph drops to the faintest non-empty ramp step and the color, when
// present, is halved (and re-matched into the palette for palette modes).
func (q *Quantizer) Darken(g *Grid, x, y int) {
	c := g.At(x, y)
	if c.Glyph != q.ramp[0] {
		c.Glyph = q.ramp[1]
	}
	if c.FG.Valid() {
		cr, cg, cb := c.FG.RGB()
		r := float32(cr) / 255 / 2
		gg := float32(cg) / 255 / 2
		b := float32(cb) / 255 / 2
		switch q.Mode() {
		case Palette16:
			c.FG = palette16[nearest16(r, gg, b)].color
		case Palette256:
			c.FG = palette256[nearestPalette(palette256, r, gg, b)].color
		default:
			c.FG = tcell.NewRGBColor(
				int32(r*255+0.5), int32(gg*255+0.5), int32(b*255+0.5))
		}
	}
	g.Set(x, y, c)
}

// Embed writes an overlay glyph into the cell at (x, y), keeping its color.
func (q *Quantizer) Embed(g *Grid, x, y int, r rune) {
	c := g.At(x, y)
	c.Glyph = r
	g.Set(x, y, c)
}

type paletteEntry struct {
	color   tcell.Color
	r, g, b float32
}

func buildPalette(n int) []paletteEntry {
	p := make([]paletteEntry, n)
	for i := range p {
		c := tcell.PaletteColor(i)
		r, g, b := c.RGB()
		p[i] = paletteEntry{
			color: c,
			r:     float32(r) / 255,
			g:     float32(g) / 255,
			b:     float32(b) / 255,
		}
	}
	return p
}

var (
	palette16  = buildPalette(16)
	palette256 = buildPalette(256)
)

// hueSector holds the ANSI code of the dark variant for each 60-degree hue
// sector, red first. The light variant is eight codes up.
var hueSector = [6]int{1, 3, 2, 6, 4, 5}

// nearest16 matches a target into the 16-color palette in HSV space rather
// than by RGB distance. Desaturated targets map to the four grayscale
// entries by value; saturated ones pick a 60-degree hue sector and then the
// dark or light variant by value. Matching on hue keeps dithered gradients
// inside one color family instead of hopping between unrelated entries that
// happen to be close in RGB.
func nearest16(r, g, b float32) int {
	h, s, v := icolor.RGBToHSV(r, g, b)
	if s < 0.3 {
		// Grayscale entries sit at values 0, 0.5, 0.75 and 1; split at the
		// midpoints.
		switch {
		case v < 0.25:
			return 0
		case v < 0.625:
			return 8
		case v < 0.875:
			return 7
		default:
			return 15
		}
	}
	idx := hueSector[int(h/60+0.5)%6]
	if v >= 0.75 {
		idx += 8
	}
	return idx
}

// nearestPalette finds the palette entry closest to the target in sRGB
// space. Ties resolve to the lowest index, keeping the match deterministic.
func nearestPalette(p []paletteEntry, r, g, b float32) int {
	best := 0
	bestDist := float32(-1)
	for i := range p {
		dr := p[i].r - r
		dg := p[i].g - g
		db := p[i].b - b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func clampErr(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
