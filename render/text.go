// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"golang.org/x/text/width"

	"github.com/asciigl/agl/term"
)

// textPass overlays each labeled object's text on the quantized grid.
//
// The label is centered on the object's projected origin, clamped to stay
// inside the object's screen bounding box, and runs after quantization so
// label glyphs are never dithered away. Around the label the grid is
// darkened one row above and below plus one cell to each side, which keeps
// the text legible against busy geometry. Label glyphs replace only cells
// whose nearest fragment belongs to the labeled object, so an occluding
// object in front keeps its own cells.
func (r *Renderer) textPass(g *term.Grid, q *term.Quantizer) {
	for obj := range r.objs {
		of := &r.objs[obj]
		if of.text == "" || !of.touched {
			continue
		}
		// A box shorter than three rows has no room for the halo rows.
		if of.maxY-of.minY < 3 {
			continue
		}

		runes := fitLabel(of.text, of.maxX-of.minX-2)
		if len(runes) == 0 {
			continue
		}
		w := labelWidth(runes)
		left := w / 2
		right := w - left - 1

		midX, midY, ok := r.labelAnchor(of, left, right)
		if !ok {
			continue
		}

		// The halo extends one cell past the label on every side. Only
		// cells whose nearest fragment belongs to this object are dimmed;
		// an occluding object in front keeps its brightness. The stencil
		// lookup also rejects cells past the grid edge.
		for y := midY - 1; y <= midY+1; y++ {
			for x := midX - left - 1; x <= midX+right+1; x++ {
				if y == midY && x >= midX-left && x <= midX+right {
					// The label body itself stays at full brightness.
					continue
				}
				if r.stencilAt(x, y) != int32(obj) {
					continue
				}
				q.Darken(g, x, y)
			}
		}

		x := midX - left
		for _, c := range runes {
			if r.stencilAt(x, midY) == int32(obj) {
				q.Embed(g, x, midY, c)
			}
			x += runeCells(c)
		}
	}
}

// labelAnchor projects the object origin to a cell and clamps it so the
// whole label plus halo fits inside the object's bounding box.
func (r *Renderer) labelAnchor(of *objectFrame, left, right int) (x, y int, ok bool) {
	c := of.center
	if c.W() == 0 {
		return 0, 0, false
	}
	sx := int((c.X()/c.W()+1)*float32(r.cols-1)/2 + 0.5)
	sy := int((1-c.Y()/c.W())*float32(r.rows-1)/2 + 0.5)

	y = clampInt(sy, of.minY+1, of.maxY-1)
	x = clampInt(sx, of.minX+left+1, of.maxX-right-1)
	if x-left-1 < of.minX-1 || x+right+1 > of.maxX+1 {
		return 0, 0, false
	}
	return x, y, true
}

func (r *Renderer) stencilAt(x, y int) int32 {
	if x < 0 || x >= r.cols || y < 0 || y >= r.rows {
		return -1
	}
	return r.objAt[y*r.cols+x]
}

// fitLabel truncates a label to at most max cells, counting East Asian wide
// runes as two cells.
func fitLabel(s string, max int) []rune {
	if max <= 0 {
		return nil
	}
	var runes []rune
	used := 0
	for _, c := range s {
		w := runeCells(c)
		if used+w > max {
			break
		}
		runes = append(runes, c)
		used += w
	}
	return runes
}

func labelWidth(runes []rune) int {
	w := 0
	for _, c := range runes {
		w += runeCells(c)
	}
	return w
}

// runeCells returns how many terminal cells a rune occupies.
func runeCells(c rune) int {
	switch width.LookupRune(c).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
