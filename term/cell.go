// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package term quantizes the renderer's float framebuffer into terminal
// cells: a glyph plus a color encoding matched to the consumer's terminal
// capability.
package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one character position of the output grid.
type Cell struct {
	// Glyph is the character to display.
	Glyph rune

	// FG is the foreground color. ColorDefault means the terminal's own
	// foreground (mono mode never sets a color).
	FG tcell.Color
}

// Grid is the final output of a frame: cols x rows cells in row-major order.
type Grid struct {
	cols, rows int
	cells      []Cell
}

// NewGrid creates a cleared grid. Dimensions must be positive.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows}
	g.cells = make([]Cell, cols*rows)
	for i := range g.cells {
		g.cells[i].Glyph = ' '
	}
	return g
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) Cell {
	return g.cells[y*g.cols+x]
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y*g.cols+x] = c
}

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []Cell { return g.cells }

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.cols != o.cols || g.rows != o.rows {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the glyphs only, one row per line. Colors are dropped;
// this is the form tests and logs compare against.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			b.WriteRune(g.cells[y*g.cols+x].Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
