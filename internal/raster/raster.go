// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster walks screen-space primitives and reports the cells they
// cover. It is pure geometry: colors and depth testing are the caller's
// concern.
package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Visitor receives one call per covered cell with the interpolated depth at
// that cell. Coordinates are always within [0,w) x [0,h). The sequence of
// calls for a given primitive is fixed; there is no way to restart it other
// than walking the primitive again.
type Visitor func(x, y int, depth float32)

// EdgeFunction computes the signed parallelogram area of (a, b, c). The sign
// tells which side of the directed edge a->b the point c lies on.
func EdgeFunction(a, b, c mgl32.Vec2) float32 {
	return (c.X()-a.X())*(b.Y()-a.Y()) - (c.Y()-a.Y())*(b.X()-a.X())
}

// topLeft reports whether the directed edge p->q is a top or left edge of a
// front-facing triangle in screen coordinates (y grows downward).
// Cells whose center lies exactly on such an edge belong to the triangle;
// centers on the opposite (bottom/right) edges do not. Two triangles sharing
// an edge therefore cover every boundary cell exactly once: no gaps, no
// double shading.
func topLeft(p, q mgl32.Vec2) bool {
	if p.Y() == q.Y() {
		return q.X() < p.X()
	}
	return q.Y() > p.Y()
}

// inside applies the tie rule to a single edge weight.
func inside(w float32, p, q mgl32.Vec2) bool {
	if w > 0 {
		return true
	}
	return w == 0 && topLeft(p, q)
}

// Triangle rasterizes a screen-space triangle over cell centers.
//
// Vertices carry the screen position in X/Y and the depth in Z. Triangles
// with non-positive signed area are skipped entirely; this both rejects
// degenerate (zero-area) triangles and culls back faces.
func Triangle(w, h int, a, b, c mgl32.Vec3, visit Visitor) {
	a2 := a.Vec2()
	b2 := b.Vec2()
	c2 := c.Vec2()

	area := EdgeFunction(a2, b2, c2)
	if area <= 0 {
		return
	}

	minX := int(math.Floor(float64(min3(a.X(), b.X(), c.X()))))
	maxX := int(math.Ceil(float64(max3(a.X(), b.X(), c.X()))))
	minY := int(math.Floor(float64(min3(a.Y(), b.Y(), c.Y()))))
	maxY := int(math.Ceil(float64(max3(a.Y(), b.Y(), c.Y()))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if maxY > h-1 {
		maxY = h - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec2{float32(x), float32(y)}

			wa := EdgeFunction(b2, c2, p)
			wb := EdgeFunction(c2, a2, p)
			wc := EdgeFunction(a2, b2, p)

			if !inside(wa, b2, c2) || !inside(wb, c2, a2) || !inside(wc, a2, b2) {
				continue
			}

			wa /= area
			wb /= area
			wc /= area
			visit(x, y, wa*a.Z()+wb*b.Z()+wc*c.Z())
		}
	}
}

// Line rasterizes a screen-space segment with a Bresenham walk. Depth is
// interpolated by the cell's relative distance to the two endpoints.
func Line(w, h int, a, b mgl32.Vec3, visit Visitor) {
	x0 := int(math.Round(float64(a.X())))
	y0 := int(math.Round(float64(a.Y())))
	x1 := int(math.Round(float64(b.X())))
	y1 := int(math.Round(float64(b.Y())))

	plot := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		p := mgl32.Vec2{float32(x), float32(y)}
		da := a.Vec2().Sub(p).Len()
		db := b.Vec2().Sub(p).Len()
		total := da + db
		if total == 0 {
			visit(x, y, a.Z())
			return
		}
		t := da / total
		visit(x, y, a.Z()+(b.Z()-a.Z())*t)
	}

	if abs(y1-y0) < abs(x1-x0) {
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		plotLineLow(x0, y0, x1, y1, plot)
	} else {
		if y0 > y1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		plotLineHigh(x0, y0, x1, y1, plot)
	}
}

func plotLineLow(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}
	d := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		plot(x, y)
		if d > 0 {
			y += yi
			d += 2 * (dy - dx)
		} else {
			d += 2 * dy
		}
	}
}

func plotLineHigh(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}
	d := 2*dx - dy
	x := x0
	for y := y0; y <= y1; y++ {
		plot(x, y)
		if d > 0 {
			x += xi
			d += 2 * (dx - dy)
		} else {
			d += 2 * dx
		}
	}
}

// Point rasterizes a single-cell point.
func Point(w, h int, p mgl32.Vec3, visit Visitor) {
	x := int(math.Round(float64(p.X())))
	y := int(math.Round(float64(p.Y())))
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	visit(x, y, p.Z())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
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
