// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements the frame pipeline: scene objects are
// transformed to screen space, shaded per primitive, rasterized into a
// linear-light float framebuffer with depth testing, quantized into
// character cells, and finally overlaid with object label text.
package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/internal/raster"
	"github.com/asciigl/agl/scene"
	"github.com/asciigl/agl/term"
)

// ErrZeroResolution is returned by Frame for a grid with no rows or no
// columns. No partial grid is produced.
var ErrZeroResolution = errors.New("render: resolution must have positive columns and rows")

// Renderer produces frames from a scene.
//
// A Renderer owns the float framebuffer and depth buffer for one render
// target and reuses them across frames. It never mutates the scene. One
// frame is a single synchronous pass; a Renderer must not be shared between
// goroutines, and multiple targets need one Renderer (and one
// term.Quantizer) each.
type Renderer struct {
	cols, rows int

	// fb is the linear-light color accumulator, one cell per character.
	fb []agl.RGB
	// depth holds the nearest accepted fragment depth per cell, cleared
	// to 1 (the far plane).
	depth []float32
	// objAt records which object's fragment currently owns each cell,
	// -1 for background. The text pass uses it as a stencil.
	objAt []int32

	// prims is the per-frame list of clipped, shaded primitives.
	prims []shadedPrim
	// objs is the per-frame object table: screen bounds and label info in
	// scene iteration order.
	objs []objectFrame

	// cellAspectW and cellAspectH describe the terminal character cell
	// shape; the projection aspect ratio folds them in so geometry is not
	// squashed by tall cells.
	cellAspectW, cellAspectH int
}

type objectFrame struct {
	handle scene.Handle
	text   string
	// center is the object origin in clip space, used to anchor the label.
	center mgl32.Vec4
	// bounds is the screen-space bounding box of all cells the object's
	// primitives touched (before depth testing, so holes stay inside).
	minX, minY, maxX, maxY int
	touched                bool
}

// New creates a renderer with the standard terminal cell aspect ratio.
func New() *Renderer {
	w, h := agl.CharAspect()
	return &Renderer{cellAspectW: w, cellAspectH: h}
}

// SetCellAspect overrides the assumed character cell shape (width:height).
// Non-positive values are ignored.
func (r *Renderer) SetCellAspect(w, h int) {
	if w > 0 && h > 0 {
		r.cellAspectW, r.cellAspectH = w, h
	}
}

// Frame renders the scene at its current state into a cols x rows cell grid.
//
// The frame is a pure function of the scene state plus the quantizer's
// persistent dither state: rendering the same state twice through the same
// quantizer yields identical grids, and submission order of objects never
// changes the result (the depth test alone decides visibility).
func (r *Renderer) Frame(sc *scene.Scene, q *term.Quantizer, cols, rows int) (*term.Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrZeroResolution
	}

	r.beginFrame(sc, cols, rows)
	r.transformScene(sc)
	r.rasterize()

	grid := q.Frame(r.fb, cols, rows)
	r.textPass(grid, q)

	agl.Logger().Debug("frame rendered",
		"cols", cols, "rows", rows,
		"objects", len(r.objs), "primitives", len(r.prims))

	return grid, nil
}

// beginFrame resizes and clears the per-frame buffers.
func (r *Renderer) beginFrame(sc *scene.Scene, cols, rows int) {
	n := cols * rows
	if r.cols != cols || r.rows != rows {
		r.cols, r.rows = cols, rows
		r.fb = make([]agl.RGB, n)
		r.depth = make([]float32, n)
		r.objAt = make([]int32, n)
	}
	for i := range r.fb {
		r.fb[i] = sc.Background
		r.depth[i] = 1
		r.objAt[i] = -1
	}
	r.prims = r.prims[:0]
	r.objs = r.objs[:0]
}

// aspect returns the projection aspect ratio: the grid shape corrected for
// non-square character cells.
func (r *Renderer) aspect() float32 {
	return float32(r.cols*r.cellAspectW) / float32(r.rows*r.cellAspectH)
}

// rasterize walks every shaded primitive and resolves fragments against the
// depth buffer.
//
// Fragments are produced in primitive submission order, but acceptance
// depends only on interpolated depth: a cell keeps the nearest fragment seen
// so far, so the final image is independent of the order objects were added.
func (r *Renderer) rasterize() {
	for i := range r.prims {
		p := &r.prims[i]

		visit := func(x, y int, depth float32) {
			r.touch(p.obj, x, y)
			if depth < 0 {
				return
			}
			idx := y*r.cols + x
			if depth > r.depth[idx] {
				return
			}
			// Fragment accepted: fix depth, stencil, and color for this
			// cell unless an even nearer fragment arrives later.
			r.depth[idx] = depth
			r.objAt[idx] = int32(p.obj)
			if p.coverage > 0 {
				r.fb[idx] = fragmentShade(p)
			}
		}

		switch p.kind {
		case primTriangle:
			a, ok1 := r.toScreen(p.v[0])
			b, ok2 := r.toScreen(p.v[1])
			c, ok3 := r.toScreen(p.v[2])
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			raster.Triangle(r.cols, r.rows, a, b, c, visit)
		case primLine:
			a, ok1 := r.toScreen(p.v[0])
			b, ok2 := r.toScreen(p.v[1])
			if !ok1 || !ok2 {
				continue
			}
			raster.Line(r.cols, r.rows, a, b, visit)
		case primPoint:
			pt, ok := r.toScreen(p.v[0])
			if !ok {
				continue
			}
			raster.Point(r.cols, r.rows, pt, visit)
		}
	}
}

// touch grows the owning object's screen bounding box. Bounds are tracked
// before depth testing so that occluded interior cells still count as part
// of the object's on-screen extent.
func (r *Renderer) touch(obj, x, y int) {
	of := &r.objs[obj]
	if !of.touched {
		of.minX, of.minY, of.maxX, of.maxY = x, y, x, y
		of.touched = true
		return
	}
	if x < of.minX {
		of.minX = x
	}
	if y < of.minY {
		of.minY = y
	}
	if x > of.maxX {
		of.maxX = x
	}
	if y > of.maxY {
		of.maxY = y
	}
}

// toScreen performs the perspective divide and maps NDC to cell coordinates.
// It fails only for a degenerate w, which the clipper should have removed.
func (r *Renderer) toScreen(v mgl32.Vec4) (mgl32.Vec3, bool) {
	if v.W() == 0 {
		return mgl32.Vec3{}, false
	}
	ndc := mgl32.Vec3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
	halfW := float32(r.cols-1) / 2
	halfH := float32(r.rows-1) / 2
	return mgl32.Vec3{
		(ndc.X() + 1) * halfW,
		(1 - ndc.Y()) * halfH,
		ndc.Z(),
	}, true
}
