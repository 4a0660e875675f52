// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/scene"
)

type primKind uint8

const (
	primTriangle primKind = iota
	primLine
	primPoint
)

// shadedPrim is a primitive after transform, primitive shading and near-plane
// clipping. Vertices are in clip space; the color is flat across the
// primitive. Coverage 0 marks a stencil-only primitive that occupies cells
// and depth but leaves the framebuffer untouched.
type shadedPrim struct {
	kind     primKind
	v        [3]mgl32.Vec4
	color    agl.RGB
	coverage float32
	obj      int
}

// transformScene walks the scene in slot order and fills r.prims and r.objs.
func (r *Renderer) transformScene(sc *scene.Scene) {
	vp := sc.Camera.ViewProjection(r.aspect())
	ui := uiViewProjection()

	sc.Each(func(h scene.Handle, o *scene.Object) {
		m := vp
		if o.Material.Kind == scene.KindUIText {
			// Label billboards live in their own fixed screen-aligned
			// space, independent of the scene camera.
			m = ui
		}
		mvp := m.Mul4(o.ModelMatrix())

		obj := len(r.objs)
		r.objs = append(r.objs, objectFrame{
			handle: h,
			text:   o.Text,
			center: mvp.Mul4x1(mgl32.Vec4{0, 0, 0, 1}),
		})

		if o.Mesh != nil {
			r.shadeObject(obj, o, mvp, o.ModelMatrix(), sc.Light)
		}
	})
}

// shadeObject runs the primitive shader for one object and clips the results
// against the near plane.
func (r *Renderer) shadeObject(obj int, o *scene.Object, mvp, model mgl32.Mat4, light scene.Light) {
	base := o.Material.Color
	coverage := float32(1)
	if o.Material.Kind == scene.KindUIText {
		coverage = 0
	}

	o.Mesh.EachTriangle(func(a, b, c mgl32.Vec3) {
		col := base
		if o.Material.Kind == scene.KindDiffuse {
			col = diffuseShade(base, light, model, a, b, c)
		}
		r.clipTriangle(shadedPrim{
			kind:     primTriangle,
			v:        [3]mgl32.Vec4{transformVert(mvp, a), transformVert(mvp, b), transformVert(mvp, c)},
			color:    col,
			coverage: coverage,
			obj:      obj,
		})
	})

	o.Mesh.EachLine(func(a, b mgl32.Vec3) {
		r.clipLine(shadedPrim{
			kind:     primLine,
			v:        [3]mgl32.Vec4{transformVert(mvp, a), transformVert(mvp, b)},
			color:    base,
			coverage: coverage,
			obj:      obj,
		})
	})

	o.Mesh.EachPoint(func(p mgl32.Vec3) {
		v := transformVert(mvp, p)
		if behindNear(v) {
			return
		}
		r.prims = append(r.prims, shadedPrim{
			kind:     primPoint,
			v:        [3]mgl32.Vec4{v},
			color:    base,
			coverage: coverage,
			obj:      obj,
		})
	})
}

// diffuseShade lights a triangle with a single directional light and a flat
// ambient term, using the face normal in world space. The result is tone
// mapped so hot highlights compress instead of clipping.
func diffuseShade(base agl.RGB, light scene.Light, model mgl32.Mat4, a, b, c mgl32.Vec3) agl.RGB {
	wa := model.Mul4x1(a.Vec4(1)).Vec3()
	wb := model.Mul4x1(b.Vec4(1)).Vec3()
	wc := model.Mul4x1(c.Vec4(1)).Vec3()

	n := wa.Sub(wb).Cross(wc.Sub(wb))
	if n.Len() == 0 {
		return base.Mul(light.Ambient).ToneMap()
	}
	n = n.Normalize()

	d := n.Dot(light.Dir)
	if d < 0 {
		d = 0
	}
	lit := light.Ambient.Add(light.Color.Scale(d))
	return base.Mul(lit).ToneMap()
}

func transformVert(mvp mgl32.Mat4, v mgl32.Vec3) mgl32.Vec4 {
	return mvp.Mul4x1(v.Vec4(1))
}

// behindNear reports whether a clip-space vertex lies behind the near plane.
// The projection maps the near plane to clip z = 0.
func behindNear(v mgl32.Vec4) bool {
	return v.Z()/absf(v.W()) < 0
}

// nearIntersect returns the point where the segment from the in-front vertex
// to the behind vertex crosses the near plane.
func nearIntersect(in, out mgl32.Vec4) mgl32.Vec4 {
	t := -in.Z() / (out.Z() - in.Z())
	return in.Add(out.Sub(in).Mul(t))
}

// clipTriangle clips one triangle against the near plane and appends the
// surviving geometry. A triangle with one vertex behind produces two; with
// two behind, one; with all three behind, none. Winding order is preserved
// so backface culling stays correct.
func (r *Renderer) clipTriangle(p shadedPrim) {
	b0 := behindNear(p.v[0])
	b1 := behindNear(p.v[1])
	b2 := behindNear(p.v[2])

	n := 0
	if b0 {
		n++
	}
	if b1 {
		n++
	}
	if b2 {
		n++
	}

	switch n {
	case 0:
		r.prims = append(r.prims, p)
	case 1:
		v0, v1, v2 := p.v[0], p.v[1], p.v[2]
		var q0, q1 shadedPrim
		switch {
		case b0:
			i01 := nearIntersect(v1, v0)
			i20 := nearIntersect(v2, v0)
			q0, q1 = p, p
			q0.v = [3]mgl32.Vec4{i01, v1, v2}
			q1.v = [3]mgl32.Vec4{i01, v2, i20}
		case b1:
			i01 := nearIntersect(v0, v1)
			i12 := nearIntersect(v2, v1)
			q0, q1 = p, p
			q0.v = [3]mgl32.Vec4{v0, i01, i12}
			q1.v = [3]mgl32.Vec4{v0, i12, v2}
		default:
			i12 := nearIntersect(v1, v2)
			i20 := nearIntersect(v0, v2)
			q0, q1 = p, p
			q0.v = [3]mgl32.Vec4{v0, v1, i12}
			q1.v = [3]mgl32.Vec4{v0, i12, i20}
		}
		r.prims = append(r.prims, q0, q1)
	case 2:
		switch {
		case !b0:
			p.v[1] = nearIntersect(p.v[0], p.v[1])
			p.v[2] = nearIntersect(p.v[0], p.v[2])
		case !b1:
			p.v[0] = nearIntersect(p.v[1], p.v[0])
			p.v[2] = nearIntersect(p.v[1], p.v[2])
		default:
			p.v[0] = nearIntersect(p.v[2], p.v[0])
			p.v[1] = nearIntersect(p.v[2], p.v[1])
		}
		r.prims = append(r.prims, p)
	case 3:
		// Entirely behind the camera.
	}
}

// clipLine clips one segment against the near plane.
func (r *Renderer) clipLine(p shadedPrim) {
	b0 := behindNear(p.v[0])
	b1 := behindNear(p.v[1])
	switch {
	case b0 && b1:
		return
	case b0:
		p.v[0] = nearIntersect(p.v[1], p.v[0])
	case b1:
		p.v[1] = nearIntersect(p.v[0], p.v[1])
	}
	r.prims = append(r.prims, p)
}

// uiViewProjection is the fixed camera for screen-aligned label geometry: an
// orthographic 100 x 100 unit viewport looking along +Y with Z up.
func uiViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		mgl32.Vec3{0, 0, 1},
	)
	proj := mgl32.Ortho(0, 100, 0, 100, 1, 1000)
	return scene.DepthRemap().Mul4(proj).Mul4(view)
}

// fragmentShade resolves the final framebuffer color for an accepted
// fragment. Shading is flat per primitive, so this is a plain lookup; it is
// split out so per-fragment effects have a single place to live.
func fragmentShade(p *shadedPrim) agl.RGB {
	return p.color
}

func absf(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
