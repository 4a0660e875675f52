package scene

import agl "github.com/asciigl/agl"

// MaterialKind selects the shading behavior of a material.
//
// The material set is closed: shading stages dispatch on the kind with an
// exhaustive switch rather than through an interface, which keeps per-
// primitive and per-fragment evaluation free of allocation and indirection.
type MaterialKind uint8

const (
	// KindUnlit shades every fragment with the material's base color,
	// ignoring lights.
	KindUnlit MaterialKind = iota

	// KindDiffuse lights each primitive once by its face normal against the
	// scene's directional light, tinted by the base color, then tone-mapped.
	KindDiffuse

	// KindUIText marks screen-space text billboards. The geometry reserves
	// cells (and wins depth tests) without writing color; the label itself
	// is drawn by the text pass on top of the quantized grid.
	KindUIText
)

// String returns the kind's stable name, also used by the JSON scene format.
func (k MaterialKind) String() string {
	switch k {
	case KindUnlit:
		return "unlit"
	case KindDiffuse:
		return "diffuse"
	case KindUIText:
		return "ui-text"
	}
	return "unknown"
}

// Material describes how an object's primitives are shaded.
// Materials are plain values: swap them between frames freely, never during
// a frame.
type Material struct {
	Kind  MaterialKind
	Color agl.RGB
}

// Unlit returns a flat-color material.
func Unlit(c agl.RGB) Material {
	return Material{Kind: KindUnlit, Color: c}
}

// Diffuse returns a directionally lit material with the given base color.
func Diffuse(c agl.RGB) Material {
	return Material{Kind: KindDiffuse, Color: c}
}

// UIText returns the material for screen-space text billboards.
func UIText() Material {
	return Material{Kind: KindUIText, Color: agl.Gray(1)}
}
