package agl

import (
	"image/color"

	icolor "github.com/asciigl/agl/internal/color"
)

// RGB is a linear-light color with float32 components.
// Components are nominally in [0, 1] but may exceed 1 before tone mapping.
// There is no alpha: coverage is tracked separately by the pipeline.
type RGB struct {
	R, G, B float32
}

// Color creates an RGB from linear components.
func Color(r, g, b float32) RGB {
	return RGB{R: r, G: g, B: b}
}

// Gray creates a linear gray level.
func Gray(v float32) RGB {
	return RGB{R: v, G: v, B: v}
}

// SRGB8 decodes 8-bit sRGB components into a linear RGB.
func SRGB8(r, g, b uint8) RGB {
	return RGB{
		R: icolor.SRGBToLinear(float32(r) / 255),
		G: icolor.SRGBToLinear(float32(g) / 255),
		B: icolor.SRGBToLinear(float32(b) / 255),
	}
}

// FromColor decodes a standard color.Color (assumed sRGB-encoded) into a
// linear RGB. Alpha is dropped.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: icolor.SRGBToLinear(float32(r) / 65535),
		G: icolor.SRGBToLinear(float32(g) / 65535),
		B: icolor.SRGBToLinear(float32(b) / 65535),
	}
}

// Add returns c+o componentwise.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the componentwise product, e.g. a base color tinted by light.
func (c RGB) Mul(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c scaled by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Lerp interpolates between c and o by t in [0, 1].
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp returns c with every component clamped to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// ToneMap compresses an over-range color into [0, 1) with the Reinhard
// operator c/(1+c), applied per component.
func (c RGB) ToneMap() RGB {
	return RGB{
		c.R / (1 + c.R),
		c.G / (1 + c.G),
		c.B / (1 + c.B),
	}
}

// Luma returns the perceptual luminance of the color.
func (c RGB) Luma() float32 {
	return icolor.Luma(c.R, c.G, c.B)
}

// SRGB returns the gamma-encoded (display) form of the color, clamped.
// Quantization operates on this form so that adjacent output levels are
// perceptually uniform steps rather than linear-light uniform.
func (c RGB) SRGB() RGB {
	c = c.Clamp()
	return RGB{
		icolor.LinearToSRGB(c.R),
		icolor.LinearToSRGB(c.G),
		icolor.LinearToSRGB(c.B),
	}
}

// Color converts the linear RGB to a standard, sRGB-encoded color.Color.
func (c RGB) Color() color.Color {
	s := c.SRGB()
	return color.NRGBA{
		R: uint8(s.R*255 + 0.5),
		G: uint8(s.G*255 + 0.5),
		B: uint8(s.B*255 + 0.5),
		A: 255,
	}
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
