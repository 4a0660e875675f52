// Package agl is a dependency-light 3D rendering core that outputs a grid of
// character cells instead of pixels.
//
// Rendering proceeds in stages: object primitives are transformed and shaded
// per primitive, rasterized into per-cell fragments with depth testing,
// shaded into a linear-light float framebuffer, and finally quantized into
// glyph+color cells with error-diffusion dithering. A last pass overlays
// object label text on top of the quantized grid.
//
// Shading in full float color space before quantization is what keeps the
// image smooth under animation: dithering distributes the rounding error of
// the tiny glyph/color output set across neighboring cells, so a region
// averages out to the true color even though no single cell can show it.
//
// The core performs no I/O and is agnostic to the terminal color capability
// of the consumer; the term package encodes cells for mono, 16-color,
// 256-color, and truecolor targets. Entry point for rendering is
// render.Renderer; scene state lives in the scene package; host embeddings
// (native, scripting, wasm) go through integration/embed.
package agl
