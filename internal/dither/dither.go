// Package dither holds the error-diffusion state used by the quantizer.
//
// Quantizing a float color down to a handful of glyph/color combinations
// introduces a rounding error at every cell. Error diffusion distributes that
// error to not-yet-processed neighbor cells with a fixed Floyd-Steinberg
// kernel, so the average intensity over a neighborhood tracks the true value
// even though each individual cell is restricted to the discrete output set.
//
// The kernel weights, relative to the cell being quantized:
//
//	        *    7/16
//	3/16  5/16   1/16
//
// Cells are processed in a fixed left-to-right, top-to-bottom scan, so the
// result is fully deterministic for a given input buffer and state.
package dither

// Weights of the diffusion kernel, in sixteenths.
const (
	wRight     = 7
	wDownLeft  = 3
	wDown      = 5
	wDownRight = 1
)

// State is the accumulated quantization error per cell and channel.
//
// It persists across frames: error that the kernel would push past the right
// or bottom edge of the grid is deposited into a carry buffer and fed back
// into the same cells on the next frame, which keeps animated gradients from
// collecting a bias along the edges. State is reset whenever the resolution
// changes; the owner must also reset it on a color mode change.
//
// A State belongs to exactly one render target and is not safe for
// concurrent use.
type State struct {
	cols, rows int
	cur        []float32 // error consumed by the current frame, 3 floats per cell
	carry      []float32 // error deposited for the next frame
}

// New returns an empty dither state.
func New() *State {
	return &State{}
}

// Reset clears all accumulated error.
func (s *State) Reset() {
	s.cols, s.rows = 0, 0
	s.cur = nil
	s.carry = nil
}

// BeginFrame prepares the state for quantizing a cols x rows buffer.
// If the resolution changed since the previous frame all accumulated error
// is discarded; otherwise the carry from the previous frame becomes the
// incoming error of this one.
func (s *State) BeginFrame(cols, rows int) {
	if cols != s.cols || rows != s.rows {
		s.cols, s.rows = cols, rows
		n := cols * rows * 3
		s.cur = make([]float32, n)
		s.carry = make([]float32, n)
		return
	}
	s.cur, s.carry = s.carry, s.cur
	clear(s.carry)
}

// Take returns the error accumulated at (x, y) for this frame.
func (s *State) Take(x, y int) (r, g, b float32) {
	i := (y*s.cols + x) * 3
	return s.cur[i], s.cur[i+1], s.cur[i+2]
}

// Diffuse distributes the quantization error of cell (x, y) to its
// neighbors. Shares aimed past the grid edge go to the carry buffer at the
// clamped coordinate and resurface in the next frame.
func (s *State) Diffuse(x, y int, r, g, b float32) {
	s.add(x+1, y, r, g, b, wRight)
	s.add(x-1, y+1, r, g, b, wDownLeft)
	s.add(x, y+1, r, g, b, wDown)
	s.add(x+1, y+1, r, g, b, wDownRight)
}

func (s *State) add(x, y int, r, g, b float32, w float32) {
	buf := s.cur
	if x >= s.cols || y >= s.rows {
		buf = s.carry
		if x >= s.cols {
			x = s.cols - 1
		}
		if y >= s.rows {
			y = s.rows - 1
		}
	}
	if x < 0 {
		x = 0
	}
	i := (y*s.cols + x) * 3
	k := w / 16
	buf[i] += r * k
	buf[i+1] += g * k
	buf[i+2] += b * k
}
