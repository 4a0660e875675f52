package term

// ColorMode selects how quantized cell colors are encoded for the terminal.
type ColorMode uint8

const (
	// Mono encodes intensity purely through the glyph ramp; cells carry no
	// color.
	Mono ColorMode = iota

	// Palette16 restricts colors to the 16 standard ANSI colors.
	Palette16

	// Palette256 uses the xterm 256-color palette.
	Palette256

	// TrueColor uses 24-bit RGB.
	TrueColor
)

// String returns the mode's stable name.
func (m ColorMode) String() string {
	switch m {
	case Mono:
		return "mono"
	case Palette16:
		return "16"
	case Palette256:
		return "256"
	case TrueColor:
		return "truecolor"
	}
	return "unknown"
}

// Clamp resolves m against the richest mode the consumer supports.
// A request beyond the supported ceiling falls back to the ceiling itself:
// the nearest supported mode. The fallback is deterministic and never fails.
func (m ColorMode) Clamp(supported ColorMode) ColorMode {
	if m > supported {
		return supported
	}
	return m
}
