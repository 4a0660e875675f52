package color

import (
	"math"
	"testing"
)

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.0031308, 0.01, 0.04045, 0.2, 0.5, 0.73, 1} {
		got := SRGBToLinear(LinearToSRGB(v))
		if math.Abs(float64(got-v)) > 1e-5 {
			t.Errorf("SRGBToLinear(LinearToSRGB(%v)) = %v, want %v", v, got, v)
		}
	}
}

func TestSRGBEndpoints(t *testing.T) {
	if got := SRGBToLinear(0); got != 0 {
		t.Errorf("SRGBToLinear(0) = %v, want 0", got)
	}
	if got := SRGBToLinear(1); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("SRGBToLinear(1) = %v, want 1", got)
	}
	if got := LinearToSRGB(1); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("LinearToSRGB(1) = %v, want 1", got)
	}
	// Linear segment below the knee.
	if got := SRGBToLinear(0.02); math.Abs(float64(got-0.02/12.92)) > 1e-7 {
		t.Errorf("SRGBToLinear(0.02) = %v, want %v", got, 0.02/12.92)
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		r, g, b float32
		want    float32
	}{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{1, 0, 0, 0.21},
		{0, 1, 0, 0.72},
		{0, 0, 1, 0.07},
	}
	for _, tt := range tests {
		if got := Luma(tt.r, tt.g, tt.b); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Luma(%v, %v, %v) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		h, s, v float32
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 1, 1, 1, 0, 0, 1},
		{"red", 1, 0, 0, 0, 1, 1},
		{"green", 0, 1, 0, 120, 1, 1},
		{"blue", 0, 0, 1, 240, 1, 1},
		{"yellow", 1, 1, 0, 60, 1, 1},
		{"half gray", 0.5, 0.5, 0.5, 0, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			if math.Abs(float64(h-tt.h)) > 1e-4 ||
				math.Abs(float64(s-tt.s)) > 1e-6 ||
				math.Abs(float64(v-tt.v)) > 1e-6 {
				t.Errorf("RGBToHSV(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.r, tt.g, tt.b, h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}
