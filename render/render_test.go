// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/scene"
	"github.com/asciigl/agl/term"
)

// orthoScene looks at the origin from y = -5 with an orthographic camera
// whose view volume spans 4 world units vertically, on a black background.
func orthoScene() *scene.Scene {
	sc := scene.New()
	sc.Background = agl.RGB{}
	sc.Camera.Position = mgl32.Vec3{0, -5, 0}
	sc.Camera.Mode = scene.Orthographic
	sc.Camera.OrthoHeight = 4
	return sc
}

func TestFrameZeroResolution(t *testing.T) {
	r := New()
	q := term.NewQuantizer(term.Mono)
	sc := scene.New()

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {0, 0}, {-1, 5}} {
		if _, err := r.Frame(sc, q, dims[0], dims[1]); !errors.Is(err, ErrZeroResolution) {
			t.Errorf("Frame(%d, %d) error = %v, want ErrZeroResolution", dims[0], dims[1], err)
		}
	}
}

func TestFrameEmptySceneIsQuantizedBackground(t *testing.T) {
	const cols, rows = 16, 8
	sc := scene.New()

	r := New()
	got, err := r.Frame(sc, term.NewQuantizer(term.TrueColor), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	fb := make([]agl.RGB, cols*rows)
	for i := range fb {
		fb[i] = sc.Background
	}
	want := term.NewQuantizer(term.TrueColor).Frame(fb, cols, rows)

	if !got.Equal(want) {
		t.Error("empty scene frame differs from the quantized background")
	}
}

func TestUnlitCubeOrthographic(t *testing.T) {
	// A 2-unit white cube fills the middle of a 4-unit view volume. With
	// the 1:2 cell aspect, a 20x10 grid is square in world units, so the
	// cube covers the central half of the grid.
	const cols, rows = 20, 10
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
	})

	r := New()
	g, err := r.Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	dense := agl.DefaultRamp[len(agl.DefaultRamp)-1]
	for y := 3; y <= 6; y++ {
		for x := 6; x <= 13; x++ {
			if got := g.At(x, y).Glyph; got != dense {
				t.Errorf("cube cell (%d, %d) glyph = %q, want %q", x, y, got, dense)
			}
		}
	}
	for _, cell := range [][2]int{{0, 0}, {19, 0}, {0, 9}, {19, 9}, {2, 5}, {17, 5}} {
		if got := g.At(cell[0], cell[1]).Glyph; got != ' ' {
			t.Errorf("background cell %v glyph = %q, want space", cell, got)
		}
	}
}

func TestDiffuseCubeBlock(t *testing.T) {
	// A unit cube under the default light on a 10x10 mono grid. The
	// camera-facing side lights to a single flat intensity, so the cube
	// shows as a centered block of one ramp glyph over background.
	//
	// Expected glyph, from the default light: the face normal dots the
	// light direction to 1/sqrt(3); lit = ambient + lightColor/sqrt(3),
	// Reinhard tone mapped to (0.820, 0.747, 0.646) linear, which encodes
	// to sRGB luma 0.883 and rounds to ramp index 8.
	const cols, rows = 10, 10
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{1, 1, 1}),
		Material: scene.Diffuse(agl.Color(1, 1, 1)),
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	want := agl.DefaultRamp[8]
	for y := 4; y <= 5; y++ {
		for x := 3; x <= 6; x++ {
			if got := g.At(x, y).Glyph; got != want {
				t.Errorf("cube cell (%d, %d) glyph = %q, want %q", x, y, got, want)
			}
		}
	}
	for _, cell := range [][2]int{{0, 0}, {9, 9}, {1, 4}, {8, 5}, {4, 1}, {4, 8}} {
		if got := g.At(cell[0], cell[1]).Glyph; got != ' ' {
			t.Errorf("background cell %v glyph = %q, want space", cell, got)
		}
	}
}

func TestDepthTestIndependentOfOrder(t *testing.T) {
	const cols, rows = 24, 12

	near := scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{1.5, 1.5, 1.5}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
		Position: mgl32.Vec3{-0.4, -1, 0},
	}
	far := scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{1.5, 1.5, 1.5}),
		Material: scene.Unlit(agl.Color(0.2, 0.2, 0.2)),
		Position: mgl32.Vec3{0.4, 1, 0},
	}

	render := func(objs ...scene.Object) *term.Grid {
		sc := orthoScene()
		for _, o := range objs {
			sc.Add(o)
		}
		g, err := New().Frame(sc, term.NewQuantizer(term.TrueColor), cols, rows)
		if err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
		return g
	}

	a := render(near, far)
	b := render(far, near)
	if !a.Equal(b) {
		t.Error("frame depends on object submission order")
	}
}

func TestFrameRepeatable(t *testing.T) {
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Diffuse(agl.Color(0.8, 0.4, 0.2)),
		Rotation: mgl32.QuatRotate(0.6, mgl32.Vec3{0, 0, 1}),
	})

	r := New()
	a, err := r.Frame(sc, term.NewQuantizer(term.Palette256), 30, 15)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	b, err := r.Frame(sc, term.NewQuantizer(term.Palette256), 30, 15)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !a.Equal(b) {
		t.Error("same scene rendered twice with equal state differs")
	}
}

func TestNearPlaneClipsLine(t *testing.T) {
	// A line running through the camera along the view axis: the part
	// behind the near plane is cut away and the rest projects onto the
	// center cell.
	const cols, rows = 21, 11
	sc := scene.New()
	sc.Background = agl.RGB{}
	sc.Add(scene.Object{
		Mesh:     scene.LineMesh(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 3, 0}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	dense := agl.DefaultRamp[len(agl.DefaultRamp)-1]
	if got := g.At(10, 5).Glyph; got != dense {
		t.Errorf("center cell glyph = %q, want %q", got, dense)
	}
}

func TestFullyBehindCameraIsInvisible(t *testing.T) {
	const cols, rows = 16, 8
	sc := scene.New()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{1, 1, 1}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
		Position: mgl32.Vec3{0, -10, 0},
	})
	sc.Add(scene.Object{
		Mesh:     scene.LineMesh(mgl32.Vec3{-1, -5, 0}, mgl32.Vec3{1, -5, 0}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
	})

	got, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	empty, err := New().Frame(scene.New(), term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !got.Equal(empty) {
		t.Error("geometry behind the camera left fragments on screen")
	}
}

func TestTextOverlay(t *testing.T) {
	const cols, rows = 20, 10
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
		Text:     "hi",
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	// The label is centered on the projected object origin, which rounds
	// to cell (10, 5) on this grid.
	if got := g.At(9, 5).Glyph; got != 'h' {
		t.Errorf("label cell (9, 5) glyph = %q, want 'h'", got)
	}
	if got := g.At(10, 5).Glyph; got != 'i' {
		t.Errorf("label cell (10, 5) glyph = %q, want 'i'", got)
	}

	// The halo row above the label is dimmed to the faintest visible ramp
	// step.
	faint := agl.DefaultRamp[1]
	if got := g.At(9, 4).Glyph; got != faint {
		t.Errorf("halo cell (9, 4) glyph = %q, want %q", got, faint)
	}
}

func TestTextSkippedOnShortObject(t *testing.T) {
	// A flat quad one cell tall leaves no room for the label halo, so the
	// text pass skips the object entirely.
	const cols, rows = 20, 10
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 0.5}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
		Text:     "hidden",
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			switch g.At(x, y).Glyph {
			case 'h', 'd', 'e', 'n':
				t.Fatalf("label glyph %q leaked to (%d, %d)", g.At(x, y).Glyph, x, y)
			}
		}
	}
}

func TestTextStencilRespectsOcclusion(t *testing.T) {
	const cols, rows = 20, 10
	sc := orthoScene()

	// The labeled cube sits behind an unlabeled one that covers the left
	// half of its label area.
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Unlit(agl.Color(0.5, 0.5, 0.5)),
		Position: mgl32.Vec3{0, 1, 0},
		Text:     "xy",
	})
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
		Position: mgl32.Vec3{-1, -1, 0},
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	// Label anchor for the back cube is its projected origin; the front
	// cube owns the left label cell, so only the right glyph lands.
	if got := g.At(9, 5).Glyph; got == 'x' {
		t.Error("label glyph written over an occluding object")
	}
	if got := g.At(10, 5).Glyph; got != 'y' {
		t.Errorf("visible label cell (10, 5) glyph = %q, want 'y'", got)
	}

	// The halo dims only cells the labeled object owns; the occluder's
	// cell inside the halo rectangle keeps its full brightness.
	if got := g.At(9, 4).Glyph; got != '@' {
		t.Errorf("occluding halo cell (9, 4) glyph = %q, want '@'", got)
	}
}

func TestBillboardLabel(t *testing.T) {
	// A text billboard lives in the fixed 100x100 label space, independent
	// of the scene camera. At (50, 5, 50) a 30x30 quad projects to cells
	// 14..25 x 7..12 on a 40x20 grid, leaving room for the label and halo.
	const cols, rows = 40, 20
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Billboard(30, 30),
		Material: scene.UIText(),
		Position: mgl32.Vec3{50, 5, 50},
		Text:     "hi",
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			want := ' '
			switch {
			case x == 19 && y == 10:
				want = 'h'
			case x == 20 && y == 10:
				want = 'i'
			}
			if got := g.At(x, y).Glyph; got != want {
				t.Errorf("cell (%d, %d) glyph = %q, want %q", x, y, got, want)
			}
		}
	}
}

func TestBillboardReservesCells(t *testing.T) {
	// The billboard writes no color, but it wins the depth test over scene
	// geometry behind it: cube fragments under the quad are rejected and
	// those cells keep the background, while the label still embeds.
	const cols, rows = 40, 20
	sc := orthoScene()
	sc.Add(scene.Object{
		Mesh:     scene.Billboard(30, 30),
		Material: scene.UIText(),
		Position: mgl32.Vec3{50, 5, 50},
		Text:     "hi",
	})
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{2, 2, 2}),
		Material: scene.Unlit(agl.Color(1, 1, 1)),
	})

	g, err := New().Frame(sc, term.NewQuantizer(term.Mono), cols, rows)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if got := g.At(11, 10).Glyph; got != '@' {
		t.Errorf("cube cell (11, 10) glyph = %q, want '@'", got)
	}
	if got := g.At(15, 8).Glyph; got != ' ' {
		t.Errorf("reserved cell (15, 8) glyph = %q, want space", got)
	}
	if got := g.At(19, 10).Glyph; got != 'h' {
		t.Errorf("label cell (19, 10) glyph = %q, want 'h'", got)
	}
}
