// Command agldemo renders an interactive 3D scene into the terminal: two
// spinning labeled cubes joined by a line, with mouse orbit, shift-drag pan,
// and wheel zoom.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/render"
	"github.com/asciigl/agl/scene"
	"github.com/asciigl/agl/term"
)

func main() {
	var (
		colors = flag.String("colors", "auto", "color mode: auto, mono, 16, 256, truecolor")
		fps    = flag.Int("fps", 30, "target frames per second")
	)
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init terminal: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	mode, err := parseColors(*colors, screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	run(screen, mode, *fps)
}

// parseColors resolves the -colors flag, capping it at what the terminal
// reports.
func parseColors(s string, screen tcell.Screen) (term.ColorMode, error) {
	supported := detectColors(screen)
	switch s {
	case "auto":
		return supported, nil
	case "mono":
		return term.Mono, nil
	case "16":
		return term.Palette16.Clamp(supported), nil
	case "256":
		return term.Palette256.Clamp(supported), nil
	case "truecolor":
		return term.TrueColor.Clamp(supported), nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

func detectColors(screen tcell.Screen) term.ColorMode {
	switch n := screen.Colors(); {
	case n >= 1<<24:
		return term.TrueColor
	case n >= 256:
		return term.Palette256
	case n >= 16:
		return term.Palette16
	default:
		return term.Mono
	}
}

// buildScene assembles the demo content: two cubes with labels and a line
// between their centers.
func buildScene() *scene.Scene {
	sc := scene.New()

	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{1, 1, 1}),
		Material: scene.Diffuse(agl.Color(0.9, 0.5, 0.2)),
		Position: mgl32.Vec3{-0.9, 0, 0},
		Text:     "alpha",
		Spin:     mgl32.Vec3{0.3, 0.2, 0.7},
	})
	sc.Add(scene.Object{
		Mesh:     scene.Cube(mgl32.Vec3{0.7, 0.7, 0.7}),
		Material: scene.Diffuse(agl.Color(0.2, 0.6, 0.9)),
		Position: mgl32.Vec3{0.9, 0, 0.3},
		Text:     "beta",
		Spin:     mgl32.Vec3{-0.5, 0.4, 0.2},
	})
	sc.Add(scene.Object{
		Mesh:     scene.LineMesh(mgl32.Vec3{-0.9, 0, 0}, mgl32.Vec3{0.9, 0, 0.3}),
		Material: scene.Unlit(agl.Color(0.8, 0.8, 0.8)),
	})

	return sc
}

func run(screen tcell.Screen, mode term.ColorMode, fps int) {
	sc := buildScene()
	baseBG := sc.Background

	ctrl := scene.NewController()
	ctrl.Dist = 3

	renderer := render.New()
	quant := term.NewQuantizer(mode)
	quant.SetSupported(detectColors(screen))

	events := make(chan tcell.Event, 16)
	quitPoll := make(chan struct{})
	go func() {
		for {
			select {
			case <-quitPoll:
				return
			default:
			}
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	defer close(quitPoll)

	if fps < 1 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var in scene.Input
	last := time.Now()
	frameTime := time.Duration(0)

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
					return
				case ev.Rune() == 'q':
					return
				case ev.Rune() == 'm':
					mode = nextMode(mode)
					quant.SetMode(mode)
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				in.Pointer.Pos = mgl32.Vec2{float32(x), float32(y)}
				in.Pointer.HasPos = true
				in.Pointer.Primary = ev.Buttons()&tcell.Button1 != 0
				in.Pointer.Shift = ev.Modifiers()&tcell.ModShift != 0
				if ev.Buttons()&tcell.WheelUp != 0 {
					in.Scroll = in.Scroll.Add(mgl32.Vec2{0, 1})
				}
				if ev.Buttons()&tcell.WheelDown != 0 {
					in.Scroll = in.Scroll.Add(mgl32.Vec2{0, -1})
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now

			w, h := screen.Size()
			rows := h - 1 // bottom row is the status line
			if w < 2 || rows < 2 {
				continue
			}

			shift := in.Pointer.Shift
			in.Screen = mgl32.Vec4{0, 0, float32(w), float32(rows)}
			ctrl.Update(&in)
			in.Pointer.Shift = shift
			in.Scroll = mgl32.Vec2{}
			ctrl.Apply(&sc.Camera)

			sc.Advance(dt)
			sc.Background = driftBackground(baseBG, sc.Time)

			start := time.Now()
			grid, err := renderer.Frame(sc, quant, w, rows)
			if err != nil {
				continue
			}
			frameTime = time.Since(start)

			blit(screen, grid)
			status(screen, w, h-1, fmt.Sprintf(
				" %s | %4.1f ms | drag orbit, shift-drag pan, wheel zoom, m mode, q quit",
				quant.Mode(), float64(frameTime.Microseconds())/1000))
			screen.Show()
		}
	}
}

func nextMode(m term.ColorMode) term.ColorMode {
	switch m {
	case term.Mono:
		return term.Palette16
	case term.Palette16:
		return term.Palette256
	case term.Palette256:
		return term.TrueColor
	default:
		return term.Mono
	}
}

// driftBackground slowly cycles the background hue around the base color.
func driftBackground(base agl.RGB, t float64) agl.RGB {
	s := float32(math.Sin(t * 0.2))
	c := float32(math.Cos(t * 0.2))
	return agl.RGB{
		R: base.R + 0.03*s,
		G: base.G + 0.03*c,
		B: base.B - 0.03*s,
	}.Clamp()
}

func blit(screen tcell.Screen, grid *term.Grid) {
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			c := grid.At(x, y)
			style := tcell.StyleDefault
			if c.FG != tcell.ColorDefault {
				style = style.Foreground(c.FG)
			}
			screen.SetContent(x, y, c.Glyph, nil, style)
		}
	}
}

func status(screen tcell.Screen, w, row int, text string) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = rune(text[x])
		}
		screen.SetContent(x, row, r, nil, style)
	}
}
