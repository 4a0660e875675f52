// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package embed

import (
	"bytes"
	"errors"
	"sync"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/render"
	"github.com/asciigl/agl/scene"
	"github.com/asciigl/agl/term"
)

// ErrUnknownScene is returned for an ID that was never issued or has been
// removed. A removed ID stays invalid until its slot is reused by NewScene.
var ErrUnknownScene = errors.New("embed: unknown scene id")

// entry bundles everything one render target needs. The renderer and
// quantizer carry per-target state (frame buffers, dither error), so each
// scene owns its own pair.
type entry struct {
	scene    *scene.Scene
	renderer *render.Renderer
	quant    *term.Quantizer
}

var (
	mu    sync.RWMutex
	slots []*entry
	free  []int
)

// NewScene creates an empty scene and returns its ID. IDs are small integers
// and removed slots are reused, so hosts can store them in plain int fields.
func NewScene() int {
	mu.Lock()
	defer mu.Unlock()

	e := &entry{
		scene:    scene.New(),
		renderer: render.New(),
		quant:    term.NewQuantizer(term.TrueColor),
	}

	var id int
	if n := len(free); n > 0 {
		id = free[n-1]
		free = free[:n-1]
		slots[id] = e
	} else {
		id = len(slots)
		slots = append(slots, e)
	}

	agl.Logger().Debug("scene created", "id", id)
	return id
}

// RemoveScene destroys the scene and recycles its ID.
func RemoveScene(id int) error {
	mu.Lock()
	defer mu.Unlock()

	if id < 0 || id >= len(slots) || slots[id] == nil {
		return ErrUnknownScene
	}
	slots[id] = nil
	free = append(free, id)

	agl.Logger().Debug("scene removed", "id", id)
	return nil
}

// WithScene runs f with exclusive access to the scene. The *scene.Scene must
// not escape f.
func WithScene(id int, f func(*scene.Scene) error) error {
	mu.Lock()
	defer mu.Unlock()

	e, err := lookup(id)
	if err != nil {
		return err
	}
	return f(e.scene)
}

// Render produces one frame of the scene in the given color mode. The
// returned grid is a snapshot owned by the caller.
func Render(id int, mode term.ColorMode, cols, rows int) (*term.Grid, error) {
	mu.Lock()
	defer mu.Unlock()

	e, err := lookup(id)
	if err != nil {
		return nil, err
	}
	e.quant.SetMode(mode)
	return e.renderer.Frame(e.scene, e.quant, cols, rows)
}

// SceneToJSON serializes the scene to the portable JSON scene format.
func SceneToJSON(id int) ([]byte, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, err := lookup(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := e.scene.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SceneFromJSON replaces the scene's contents from the JSON scene format.
// On a decode error the scene is left unchanged.
func SceneFromJSON(id int, data []byte) error {
	mu.Lock()
	defer mu.Unlock()

	e, err := lookup(id)
	if err != nil {
		return err
	}
	loaded, err := scene.Load(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*e.scene = *loaded
	return nil
}

// lookup must be called with mu held.
func lookup(id int) (*entry, error) {
	if id < 0 || id >= len(slots) || slots[id] == nil {
		return nil, ErrUnknownScene
	}
	return slots[id], nil
}
