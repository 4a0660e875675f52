// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

package embed

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/asciigl/agl"
	"github.com/asciigl/agl/scene"
	"github.com/asciigl/agl/term"
)

func TestSceneLifecycle(t *testing.T) {
	id := NewScene()
	defer RemoveScene(id)

	err := WithScene(id, func(s *scene.Scene) error {
		s.Add(scene.Object{
			Mesh:     scene.Cube(mgl32.Vec3{1, 1, 1}),
			Material: scene.Unlit(agl.Color(1, 1, 1)),
		})
		return nil
	})
	if err != nil {
		t.Fatalf("WithScene() error = %v", err)
	}

	g, err := Render(id, term.Mono, 20, 10)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if g.Cols() != 20 || g.Rows() != 10 {
		t.Errorf("grid = %dx%d, want 20x10", g.Cols(), g.Rows())
	}
}

func TestRemovedSceneRejected(t *testing.T) {
	id := NewScene()
	if err := RemoveScene(id); err != nil {
		t.Fatalf("RemoveScene() error = %v", err)
	}

	if err := RemoveScene(id); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("double RemoveScene() error = %v, want ErrUnknownScene", err)
	}
	if err := WithScene(id, func(*scene.Scene) error { return nil }); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("WithScene(removed) error = %v, want ErrUnknownScene", err)
	}
	if _, err := Render(id, term.Mono, 10, 10); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Render(removed) error = %v, want ErrUnknownScene", err)
	}
	if _, err := SceneToJSON(id); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("SceneToJSON(removed) error = %v, want ErrUnknownScene", err)
	}
}

func TestSceneIDReuse(t *testing.T) {
	id := NewScene()
	if err := RemoveScene(id); err != nil {
		t.Fatalf("RemoveScene() error = %v", err)
	}

	reused := NewScene()
	defer RemoveScene(reused)
	if reused != id {
		t.Errorf("NewScene() after remove = %d, want recycled id %d", reused, id)
	}

	// The recycled scene starts empty.
	err := WithScene(reused, func(s *scene.Scene) error {
		if s.Len() != 0 {
			t.Errorf("recycled scene has %d objects, want 0", s.Len())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithScene() error = %v", err)
	}
}

func TestJSONRoundTripThroughRegistry(t *testing.T) {
	src := NewScene()
	defer RemoveScene(src)
	dst := NewScene()
	defer RemoveScene(dst)

	err := WithScene(src, func(s *scene.Scene) error {
		s.Background = agl.SRGB8(1, 2, 3)
		s.Add(scene.Object{
			Mesh:     scene.Cube(mgl32.Vec3{1, 1, 1}),
			Material: scene.Diffuse(agl.Color(0.5, 0.2, 0.1)),
			Text:     "copied",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("WithScene() error = %v", err)
	}

	data, err := SceneToJSON(src)
	if err != nil {
		t.Fatalf("SceneToJSON() error = %v", err)
	}
	if err := SceneFromJSON(dst, data); err != nil {
		t.Fatalf("SceneFromJSON() error = %v", err)
	}

	err = WithScene(dst, func(s *scene.Scene) error {
		if s.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", s.Len())
		}
		s.Each(func(_ scene.Handle, o *scene.Object) {
			if o.Text != "copied" {
				t.Errorf("text = %q, want %q", o.Text, "copied")
			}
			if o.Material.Kind != scene.KindDiffuse {
				t.Errorf("material kind = %v, want diffuse", o.Material.Kind)
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("WithScene() error = %v", err)
	}

	if err := SceneFromJSON(dst, []byte("not json")); err == nil {
		t.Error("SceneFromJSON(garbage) succeeded, want error")
	}
}

func TestNegativeID(t *testing.T) {
	if _, err := Render(-1, term.Mono, 4, 4); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Render(-1) error = %v, want ErrUnknownScene", err)
	}
}
