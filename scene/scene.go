// Package scene holds the renderable state of a 3D character-cell scene:
// objects with geometry, materials and transforms, the active camera, and
// global parameters such as the background color.
//
// A Scene is pure data. It is mutated between frames through its API and
// read by the renderer during a frame; the pipeline itself never mutates it
// beyond the animation updates Advance is explicitly asked to perform.
// A Scene is not safe for concurrent use.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	agl "github.com/asciigl/agl"
)

// ErrStaleHandle is returned when an operation references an object that was
// removed, or a handle from another scene. The scene is left unchanged.
var ErrStaleHandle = errors.New("scene: stale or unknown object handle")

// Handle identifies an object in a scene.
//
// Handles are generation-checked: removing an object and reusing its slot
// bumps the slot generation, so handles to the removed object fail loudly
// instead of silently aliasing the new occupant. The zero Handle is never
// valid.
type Handle struct {
	index uint32
	gen   uint32
}

// Nil reports whether h is the zero handle.
func (h Handle) Nil() bool { return h.gen == 0 }

// String implements fmt.Stringer for diagnostics.
func (h Handle) String() string {
	return fmt.Sprintf("obj#%d.%d", h.index, h.gen)
}

// Object is one renderable entity: geometry, material, local transform, and
// an optional label drawn by the text pass.
type Object struct {
	Mesh     *Mesh
	Material Material

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Text, when non-empty, is overlaid on top of the rendered object,
	// centered on its projected origin.
	Text string

	// Spin is an angular velocity (radians per second around X, Y, Z)
	// applied by Advance. Zero means the object is static.
	Spin mgl32.Vec3
}

// ModelMatrix returns the object's local-to-world transform, composed as
// translation * rotation * scale.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := o.Rotation.Mat4()
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

type slot struct {
	gen  uint32
	live bool
	obj  Object
}

// Light are the global directional-light parameters used by the diffuse
// material. Colors are linear-light and may exceed 1 before tone mapping.
type Light struct {
	Dir     mgl32.Vec3
	Color   agl.RGB
	Ambient agl.RGB
}

// DefaultLight returns the stock warm key light with a cool ambient term.
func DefaultLight() Light {
	return Light{
		Dir:     mgl32.Vec3{0.5, 0.5, -0.5}.Normalize(),
		Color:   agl.Color(0.7, 0.4, 0.1).Scale(10),
		Ambient: agl.Color(0.1, 0.13, 0.25).Scale(5),
	}
}

// Scene is the root of all rendering state.
type Scene struct {
	slots []slot
	free  []uint32
	count int

	Camera     Camera
	Background agl.RGB
	Light      Light

	// Time is the accumulated animation time in seconds.
	Time float64
}

// New creates an empty scene with a default perspective camera, background,
// and light.
func New() *Scene {
	return &Scene{
		Camera:     DefaultCamera(),
		Background: agl.Color(0.05, 0.23, 0.4),
		Light:      DefaultLight(),
	}
}

// Len returns the number of live objects.
func (s *Scene) Len() int { return s.count }

// Add inserts an object and returns its handle. A zero-value rotation or
// scale is normalized to identity so that a plain struct literal renders.
func (s *Scene) Add(obj Object) Handle {
	if obj.Rotation == (mgl32.Quat{}) {
		obj.Rotation = mgl32.QuatIdent()
	}
	if obj.Scale == (mgl32.Vec3{}) {
		obj.Scale = mgl32.Vec3{1, 1, 1}
	}

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}

	sl := &s.slots[idx]
	sl.gen++
	sl.live = true
	sl.obj = obj
	s.count++

	return Handle{index: idx, gen: sl.gen}
}

// Remove destroys the object behind h. The slot is recycled for future Add
// calls; other live handles are unaffected.
func (s *Scene) Remove(h Handle) error {
	sl, err := s.lookup(h)
	if err != nil {
		return err
	}
	sl.live = false
	sl.obj = Object{}
	s.free = append(s.free, h.index)
	s.count--
	return nil
}

// Get returns the object behind h for in-place mutation.
func (s *Scene) Get(h Handle) (*Object, error) {
	sl, err := s.lookup(h)
	if err != nil {
		return nil, err
	}
	return &sl.obj, nil
}

// SetTransform updates the object's position, rotation, and scale.
func (s *Scene) SetTransform(h Handle, pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) error {
	o, err := s.Get(h)
	if err != nil {
		return err
	}
	o.Position, o.Rotation, o.Scale = pos, rot, scale
	return nil
}

// SetMaterial swaps the object's material.
func (s *Scene) SetMaterial(h Handle, m Material) error {
	o, err := s.Get(h)
	if err != nil {
		return err
	}
	o.Material = m
	return nil
}

// SetText sets or clears the object's overlay label.
func (s *Scene) SetText(h Handle, text string) error {
	o, err := s.Get(h)
	if err != nil {
		return err
	}
	o.Text = text
	return nil
}

// Each visits all live objects in stable slot order. The visitor may mutate
// the object but must not add or remove objects.
func (s *Scene) Each(f func(h Handle, o *Object)) {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.live {
			f(Handle{index: uint32(i), gen: sl.gen}, &sl.obj)
		}
	}
}

// Advance steps animation time by dt seconds, applying each object's Spin.
func (s *Scene) Advance(dt float64) {
	s.Time += dt
	fdt := float32(dt)
	s.Each(func(_ Handle, o *Object) {
		if o.Spin == (mgl32.Vec3{}) {
			return
		}
		step := mgl32.AnglesToQuat(o.Spin.X()*fdt, o.Spin.Y()*fdt, o.Spin.Z()*fdt, mgl32.XYZ)
		o.Rotation = o.Rotation.Mul(step).Normalize()
	})
}

func (s *Scene) lookup(h Handle) (*slot, error) {
	if h.Nil() || int(h.index) >= len(s.slots) {
		return nil, ErrStaleHandle
	}
	sl := &s.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil, ErrStaleHandle
	}
	return sl, nil
}
