package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pointer is the state of the primary pointing device in screen cells.
type Pointer struct {
	Primary   bool
	Secondary bool
	Pos       mgl32.Vec2
	HasPos    bool
	Shift     bool
}

// Input carries one frame's worth of host input for the camera controller.
// The host fills it however it likes (terminal mouse events, DOM events);
// the controller only reads it.
type Input struct {
	Pointer Pointer
	Scroll  mgl32.Vec2
	// Screen is the visible grid region: x, y, w, h in cells.
	Screen mgl32.Vec4
}

// NewFrame resets the per-frame input fields and records the screen region.
// Pointer position and button state persist until the host changes them.
func (in *Input) NewFrame(x, y, w, h float32) {
	in.Pointer.Shift = false
	in.Scroll = mgl32.Vec2{}
	in.Screen = mgl32.Vec4{x, y, w, h}
}

type motionKind uint8

const (
	motionNone motionKind = iota
	motionOrbit
	motionPan
)

// Controller is a simple orbit/pan/zoom camera controller.
//
// Dragging with the primary button orbits around the focus point; holding
// shift pans the focus point; scrolling zooms. Rotation is stored as pitch
// and yaw so the camera never rolls.
type Controller struct {
	FovY  float32
	Focus mgl32.Vec3
	Pitch float32
	Yaw   float32
	Dist  float32

	ScrollSensitivity float32
	OrbitSensitivity  float32

	motion      motionKind
	motionStart mgl32.Vec2
	startPitch  float32
	startYaw    float32
	startFocus  mgl32.Vec3

	lastDown bool
	pressed  bool
}

// NewController returns a controller with the stock tilt and sensitivities.
func NewController() *Controller {
	return &Controller{
		FovY:              90,
		Pitch:             mgl32.DegToRad(-30),
		Yaw:               mgl32.DegToRad(30),
		Dist:              1,
		ScrollSensitivity: 0.02,
		OrbitSensitivity:  1,
	}
}

// Update advances the controller with one frame of input.
func (c *Controller) Update(in *Input) {
	pressed := in.Pointer.Primary
	c.pressed = pressed && (c.pressed || !c.lastDown)
	c.lastDown = pressed

	c.Dist *= 1 - in.Scroll.Y()*c.ScrollSensitivity
	if c.Dist < 0.1 {
		c.Dist = 0.1
	}

	if !in.Pointer.HasPos || !c.pressed {
		c.motion = motionNone
		return
	}

	pointer := in.Pointer.Pos
	pan := in.Pointer.Shift

	switch c.motion {
	case motionNone:
		c.motionStart = pointer
		if pan {
			c.motion = motionPan
			c.startFocus = c.Focus
		} else {
			c.motion = motionOrbit
			c.startPitch, c.startYaw = c.Pitch, c.Yaw
		}

	case motionOrbit:
		delta := pointer.Sub(c.motionStart)
		// Normalize by the smaller screen dimension so drag speed does not
		// depend on the grid size.
		dim := in.Screen.Z()
		if in.Screen.W() < dim {
			dim = in.Screen.W()
		}
		if dim > 0 {
			delta = delta.Mul(1 / dim)
		}
		c.Pitch = c.startPitch - delta.Y()*c.OrbitSensitivity
		c.Yaw = c.startYaw - delta.X()*c.OrbitSensitivity

		if pan {
			c.motion = motionPan
			c.motionStart = pointer
			c.startFocus = c.Focus
		}

	case motionPan:
		delta := pointer.Sub(c.motionStart)
		sw, sh := in.Screen.Z(), in.Screen.W()
		if sw > 0 && sh > 0 {
			delta = mgl32.Vec2{delta.X() / sw, delta.Y() / sh}
			aspect := sw / sh
			fov := mgl32.DegToRad(c.FovY) / 2
			tan := float32(math.Tan(float64(fov)))

			move := mgl32.Vec3{
				-tan * delta.X() * aspect,
				0,
				tan * delta.Y(),
			}.Mul(c.Dist * 2)
			c.Focus = c.startFocus.Add(c.Rotation().Rotate(move))
		}

		if !pan {
			c.motion = motionOrbit
			c.motionStart = pointer
			c.startPitch, c.startYaw = c.Pitch, c.Yaw
		}
	}
}

// Rotation returns the camera orientation as a quaternion.
func (c *Controller) Rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, mgl32.Vec3{0, 0, 1})
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Apply positions cam on the orbit sphere looking at the focus point.
func (c *Controller) Apply(cam *Camera) {
	rot := c.Rotation()
	back := rot.Rotate(mgl32.Vec3{0, -1, 0})
	cam.Position = c.Focus.Add(back.Mul(c.Dist))
	cam.Rotation = rot
}
