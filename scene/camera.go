package scene

import "github.com/go-gl/mathgl/mgl32"

// ProjectionMode selects how the camera maps view space to the screen.
type ProjectionMode uint8

const (
	// Perspective projects with a frustum: farther objects appear smaller.
	Perspective ProjectionMode = iota
	// Orthographic projects with parallel rays: no depth foreshortening.
	Orthographic
)

// String returns the mode's stable name, also used by the JSON scene format.
func (m ProjectionMode) String() string {
	if m == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Camera describes the scene's point of view.
//
// The coordinate system is right-handed with Z up and Y forward: a camera
// with identity rotation looks along +Y. Exactly one camera is active per
// scene.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat

	Mode ProjectionMode

	// FOV is the vertical field of view in degrees (perspective mode).
	FOV float32

	// OrthoHeight is the world-space height of the view volume
	// (orthographic mode).
	OrthoHeight float32

	Near, Far float32
}

// DefaultCamera returns a perspective camera at the origin looking along +Y.
func DefaultCamera() Camera {
	return Camera{
		Rotation:    mgl32.QuatIdent(),
		Mode:        Perspective,
		FOV:         90,
		OrthoHeight: 2,
		Near:        0.1,
		Far:         500,
	}
}

// Forward returns the camera's view direction in world space.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 0, 1})
}

// depthRemap compresses clip-space depth from the GL convention [-w, w] into
// [0, w], so NDC depth lands in [0, 1] with the near plane at exactly 0.
// The transform stage clips against that plane.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// DepthRemap returns the clip-space depth compression applied by every
// projection built here, for callers that assemble their own projections and
// need matching depth semantics.
func DepthRemap() mgl32.Mat4 {
	return depthRemap
}

// Projection returns the view-to-clip matrix for the given aspect ratio
// (width over height, in world units after cell-aspect correction).
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	switch c.Mode {
	case Orthographic:
		h := c.OrthoHeight / 2
		w := h * aspect
		return depthRemap.Mul4(mgl32.Ortho(-w, w, -h, h, c.Near, c.Far))
	default:
		return depthRemap.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far))
	}
}

// ViewProjection returns the combined world-to-clip matrix.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}
