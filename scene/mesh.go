package scene

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an object's geometry: a vertex list plus triangle, line, and point
// primitives indexing into it. Meshes are immutable once built; an object
// that needs different geometry gets a new mesh. A mesh is owned by the
// objects that reference it and must not be mutated while shared.
type Mesh struct {
	verts  []mgl32.Vec3
	tris   [][3]int
	lines  [][2]int
	points []int

	// kind and size record how the mesh was constructed so the JSON scene
	// format can round-trip shape constructors instead of raw tables.
	kind meshKind
	size mgl32.Vec3
}

type meshKind uint8

const (
	meshCustom meshKind = iota
	meshCube
	meshBillboard
)

// NewMesh builds a mesh from explicit vertices and primitive indices.
// Indices must be within range; out-of-range primitives are dropped.
func NewMesh(verts []mgl32.Vec3, tris [][3]int, lines [][2]int, points []int) *Mesh {
	m := &Mesh{verts: append([]mgl32.Vec3(nil), verts...)}
	n := len(m.verts)
	for _, t := range tris {
		if t[0] < n && t[1] < n && t[2] < n && t[0] >= 0 && t[1] >= 0 && t[2] >= 0 {
			m.tris = append(m.tris, t)
		}
	}
	for _, l := range lines {
		if l[0] >= 0 && l[0] < n && l[1] >= 0 && l[1] < n {
			m.lines = append(m.lines, l)
		}
	}
	for _, p := range points {
		if p >= 0 && p < n {
			m.points = append(m.points, p)
		}
	}
	return m
}

var cubeVerts = []mgl32.Vec3{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

var cubeTris = [][3]int{
	{0, 2, 1},
	{0, 3, 2},
	{1, 2, 6},
	{6, 5, 1},
	{4, 5, 6},
	{6, 7, 4},
	{2, 3, 6},
	{6, 3, 7},
	{0, 7, 3},
	{0, 4, 7},
	{0, 1, 5},
	{0, 5, 4},
}

// Cube builds an axis-aligned box centered on the origin with the given
// extents, wound so that outward faces survive back-face culling.
func Cube(size mgl32.Vec3) *Mesh {
	verts := make([]mgl32.Vec3, len(cubeVerts))
	for i, v := range cubeVerts {
		verts[i] = mgl32.Vec3{v.X() * size.X(), v.Y() * size.Y(), v.Z() * size.Z()}
	}
	return &Mesh{verts: verts, tris: cubeTris, kind: meshCube, size: size}
}

// LineMesh builds a single segment between two points.
func LineMesh(start, end mgl32.Vec3) *Mesh {
	return &Mesh{
		verts: []mgl32.Vec3{start, end},
		lines: [][2]int{{0, 1}},
	}
}

// PointMesh builds a single point.
func PointMesh(p mgl32.Vec3) *Mesh {
	return &Mesh{
		verts:  []mgl32.Vec3{p},
		points: []int{0},
	}
}

// TriangleMesh builds a single triangle with the given winding.
func TriangleMesh(a, b, c mgl32.Vec3) *Mesh {
	return &Mesh{
		verts: []mgl32.Vec3{a, b, c},
		tris:  [][3]int{{0, 1, 2}},
	}
}

// Billboard builds a camera-independent quad in the X/Z plane, w wide and
// h tall, centered on the origin. The text material renders these in screen
// space.
func Billboard(w, h float32) *Mesh {
	hw, hh := w/2, h/2
	return &Mesh{
		verts: []mgl32.Vec3{
			{-hw, 0, -hh},
			{hw, 0, -hh},
			{hw, 0, hh},
			{-hw, 0, hh},
		},
		// Wound so the quad faces the fixed label camera after the
		// screen-space y flip.
		tris: [][3]int{{0, 1, 2}, {0, 2, 3}},
		kind: meshBillboard,
		size: mgl32.Vec3{w, h, 0},
	}
}

// EachTriangle visits every triangle's corner positions.
func (m *Mesh) EachTriangle(f func(a, b, c mgl32.Vec3)) {
	for _, t := range m.tris {
		f(m.verts[t[0]], m.verts[t[1]], m.verts[t[2]])
	}
}

// EachLine visits every line segment's endpoints.
func (m *Mesh) EachLine(f func(a, b mgl32.Vec3)) {
	for _, l := range m.lines {
		f(m.verts[l[0]], m.verts[l[1]])
	}
}

// EachPoint visits every point.
func (m *Mesh) EachPoint(f func(p mgl32.Vec3)) {
	for _, p := range m.points {
		f(m.verts[p])
	}
}

// Primitives returns the total primitive count, used for scratch sizing.
func (m *Mesh) Primitives() int {
	return len(m.tris) + len(m.lines) + len(m.points)
}
