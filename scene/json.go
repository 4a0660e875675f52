package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	agl "github.com/asciigl/agl"
)

// The JSON scene format is a structured text encoding of the full scene
// model: camera, background, and objects with transforms, materials, and
// labels. Loading and saving never touches the rendering pipeline; a loaded
// scene renders identically to the one that was saved, though handles are
// reassigned.
//
// Colors are written as "#rrggbb" (sRGB) and parsed from either that form or
// an SVG 1.1 color name such as "navy".

type sceneJSON struct {
	Camera     cameraJSON   `json:"camera"`
	Background string       `json:"background"`
	Objects    []objectJSON `json:"objects"`
}

type cameraJSON struct {
	Position    [3]float32 `json:"position"`
	Rotation    [4]float32 `json:"rotation"` // w, x, y, z
	Mode        string     `json:"mode"`
	FOV         float32    `json:"fov,omitempty"`
	OrthoHeight float32    `json:"ortho_height,omitempty"`
	Near        float32    `json:"near"`
	Far         float32    `json:"far"`
}

type materialJSON struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type meshJSON struct {
	Kind   string       `json:"kind"`
	Size   *[3]float32  `json:"size,omitempty"`
	Verts  [][3]float32 `json:"verts,omitempty"`
	Tris   [][3]int     `json:"tris,omitempty"`
	Lines  [][2]int     `json:"lines,omitempty"`
	Points []int        `json:"points,omitempty"`
}

type objectJSON struct {
	Mesh     meshJSON     `json:"mesh"`
	Material materialJSON `json:"material"`
	Position [3]float32   `json:"position"`
	Rotation [4]float32   `json:"rotation"`
	Scale    [3]float32   `json:"scale"`
	Text     string       `json:"text,omitempty"`
	Spin     [3]float32   `json:"spin,omitempty"`
}

// MarshalJSON encodes the scene, its camera, and all live objects.
func (s *Scene) MarshalJSON() ([]byte, error) {
	out := sceneJSON{
		Camera: cameraJSON{
			Position:    vec3Arr(s.Camera.Position),
			Rotation:    quatArr(s.Camera.Rotation),
			Mode:        s.Camera.Mode.String(),
			FOV:         s.Camera.FOV,
			OrthoHeight: s.Camera.OrthoHeight,
			Near:        s.Camera.Near,
			Far:         s.Camera.Far,
		},
		Background: formatColor(s.Background),
	}

	s.Each(func(_ Handle, o *Object) {
		out.Objects = append(out.Objects, objectJSON{
			Mesh:     encodeMesh(o.Mesh),
			Material: materialJSON{Kind: o.Material.Kind.String(), Color: formatColor(o.Material.Color)},
			Position: vec3Arr(o.Position),
			Rotation: quatArr(o.Rotation),
			Scale:    vec3Arr(o.Scale),
			Text:     o.Text,
			Spin:     vec3Arr(o.Spin),
		})
	})

	return json.Marshal(out)
}

// UnmarshalJSON replaces the scene's contents with the encoded state.
// On error the scene is left in an unspecified but valid state.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var in sceneJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("scene: decode: %w", err)
	}

	bg, err := ParseColor(in.Background)
	if err != nil {
		return err
	}

	*s = *New()
	s.Background = bg

	s.Camera.Position = arrVec3(in.Camera.Position)
	s.Camera.Rotation = arrQuat(in.Camera.Rotation)
	if s.Camera.Rotation == (mgl32.Quat{}) {
		s.Camera.Rotation = mgl32.QuatIdent()
	}
	switch in.Camera.Mode {
	case "orthographic":
		s.Camera.Mode = Orthographic
	case "perspective", "":
		s.Camera.Mode = Perspective
	default:
		return fmt.Errorf("scene: unknown projection mode %q", in.Camera.Mode)
	}
	if in.Camera.FOV != 0 {
		s.Camera.FOV = in.Camera.FOV
	}
	if in.Camera.OrthoHeight != 0 {
		s.Camera.OrthoHeight = in.Camera.OrthoHeight
	}
	if in.Camera.Near != 0 {
		s.Camera.Near = in.Camera.Near
	}
	if in.Camera.Far != 0 {
		s.Camera.Far = in.Camera.Far
	}

	for i, oj := range in.Objects {
		mesh, err := decodeMesh(oj.Mesh)
		if err != nil {
			return fmt.Errorf("scene: object %d: %w", i, err)
		}
		mat, err := decodeMaterial(oj.Material)
		if err != nil {
			return fmt.Errorf("scene: object %d: %w", i, err)
		}
		s.Add(Object{
			Mesh:     mesh,
			Material: mat,
			Position: arrVec3(oj.Position),
			Rotation: arrQuat(oj.Rotation),
			Scale:    arrVec3(oj.Scale),
			Text:     oj.Text,
			Spin:     arrVec3(oj.Spin),
		})
	}
	return nil
}

// Save writes the scene as indented JSON.
func (s *Scene) Save(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load reads a scene previously written by Save.
func Load(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func encodeMesh(m *Mesh) meshJSON {
	if m == nil {
		return meshJSON{Kind: "custom"}
	}
	switch m.kind {
	case meshCube:
		size := vec3Arr(m.size)
		return meshJSON{Kind: "cube", Size: &size}
	case meshBillboard:
		size := vec3Arr(m.size)
		return meshJSON{Kind: "billboard", Size: &size}
	default:
		out := meshJSON{Kind: "custom"}
		for _, v := range m.verts {
			out.Verts = append(out.Verts, vec3Arr(v))
		}
		out.Tris = m.tris
		out.Lines = m.lines
		out.Points = m.points
		return out
	}
}

func decodeMesh(mj meshJSON) (*Mesh, error) {
	switch mj.Kind {
	case "cube":
		if mj.Size == nil {
			return nil, fmt.Errorf("cube mesh missing size")
		}
		return Cube(arrVec3(*mj.Size)), nil
	case "billboard":
		if mj.Size == nil {
			return nil, fmt.Errorf("billboard mesh missing size")
		}
		return Billboard(mj.Size[0], mj.Size[1]), nil
	case "custom", "":
		verts := make([]mgl32.Vec3, len(mj.Verts))
		for i, v := range mj.Verts {
			verts[i] = arrVec3(v)
		}
		return NewMesh(verts, mj.Tris, mj.Lines, mj.Points), nil
	default:
		return nil, fmt.Errorf("unknown mesh kind %q", mj.Kind)
	}
}

func decodeMaterial(mj materialJSON) (Material, error) {
	c, err := ParseColor(mj.Color)
	if err != nil {
		return Material{}, err
	}
	switch mj.Kind {
	case "unlit", "":
		return Unlit(c), nil
	case "diffuse":
		return Diffuse(c), nil
	case "ui-text":
		return UIText(), nil
	default:
		return Material{}, fmt.Errorf("unknown material kind %q", mj.Kind)
	}
}

// ParseColor parses "#rrggbb" hex colors and SVG 1.1 color names into a
// linear RGB.
func ParseColor(s string) (agl.RGB, error) {
	if s == "" {
		return agl.RGB{}, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return agl.RGB{}, fmt.Errorf("scene: bad color %q", s)
		}
		var r, g, b uint8
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return agl.RGB{}, fmt.Errorf("scene: bad color %q", s)
		}
		return agl.SRGB8(r, g, b), nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return agl.SRGB8(c.R, c.G, c.B), nil
	}
	return agl.RGB{}, fmt.Errorf("scene: unknown color %q", s)
}

func formatColor(c agl.RGB) string {
	s := c.SRGB()
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(s.R*255+0.5), uint8(s.G*255+0.5), uint8(s.B*255+0.5))
}

func vec3Arr(v mgl32.Vec3) [3]float32 { return [3]float32{v.X(), v.Y(), v.Z()} }
func arrVec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3{a[0], a[1], a[2]} }

func quatArr(q mgl32.Quat) [4]float32 {
	return [4]float32{q.W, q.V.X(), q.V.Y(), q.V.Z()}
}

func arrQuat(a [4]float32) mgl32.Quat {
	return mgl32.Quat{W: a[0], V: mgl32.Vec3{a[1], a[2], a[3]}}
}
