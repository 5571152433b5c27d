// Package render flattens a scene into the wireframe instances drawn by the
// GPU line pass.
package render

import (
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/go-gl/mathgl/mgl32"
)

type Shape int

const (
	ShapeLine Shape = iota
	ShapeBox
	ShapeCircle
)

var Shapes = [...]Shape{ShapeLine, ShapeBox, ShapeCircle}

// Instance places a unit shape in the world. The unit line runs from the
// origin to +Z, the unit box spans [-0.5, 0.5] and the unit circle has
// radius 1 in the XY plane.
type Instance struct {
	Shape Shape
	Model mgl32.Mat4
	Color core.Color
}

// View is everything a renderer needs for one frame.
type View struct {
	Background core.Color
	ViewProj   mgl32.Mat4
	Instances  []Instance
}

func (v *View) Count(s Shape) int {
	n := 0
	for _, in := range v.Instances {
		if in.Shape == s {
			n++
		}
	}
	return n
}

// Renderer draws views to a surface.
type Renderer interface {
	Render(v *View) error
	Resize(width, height int)
	Release()
}

var selectedColor = core.RGB(1, 0.85, 0.2)

// Inputs of BuildView. Reticle and Selected may be nil.
type Inputs struct {
	Scene    *core.Scene
	Camera   *core.Camera
	Gizmo    []editor.GizmoShape
	Reticle  *core.Node
	Selected *core.Node
}

// BuildView draws every visible mesh as its world bounding box, lit by the
// scene's ambient lights, then the gizmo and the reticle on top.
func BuildView(in Inputs) *View {
	v := &View{
		Background: in.Scene.Background,
		ViewProj:   in.Camera.ViewProjection(),
	}
	ambient := ambientOf(in.Scene.Lights)

	walk(in.Scene.Root, 0, func(n *core.Node) {
		if n.Mesh == nil || n == in.Reticle {
			return
		}
		box := n.Mesh.Geometry.Bounds().Transform(n.WorldMatrix())
		c := n.Mesh.Material.Color
		if !n.Mesh.Material.Unlit {
			c = shade(c, ambient)
		}
		if in.Selected != nil && (n == in.Selected || n.IsDescendantOf(in.Selected)) {
			c = selectedColor
		}
		v.Instances = append(v.Instances, BoxInstance(box, c))
	})

	for _, l := range in.Scene.Lights {
		if l.Type == core.LightTypeDirectional {
			v.Instances = append(v.Instances, LineInstance(l.Position, mgl32.Vec3{}, shade(l.Color, l.Intensity)))
		}
	}

	for _, s := range in.Gizmo {
		if s.Handle.Mode == editor.GizmoTranslate {
			v.Instances = append(v.Instances, LineInstance(s.Start, s.End, s.Color))
		} else {
			v.Instances = append(v.Instances, CircleInstance(s.Center, s.Normal, s.Radius, s.Color))
		}
	}

	if r := in.Reticle; r != nil && r.Visible && r.Mesh != nil {
		m := r.WorldMatrix()
		pos := m.Col(3).Vec3()
		up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
		radius := r.Mesh.Geometry.Bounds().Size().X() / 2
		v.Instances = append(v.Instances, CircleInstance(pos, up, radius, r.Mesh.Material.Color))
	}
	return v
}

// walk visits visible nodes only; hidden nodes hide their subtree.
func walk(n *core.Node, depth int, fn func(*core.Node)) {
	if !n.Visible || depth > core.MaxDepth {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

func ambientOf(lights []core.Light) float32 {
	var a float32
	found := false
	for _, l := range lights {
		if l.Type == core.LightTypeAmbient {
			a += l.Intensity
			found = true
		}
	}
	if !found {
		return 1
	}
	return a
}

func shade(c core.Color, k float32) core.Color {
	return core.Color{R: min(c.R*k, 1), G: min(c.G*k, 1), B: min(c.B*k, 1), A: c.A}
}

// LineInstance maps the unit line onto from -> to.
func LineInstance(from, to mgl32.Vec3, c core.Color) Instance {
	diff := to.Sub(from)
	dist := diff.Len()
	m := mgl32.Translate3D(from.X(), from.Y(), from.Z())
	if dist > 1e-4 {
		rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, diff.Mul(1/dist))
		m = m.Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(1, 1, dist))
	} else {
		m = m.Mul4(mgl32.Scale3D(0, 0, 0))
	}
	return Instance{Shape: ShapeLine, Model: m, Color: c}
}

func BoxInstance(b core.BBox, c core.Color) Instance {
	center, size := b.Center(), b.Size()
	m := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
	return Instance{Shape: ShapeBox, Model: m, Color: c}
}

// CircleInstance orients the unit circle so its plane is perpendicular to
// normal.
func CircleInstance(center, normal mgl32.Vec3, radius float32, c core.Color) Instance {
	rot := mgl32.QuatIdent()
	if normal.Len() > 1e-6 {
		rot = mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, normal.Normalize())
	}
	m := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(radius, radius, radius))
	return Instance{Shape: ShapeCircle, Model: m, Color: c}
}
