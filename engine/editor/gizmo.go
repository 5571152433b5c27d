package editor

import (
	"fmt"
	"math"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

type GizmoMode int

const (
	GizmoTranslate GizmoMode = iota
	GizmoRotate
)

func (m GizmoMode) String() string {
	switch m {
	case GizmoTranslate:
		return "translate"
	case GizmoRotate:
		return "rotate"
	}
	return fmt.Sprintf("GizmoMode(%d)", int(m))
}

func ParseGizmoMode(s string) (GizmoMode, error) {
	switch s {
	case "translate":
		return GizmoTranslate, nil
	case "rotate":
		return GizmoRotate, nil
	}
	return 0, fmt.Errorf("unknown gizmo mode %q", s)
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var axes = [...]Axis{AxisX, AxisY, AxisZ}

func (a Axis) Vector() mgl32.Vec3 {
	var v mgl32.Vec3
	v[a] = 1
	return v
}

func (a Axis) Color() core.Color {
	var c core.Color
	switch a {
	case AxisX:
		c.R = 1
	case AxisY:
		c.G = 1
	case AxisZ:
		c.B = 1
	}
	c.A = 1
	return c
}

// Handle is the part of the gizmo a pointer ray picked.
type Handle struct {
	Axis Axis
	Mode GizmoMode
}

// GizmoShape is one drawable element of the gizmo: a line from Start to End
// for translate handles, a circle around Center with Normal for rotate ones.
type GizmoShape struct {
	Handle Handle
	Start  mgl32.Vec3
	End    mgl32.Vec3
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Radius float32
	Color  core.Color
}

type dragState struct {
	handle   Handle
	startS   float32
	startVec mgl32.Vec3
	initial  core.Transform
}

// Gizmo is the shared, world-space manipulation widget. It is attached to at
// most one node at a time.
type Gizmo struct {
	Size float32

	// OnDraggingChanged fires when a handle drag starts or ends.
	OnDraggingChanged func(dragging bool)

	mode     GizmoMode
	target   *core.Node
	position mgl32.Vec3
	dragging bool
	drag     dragState
}

func NewGizmo(size float32) *Gizmo {
	return &Gizmo{Size: size}
}

func (g *Gizmo) Mode() GizmoMode {
	return g.mode
}

// SetMode reports whether the mode actually changed.
func (g *Gizmo) SetMode(m GizmoMode) bool {
	if g.mode == m {
		return false
	}
	g.EndDrag()
	g.mode = m
	return true
}

func (g *Gizmo) Attach(n *core.Node) {
	if g.target != n {
		g.EndDrag()
	}
	g.target = n
	g.Update()
}

func (g *Gizmo) Detach() {
	g.EndDrag()
	g.target = nil
}

func (g *Gizmo) Target() *core.Node {
	return g.target
}

// Visible is true exactly when the gizmo is attached.
func (g *Gizmo) Visible() bool {
	return g.target != nil
}

func (g *Gizmo) Dragging() bool {
	return g.dragging
}

func (g *Gizmo) Position() mgl32.Vec3 {
	return g.position
}

// Update follows the target's world position.
func (g *Gizmo) Update() {
	if g.target != nil {
		g.position = g.target.WorldPosition()
	}
}

// Shapes returns the handles of the current mode for drawing.
func (g *Gizmo) Shapes() []GizmoShape {
	if g.target == nil {
		return nil
	}
	shapes := make([]GizmoShape, 0, len(axes))
	for _, a := range axes {
		s := GizmoShape{
			Handle: Handle{Axis: a, Mode: g.mode},
			Color:  a.Color(),
		}
		if g.dragging && g.drag.handle.Axis == a {
			s.Color = core.RGB(1, 1, 0)
		}
		if g.mode == GizmoTranslate {
			s.Start = g.position
			s.End = g.position.Add(a.Vector().Mul(g.Size))
		} else {
			s.Center = g.position
			s.Normal = a.Vector()
			s.Radius = g.Size
		}
		shapes = append(shapes, s)
	}
	return shapes
}

// Pick returns the nearest handle under the ray.
func (g *Gizmo) Pick(ray core.Ray) (Handle, bool) {
	if g.target == nil {
		return Handle{}, false
	}
	var best Handle
	found := false
	minT := float32(math.MaxFloat32)

	for _, a := range axes {
		axis := a.Vector()
		switch g.mode {
		case GizmoTranslate:
			t, s, d := closestPoints(ray.Origin, ray.Direction, g.position, axis)
			if t > 0 && s >= 0 && s <= 1.1*g.Size && d < 0.12*g.Size && t < minT {
				minT, best, found = t, Handle{Axis: a, Mode: g.mode}, true
			}
		case GizmoRotate:
			t, ok := ray.IntersectPlane(g.position, axis)
			if !ok {
				continue
			}
			dist := ray.At(t).Sub(g.position).Len()
			if abs32(dist-g.Size) < 0.2*g.Size && t < minT {
				minT, best, found = t, Handle{Axis: a, Mode: g.mode}, true
			}
		}
	}
	return best, found
}

// BeginDrag starts a handle drag if the ray hits a handle.
func (g *Gizmo) BeginDrag(ray core.Ray) bool {
	h, ok := g.Pick(ray)
	if !ok {
		return false
	}
	axis := h.Axis.Vector()
	g.drag = dragState{handle: h, initial: g.target.Transform}
	if h.Mode == GizmoTranslate {
		_, s, _ := closestPoints(ray.Origin, ray.Direction, g.position, axis)
		g.drag.startS = s
	} else {
		t, _ := ray.IntersectPlane(g.position, axis)
		g.drag.startVec = ray.At(t).Sub(g.position).Normalize()
	}
	g.setDragging(true)
	return true
}

// Drag moves or rotates the target to follow the ray.
func (g *Gizmo) Drag(ray core.Ray) {
	if !g.dragging || g.target == nil {
		return
	}
	axis := g.drag.handle.Axis.Vector()
	switch g.drag.handle.Mode {
	case GizmoTranslate:
		r := ray.Origin.Sub(g.drag.initial.Position)
		a := ray.Direction.Dot(ray.Direction)
		b := ray.Direction.Dot(axis)
		f := axis.Dot(r)
		det := a - b*b
		if det <= 0.01 {
			return
		}
		c := ray.Direction.Dot(r)
		s := (a*f - b*c) / det
		g.target.Position = g.drag.initial.Position.Add(axis.Mul(s - g.drag.startS))
	case GizmoRotate:
		t, ok := ray.IntersectPlane(g.drag.initial.Position, axis)
		if !ok {
			return
		}
		current := ray.At(t).Sub(g.drag.initial.Position).Normalize()
		cos := mgl32.Clamp(current.Dot(g.drag.startVec), -1, 1)
		angle := float32(math.Acos(float64(cos)))
		if g.drag.startVec.Cross(current).Dot(axis) < 0 {
			angle = -angle
		}
		g.target.Rotation = mgl32.QuatRotate(angle, axis).Mul(g.drag.initial.Rotation).Normalize()
	}
	g.Update()
}

func (g *Gizmo) EndDrag() {
	if g.dragging {
		g.setDragging(false)
	}
}

func (g *Gizmo) setDragging(v bool) {
	g.dragging = v
	if g.OnDraggingChanged != nil {
		g.OnDraggingChanged(v)
	}
}

// closestPoints returns the ray parameter t, the axis parameter s and the
// distance between the two closest points of a ray and an axis line.
func closestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < 1e-6 {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
