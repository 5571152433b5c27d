package editor

import (
	"testing"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObject(name string, pos mgl32.Vec3) *core.Node {
	geo := core.BoxGeometry(0.5, 1, 0.5)
	mat := core.NewStandardMaterial(name, core.RGB(0.5, 0.5, 0.5), 1, 0)
	defer geo.Release()
	defer mat.Release()

	root := core.NewGroup(name)
	leg := core.NewGroup("frame")
	leg.Add(core.NewMesh("seat", geo, mat))
	root.Add(leg)
	root.Position = pos
	return root
}

func TestGizmoTranslateDrag(t *testing.T) {
	g := NewGizmo(1.1)
	var events []bool
	g.OnDraggingChanged = func(d bool) { events = append(events, d) }

	chair := newObject("chair", mgl32.Vec3{})
	g.Attach(chair)

	down := core.Ray{Origin: mgl32.Vec3{0.5, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	h, ok := g.Pick(down)
	require.True(t, ok)
	assert.Equal(t, Handle{Axis: AxisX, Mode: GizmoTranslate}, h)

	require.True(t, g.BeginDrag(down))
	assert.True(t, g.Dragging())

	g.Drag(core.Ray{Origin: mgl32.Vec3{0.8, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.InDelta(t, 0.3, chair.Position.X(), 1e-5)
	assert.InDelta(t, 0, chair.Position.Y(), 1e-5)
	assert.InDelta(t, 0, chair.Position.Z(), 1e-5)

	g.EndDrag()
	g.EndDrag()
	assert.False(t, g.Dragging())
	assert.Equal(t, []bool{true, false}, events)
}

func TestGizmoRotateDrag(t *testing.T) {
	g := NewGizmo(1.1)
	g.SetMode(GizmoRotate)
	chair := newObject("chair", mgl32.Vec3{})
	g.Attach(chair)

	require.True(t, g.BeginDrag(core.Ray{Origin: mgl32.Vec3{1.1, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}))
	g.Drag(core.Ray{Origin: mgl32.Vec3{0, 5, -1.1}, Direction: mgl32.Vec3{0, -1, 0}})

	x := chair.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, x.X(), 1e-4)
	assert.InDelta(t, -1, x.Z(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, chair.Position)
}

func TestGizmoMissAndDetached(t *testing.T) {
	g := NewGizmo(1.1)
	ray := core.Ray{Origin: mgl32.Vec3{0.5, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	assert.False(t, g.BeginDrag(ray), "no target")
	assert.Empty(t, g.Shapes())

	g.Attach(newObject("chair", mgl32.Vec3{}))
	assert.False(t, g.BeginDrag(core.Ray{Origin: mgl32.Vec3{3, 3, 5}, Direction: mgl32.Vec3{0, 0, -1}}))
	assert.Len(t, g.Shapes(), 3)
}

func TestDetachEndsDrag(t *testing.T) {
	g := NewGizmo(1.1)
	g.Attach(newObject("chair", mgl32.Vec3{}))
	require.True(t, g.BeginDrag(core.Ray{Origin: mgl32.Vec3{0.5, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}))

	g.Detach()
	assert.False(t, g.Dragging())
	assert.False(t, g.Visible())
}

func TestParseGizmoMode(t *testing.T) {
	m, err := ParseGizmoMode("rotate")
	require.NoError(t, err)
	assert.Equal(t, GizmoRotate, m)
	assert.Equal(t, "translate", GizmoTranslate.String())

	_, err = ParseGizmoMode("scale")
	assert.Error(t, err)
}
