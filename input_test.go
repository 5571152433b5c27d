package roomxr

import (
	"context"
	"testing"
	"time"

	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleKeyMovesActiveObject(t *testing.T) {
	tests := []struct {
		key  Key
		mods Modifier
		want mgl32.Vec3
	}{
		{KeyUp, 0, mgl32.Vec3{0, 0, -KeyStep}},
		{KeyDown, 0, mgl32.Vec3{0, 0, KeyStep}},
		{KeyLeft, 0, mgl32.Vec3{-KeyStep, 0, 0}},
		{KeyRight, 0, mgl32.Vec3{KeyStep, 0, 0}},
		{KeyQ, 0, mgl32.Vec3{0, KeyStep, 0}},
		{KeyE, 0, mgl32.Vec3{0, -KeyStep, 0}},
		{KeyRight, ModShift, mgl32.Vec3{KeyFineStep, 0, 0}},
		{KeyQ, ModShift | ModControl, mgl32.Vec3{0, KeyFineStep, 0}},
	}

	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	chair := ta.Primary()

	for _, tt := range tests {
		before := chair.Position
		require.True(t, ta.Input().HandleKey(tt.key, tt.mods))
		assert.True(t, chair.Position.Sub(before).ApproxEqualThreshold(tt.want, 1e-6), "key %v mods %v", tt.key, tt.mods)
	}
}

func TestHandleKeyModes(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)

	assert.True(t, ta.Input().HandleKey(KeyR, 0))
	assert.Equal(t, editor.GizmoRotate, ta.Gizmo().Mode())
	assert.True(t, ta.Input().HandleKey(KeyG, 0))
	assert.Equal(t, editor.GizmoTranslate, ta.Gizmo().Mode())
	assert.Same(t, ta.Primary(), ta.Selection().Active())
}

func TestHandleKeyIgnoresUnknownKeys(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	before := ta.Primary().Position

	for _, k := range []Key{KeyUnknown, KeyA, KeySpace, KeyEnter, KeyEscape} {
		assert.False(t, ta.Input().HandleKey(k, 0), "key %v", k)
	}
	assert.Equal(t, before, ta.Primary().Position)
	assert.Equal(t, 1, ta.Selectables().Len())
}

func TestHandleKeyWithoutSelection(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	ta.Selection().Select(nil)

	assert.False(t, ta.Input().HandleKey(KeyUp, 0))
	assert.False(t, ta.Input().HandleKey(KeyD, 0))
	assert.Equal(t, 1, ta.Selectables().Len())
}

func TestPointerSelectsAndMissKeepsSelection(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	chair := ta.Primary()
	ta.AddProduct("table", -0.8, -0.5)
	ta.waitObjects(t, 2)
	table := ta.Selection().Active()
	require.NotSame(t, chair, table)

	// Click the middle of the chair's seat mesh.
	x, y := ta.screenOf(chair.Position.Add(mgl32.Vec3{0, 0.45, 0}))
	assert.True(t, ta.Input().PointerDown(x, y, MouseButtonLeft))
	ta.Input().PointerUp(x, y, MouseButtonLeft)
	assert.Same(t, chair, ta.Selection().Active())

	// The top-left corner looks at the wall above everything.
	assert.False(t, ta.Input().PointerDown(0, 0, MouseButtonLeft))
	ta.Input().PointerUp(0, 0, MouseButtonLeft)
	assert.Same(t, chair, ta.Selection().Active())
}

func TestPointerDragsGizmoAndSuspendsOrbit(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	chair := ta.Primary()
	start := chair.Position

	x, y := ta.screenOf(start.Add(mgl32.Vec3{0.6, 0, 0}))
	require.True(t, ta.Input().PointerDown(x, y, MouseButtonLeft))
	require.True(t, ta.Gizmo().Dragging())
	assert.Equal(t, RegimeGizmoDragging, ta.Input().Regime())
	assert.False(t, ta.Orbit().Enabled())

	// Presses during a drag are ignored.
	assert.False(t, ta.Input().PointerDown(x, y, MouseButtonLeft))

	tx, ty := ta.screenOf(start.Add(mgl32.Vec3{0.9, 0, 0}))
	ta.Input().PointerMove(tx, ty)
	assert.InDelta(t, start.X()+0.3, chair.Position.X(), 1e-3)
	assert.InDelta(t, start.Z(), chair.Position.Z(), 1e-6)

	ta.Input().PointerUp(tx, ty, MouseButtonLeft)
	assert.False(t, ta.Gizmo().Dragging())
	assert.True(t, ta.Orbit().Enabled())
	assert.Equal(t, RegimeOrbit, ta.Input().Regime())
}

func TestPointerOrbitsCamera(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	before := ta.Camera().Position

	require.False(t, ta.Input().PointerDown(0, 0, MouseButtonLeft))
	ta.Input().PointerMove(120, 0)
	ta.Input().PointerUp(120, 0, MouseButtonLeft)
	for i := 0; i < 30; i++ {
		ta.Tick(time.Now(), nil)
	}

	assert.False(t, before.ApproxEqualThreshold(ta.Camera().Position, 1e-3))
	assert.InDelta(t, before.Len(), ta.Camera().Position.Len(), 1e-2)
}

func TestPointerIgnoredWhilePresentingAR(t *testing.T) {
	ta := newTestApp(t)
	ta.mount(t)
	ta.waitObjects(t, 1)
	chair := ta.Primary()
	ta.Duplicate()
	dup := ta.Selection().Active()

	require.NoError(t, ta.BeginAR(ta.SimulatedSession()))
	x, y := ta.screenOf(chair.Position.Add(mgl32.Vec3{0, 0.45, 0}))
	assert.False(t, ta.Input().PointerDown(x, y, MouseButtonLeft))
	assert.Same(t, dup, ta.Selection().Active())

	dist := ta.Orbit().Distance()
	ta.Input().Scroll(5)
	for i := 0; i < 10; i++ {
		ta.Tick(time.Now(), nil)
	}
	assert.InDelta(t, dist, ta.Orbit().Distance(), 1e-4)
	ta.EndAR()
}

func TestInputAfterUnmountIsIgnored(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.Mount(context.Background()))
	ta.waitObjects(t, 1)
	router := ta.Input()
	ta.Unmount()
	assert.Nil(t, ta.Input())

	assert.False(t, router.HandleKey(KeyUp, 0))
	assert.False(t, router.PointerDown(10, 10, MouseButtonLeft))
	router.PointerMove(20, 20)
	router.Scroll(1)
}
