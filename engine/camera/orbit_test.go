package camera

import (
	"testing"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestOrbit() *Orbit {
	cam := core.NewPerspectiveCamera(60, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0.8, 2.4}
	o := NewOrbit(cam, 60, 0.08)
	o.MinDistance = 1.2
	o.MaxDistance = 6
	return o
}

func settle(o *Orbit) {
	for range 600 {
		o.Update()
	}
}

func TestOrbitKeepsStartingPose(t *testing.T) {
	o := newTestOrbit()
	o.Update()
	assert.InDelta(t, 0, o.Camera.Position.X(), 1e-5)
	assert.InDelta(t, 0.8, o.Camera.Position.Y(), 1e-5)
	assert.InDelta(t, 2.4, o.Camera.Position.Z(), 1e-5)
}

func TestOrbitRotatePreservesDistance(t *testing.T) {
	o := newTestOrbit()
	d := o.Distance()

	o.Rotate(120, 10)
	settle(o)

	assert.InDelta(t, d, o.Distance(), 1e-4)
	assert.NotEqual(t, float32(0), o.Camera.Position.X())
	assert.Equal(t, mgl32.Vec3{}, o.Camera.Target)
}

func TestOrbitInertiaDecays(t *testing.T) {
	o := newTestOrbit()
	o.Rotate(50, 0)
	o.Update()
	first := o.Camera.Position

	settle(o)
	rest := o.Camera.Position
	o.Update()
	assert.NotEqual(t, first, rest)
	assert.InDelta(t, 0, o.Camera.Position.Sub(rest).Len(), 1e-5)
}

func TestOrbitZoomIsClamped(t *testing.T) {
	o := newTestOrbit()
	for range 50 {
		o.Zoom(10)
		o.Update()
	}
	settle(o)
	assert.InDelta(t, 1.2, o.Distance(), 1e-4)

	for range 50 {
		o.Zoom(-10)
		o.Update()
	}
	settle(o)
	assert.InDelta(t, 6, o.Distance(), 1e-4)
}

func TestOrbitDisabledIgnoresInput(t *testing.T) {
	o := newTestOrbit()
	o.Rotate(100, 0)
	o.SetEnabled(false)
	assert.False(t, o.Enabled())

	o.Rotate(100, 100)
	o.Zoom(5)
	settle(o)
	assert.InDelta(t, 0, o.Camera.Position.X(), 1e-5)
	assert.InDelta(t, 2.4, o.Camera.Position.Z(), 1e-5)

	o.SetEnabled(true)
	o.Rotate(100, 0)
	settle(o)
	assert.NotEqual(t, float32(0), o.Camera.Position.X())
}

func TestOrbitPolarClamp(t *testing.T) {
	o := newTestOrbit()
	o.Rotate(0, 100000)
	settle(o)
	assert.Greater(t, o.Camera.Position.Y(), float32(-6))
	assert.InDelta(t, 0, o.Camera.Position.X(), 1e-2)
}
