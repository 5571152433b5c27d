// Package camera implements damped orbit controls around a fixed target.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-3

// axis integrates a velocity that a critically damped spring pulls to zero.
type axis struct {
	value    float64
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newAxis(fps int, frequency float64) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)}
}

func (a *axis) update(damped bool) {
	a.value += a.velocity
	if damped {
		a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	} else {
		a.velocity, a.accel = 0, 0
	}
}

func (a *axis) stop() {
	a.velocity, a.accel = 0, 0
}

// Orbit rotates and zooms a camera around Target. Panning is not supported.
type Orbit struct {
	Camera *core.Camera
	Target mgl32.Vec3

	MinDistance float32
	MaxDistance float32
	// RotateSpeed is radians per pixel of pointer travel.
	RotateSpeed float64
	// ZoomSpeed scales scroll deltas into distance.
	ZoomSpeed float64
	// Damping 0 disables inertia.
	Damping float64

	enabled bool
	azimuth axis
	polar   axis
	radius  axis
}

// NewOrbit starts orbiting from the camera's current position. damping is
// the per-frame inertia factor; it is mapped onto the spring frequency.
func NewOrbit(cam *core.Camera, fps int, damping float64) *Orbit {
	freq := damping * 50
	if freq <= 0 {
		freq = 1
	}
	o := &Orbit{
		Camera:      cam,
		Target:      cam.Target,
		MinDistance: 0,
		MaxDistance: float32(math.Inf(1)),
		RotateSpeed: 2 * math.Pi / 800,
		ZoomSpeed:   0.1,
		Damping:     damping,
		enabled:     true,
		azimuth:     newAxis(fps, freq),
		polar:       newAxis(fps, freq),
		radius:      newAxis(fps, freq),
	}
	o.sync()
	return o
}

// sync reads the spherical coordinates back from the camera.
func (o *Orbit) sync() {
	offset := o.Camera.Position.Sub(o.Target)
	r := float64(offset.Len())
	o.radius.value = r
	if r == 0 {
		return
	}
	o.azimuth.value = math.Atan2(float64(offset.X()), float64(offset.Z()))
	o.polar.value = math.Acos(clamp(float64(offset.Y())/r, -1, 1))
}

func (o *Orbit) Enabled() bool {
	return o.enabled
}

// SetEnabled gates user input. Disabling also drops any remaining inertia.
func (o *Orbit) SetEnabled(v bool) {
	o.enabled = v
	if !v {
		o.azimuth.stop()
		o.polar.stop()
		o.radius.stop()
	}
}

// Rotate applies a pointer drag of (dx, dy) pixels.
func (o *Orbit) Rotate(dx, dy float64) {
	if !o.enabled {
		return
	}
	o.azimuth.velocity -= dx * o.RotateSpeed
	o.polar.velocity -= dy * o.RotateSpeed
}

// Zoom applies a scroll delta; positive values move closer.
func (o *Orbit) Zoom(delta float64) {
	if !o.enabled {
		return
	}
	o.radius.velocity -= delta * o.ZoomSpeed * o.radius.value
}

func (o *Orbit) Distance() float32 {
	return o.Camera.Position.Sub(o.Target).Len()
}

// Update advances inertia and writes the camera pose. It runs every frame
// whether or not input is enabled.
func (o *Orbit) Update() {
	damped := o.Damping > 0
	o.azimuth.update(damped)
	o.polar.update(damped)
	o.radius.update(damped)

	o.polar.value = clamp(o.polar.value, polarEpsilon, math.Pi-polarEpsilon)
	o.radius.value = clamp(o.radius.value, float64(o.MinDistance), float64(o.MaxDistance))

	r, theta, phi := o.radius.value, o.azimuth.value, o.polar.value
	offset := mgl32.Vec3{
		float32(r * math.Sin(phi) * math.Sin(theta)),
		float32(r * math.Cos(phi)),
		float32(r * math.Sin(phi) * math.Cos(theta)),
	}
	o.Camera.Position = o.Target.Add(offset)
	o.Camera.Target = o.Target
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
