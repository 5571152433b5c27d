package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Fov    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		Position: mgl32.Vec3{0, 0, 1},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// RayFromNDC builds the world-space ray through normalized device coords
// (x right, y up, both in [-1, 1]).
func (c *Camera) RayFromNDC(x, y float32) Ray {
	inv := c.ViewProjection().Inv()
	far := mgl32.TransformCoordinate(mgl32.Vec3{x, y, 1}, inv)
	return Ray{
		Origin:    c.Position,
		Direction: far.Sub(c.Position).Normalize(),
	}
}

// PointerToNDC maps a pixel position inside a width x height viewport to
// normalized device coordinates.
func PointerToNDC(px, py float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x := float32(px/float64(width))*2 - 1
	y := -float32(py/float64(height))*2 + 1
	return x, y
}
