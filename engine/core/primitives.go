package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoxGeometry is centered on the origin.
func BoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	p := []mgl32.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	idx := []uint32{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		3, 7, 6, 3, 6, 2, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return NewGeometry("box", p, idx)
}

// CylinderGeometry is centered on the origin with its axis along Y.
func CylinderGeometry(radiusTop, radiusBottom, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	hy := height / 2
	var p []mgl32.Vec3
	var idx []uint32
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := float32(math.Sin(a)), float32(math.Cos(a))
		p = append(p, mgl32.Vec3{radiusTop * s, hy, radiusTop * c}, mgl32.Vec3{radiusBottom * s, -hy, radiusBottom * c})
	}
	top := uint32(len(p))
	p = append(p, mgl32.Vec3{0, hy, 0}, mgl32.Vec3{0, -hy, 0})
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		a0, b0 := 2*i, 2*i+1
		a1, b1 := 2*((i+1)%n), 2*((i+1)%n)+1
		idx = append(idx, a0, b0, b1, a0, b1, a1)
		idx = append(idx, top, a0, a1)
		idx = append(idx, top+1, b1, b0)
	}
	return NewGeometry("cylinder", p, idx)
}

// RingGeometry is a flat annulus in the XY plane.
func RingGeometry(inner, outer float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	var p []mgl32.Vec3
	var idx []uint32
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := float32(math.Sin(a)), float32(math.Cos(a))
		p = append(p, mgl32.Vec3{inner * c, inner * s, 0}, mgl32.Vec3{outer * c, outer * s, 0})
	}
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		i0, o0 := 2*i, 2*i+1
		i1, o1 := 2*((i+1)%n), 2*((i+1)%n)+1
		idx = append(idx, i0, o0, o1, i0, o1, i1)
	}
	return NewGeometry("ring", p, idx)
}

// PlaneGeometry is a width x height quad in the XY plane.
func PlaneGeometry(width, height float32) *Geometry {
	hx, hy := width/2, height/2
	p := []mgl32.Vec3{{-hx, -hy, 0}, {hx, -hy, 0}, {hx, hy, 0}, {-hx, hy, 0}}
	return NewGeometry("plane", p, []uint32{0, 1, 2, 0, 2, 3})
}
