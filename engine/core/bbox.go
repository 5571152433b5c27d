package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max mgl32.Vec3
}

func EmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b BBox) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

func (b BBox) Extend(p mgl32.Vec3) BBox {
	return BBox{
		Min: mgl32.Vec3{min(b.Min.X(), p.X()), min(b.Min.Y(), p.Y()), min(b.Min.Z(), p.Z())},
		Max: mgl32.Vec3{max(b.Max.X(), p.X()), max(b.Max.Y(), p.Y()), max(b.Max.Z(), p.Z())},
	}
}

func (b BBox) Union(o BBox) BBox {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

func (b BBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BBox) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Transform returns the box enclosing the eight transformed corners.
func (b BBox) Transform(m mgl32.Mat4) BBox {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBBox()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			corner[0] = b.Max.X()
		}
		if i&2 != 0 {
			corner[1] = b.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = b.Max.Z()
		}
		out = out.Extend(mgl32.TransformCoordinate(corner, m))
	}
	return out
}

// BoundsOf returns the world-space box of every mesh in the subtree.
func BoundsOf(n *Node) BBox {
	b := EmptyBBox()
	n.Traverse(func(c *Node) {
		if c.Mesh == nil || c.Mesh.Geometry == nil {
			return
		}
		b = b.Union(c.Mesh.Geometry.Bounds().Transform(c.WorldMatrix()))
	})
	return b
}
