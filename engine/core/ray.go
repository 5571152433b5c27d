package core

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectBBox returns the entry distance of the ray into b.
func (r Ray) IntersectBBox(b BBox) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	invDir := mgl32.Vec3{1.0 / (r.Direction.X() + 1e-8), 1.0 / (r.Direction.Y() + 1e-8), 1.0 / (r.Direction.Z() + 1e-8)}
	t1 := b.Min.Sub(r.Origin)
	t1 = mgl32.Vec3{t1.X() * invDir.X(), t1.Y() * invDir.Y(), t1.Z() * invDir.Z()}
	t2 := b.Max.Sub(r.Origin)
	t2 = mgl32.Vec3{t2.X() * invDir.X(), t2.Y() * invDir.Y(), t2.Z() * invDir.Z()}

	tMin := max(0, max(min(t1.X(), t2.X()), min(t1.Y(), t2.Y()), min(t1.Z(), t2.Z())))
	tMax := min(max(t1.X(), t2.X()), max(t1.Y(), t2.Y()), max(t1.Z(), t2.Z()))

	if tMax < tMin {
		return 0, false
	}
	return tMin, true
}

// IntersectTriangle is Möller-Trumbore, double sided.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if float32(math.Abs(float64(det))) < eps {
		return 0, false
	}
	inv := 1.0 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}

// IntersectPlane intersects the plane through point with the given normal.
func (r Ray) IntersectPlane(point, normal mgl32.Vec3) (float32, bool) {
	denom := r.Direction.Dot(normal)
	if math.Abs(float64(denom)) < 1e-6 {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is a ray intersection with a mesh node.
type Hit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// Raycast intersects the ray with the meshes of roots (and their descendants
// when recursive) and returns hits sorted nearest first. Hidden subtrees are
// skipped.
func Raycast(ray Ray, roots []*Node, recursive bool) []Hit {
	var hits []Hit
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !n.Visible || depth > MaxDepth {
			return
		}
		if h, ok := raycastMesh(ray, n); ok {
			hits = append(hits, h)
		}
		if !recursive {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, root := range roots {
		visit(root, 0)
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

func raycastMesh(ray Ray, n *Node) (Hit, bool) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return Hit{}, false
	}
	geo := n.Mesh.Geometry
	world := n.WorldMatrix()
	inv := world.Inv()

	// Object-space ray; distances are measured back in world space.
	local := Ray{
		Origin:    mgl32.TransformCoordinate(ray.Origin, inv),
		Direction: mgl32.TransformNormal(ray.Direction, inv),
	}
	if local.Direction.Len() < 1e-12 {
		return Hit{}, false
	}
	local.Direction = local.Direction.Normalize()

	if _, ok := local.IntersectBBox(geo.Bounds()); !ok {
		return Hit{}, false
	}

	best := float32(math.MaxFloat32)
	found := false
	for i := 0; i < geo.TriangleCount(); i++ {
		a, b, c := geo.Triangle(i)
		if t, ok := local.IntersectTriangle(a, b, c); ok && t < best {
			best = t
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	point := mgl32.TransformCoordinate(local.At(best), world)
	return Hit{
		Node:     n,
		Distance: point.Sub(ray.Origin).Len(),
		Point:    point,
	}, true
}
