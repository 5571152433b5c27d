package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list in object space.
type Geometry struct {
	shared
	Name      string
	Positions []mgl32.Vec3
	Indices   []uint32
	bounds    BBox
}

// NewGeometry creates a geometry owned by the caller. Pass it to NewMesh and
// Release the caller's reference once the meshes are built.
func NewGeometry(name string, positions []mgl32.Vec3, indices []uint32) *Geometry {
	g := &Geometry{
		Name:      name,
		Positions: positions,
		Indices:   indices,
	}
	g.init()
	g.computeBounds()
	return g
}

func (g *Geometry) computeBounds() {
	b := EmptyBBox()
	for _, p := range g.Positions {
		b = b.Extend(p)
	}
	g.bounds = b
}

// Bounds returns the object-space bounding box.
func (g *Geometry) Bounds() BBox {
	return g.bounds
}

func (g *Geometry) TriangleCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the vertices of triangle i.
func (g *Geometry) Triangle(i int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	if len(g.Indices) > 0 {
		return g.Positions[g.Indices[i*3]], g.Positions[g.Indices[i*3+1]], g.Positions[g.Indices[i*3+2]]
	}
	return g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
}

// ApplyMatrix bakes m into the vertex positions.
func (g *Geometry) ApplyMatrix(m mgl32.Mat4) *Geometry {
	for i, p := range g.Positions {
		g.Positions[i] = mgl32.TransformCoordinate(p, m)
	}
	g.computeBounds()
	return g
}

// RotateX bakes a rotation around X into the vertex positions.
func (g *Geometry) RotateX(angle float32) *Geometry {
	return g.ApplyMatrix(mgl32.HomogRotate3DX(angle))
}

// Retain adds a reference for a new user of the geometry.
func (g *Geometry) Retain() *Geometry {
	g.retain()
	return g
}

// Release drops one reference; the GPU copy is freed with the last one.
func (g *Geometry) Release() {
	g.release()
}
