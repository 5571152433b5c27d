package assets

import (
	"github.com/gekko3d/roomxr/engine/core"
)

// Stats summarizes a decoded model.
type Stats struct {
	Nodes      int
	Meshes     int
	Triangles  int
	Geometries int
	Materials  int
	Bounds     core.BBox
}

// Inspect counts the nodes of model and the distinct GPU resources they
// reference.
func Inspect(model *core.Node) Stats {
	s := Stats{Bounds: core.BoundsOf(model)}
	geos := map[*core.Geometry]struct{}{}
	mats := map[*core.Material]struct{}{}
	model.Traverse(func(n *core.Node) {
		s.Nodes++
		if n.Mesh == nil {
			return
		}
		s.Meshes++
		s.Triangles += n.Mesh.Geometry.TriangleCount()
		geos[n.Mesh.Geometry] = struct{}{}
		mats[n.Mesh.Material] = struct{}{}
	})
	s.Geometries = len(geos)
	s.Materials = len(mats)
	return s
}
