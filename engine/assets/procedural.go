package assets

import (
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	tableTopColor = core.MustColor("#8b7355")
	tableLegColor = core.MustColor("#6b5744")
)

// ProceduralTable builds the stand-in used when the table model is missing:
// a 1.2 x 0.05 x 0.8 slab at height 0.7 on four cylindrical legs.
func ProceduralTable() *core.Node {
	table := core.NewGroup(Table)

	topGeo := core.BoxGeometry(1.2, 0.05, 0.8)
	topMat := core.NewStandardMaterial("table-top", tableTopColor, 0.8, 0.1)
	top := core.NewMesh("table-top", topGeo, topMat)
	top.Position = mgl32.Vec3{0, 0.7, 0}
	table.Add(top)
	topGeo.Release()
	topMat.Release()

	legGeo := core.CylinderGeometry(0.03, 0.03, 0.7, 32)
	legMat := core.NewStandardMaterial("table-leg", tableLegColor, 0.9, 0.05)
	for _, p := range []mgl32.Vec3{
		{-0.5, 0.35, -0.35},
		{0.5, 0.35, -0.35},
		{-0.5, 0.35, 0.35},
		{0.5, 0.35, 0.35},
	} {
		leg := core.NewMesh("table-leg", legGeo, legMat)
		leg.Position = p
		table.Add(leg)
	}
	legGeo.Release()
	legMat.Release()

	table.SetShadows(true, true)
	return table
}
