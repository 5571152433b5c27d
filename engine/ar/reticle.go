package ar

import (
	"math"

	"github.com/gekko3d/roomxr/engine/core"
)

var ReticleColor = core.MustColor("#7ef9ff")

// NewReticle builds the hidden floor ring shown at the current hit.
func NewReticle() *core.Node {
	geo := core.RingGeometry(0.08, 0.11, 32).RotateX(-math.Pi / 2)
	mat := core.NewBasicMaterial("reticle", ReticleColor)
	defer geo.Release()
	defer mat.Release()

	n := core.NewMesh("reticle", geo, mat)
	n.Visible = false
	return n
}
