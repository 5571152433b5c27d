package roomxr

import (
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

// roomLights is the fixed rig: a soft ambient, a warm key casting shadows
// and a cool fill.
func roomLights() []core.Light {
	return []core.Light{
		{
			Type:      core.LightTypeAmbient,
			Color:     core.MustColor("#ffffff"),
			Intensity: 0.8,
		},
		{
			Type:       core.LightTypeDirectional,
			Color:      core.MustColor("#ffb969"),
			Intensity:  0.8,
			Position:   mgl32.Vec3{2, 3, 4},
			CastShadow: true,
		},
		{
			Type:      core.LightTypeDirectional,
			Color:     core.MustColor("#6aa9ff"),
			Intensity: 0.6,
			Position:  mgl32.Vec3{-3, 1, 2},
		},
	}
}
