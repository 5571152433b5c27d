package roomxr

import (
	"github.com/gekko3d/roomxr/engine/camera"
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraModule creates the perspective camera and the damped orbit around
// the room origin.
type CameraModule struct{}

func (CameraModule) Install(app *App, cmd *Commands) error {
	cfg := app.Config.Camera
	aspect := float32(1)
	if w, h := app.Viewport(); w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	cam := core.NewPerspectiveCamera(cfg.Fov, aspect, cfg.Near, cfg.Far)
	cam.Position = mgl32.Vec3(cfg.Position)
	app.camera = cam

	orbit := camera.NewOrbit(cam, cfg.FPS, cfg.Damping)
	orbit.MinDistance = cfg.MinDistance
	orbit.MaxDistance = cfg.MaxDistance
	app.orbit = orbit
	cmd.AddResources(cam, orbit)

	cmd.Defer("orbit", func() {
		orbit.SetEnabled(false)
	})
	cmd.UseSystem(System(orbitDampingSystem).InStage(PostUpdate))
	return nil
}

func orbitDampingSystem(orbit *camera.Orbit) {
	orbit.Update()
}
