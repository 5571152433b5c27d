package roomxr

import (
	"github.com/gekko3d/roomxr/engine/ar"
	"github.com/gekko3d/roomxr/engine/camera"
)

// ARModule owns the reticle and the hit-test placement state machine. An
// open session is ended before the reticle is released.
type ARModule struct{}

func (ARModule) Install(app *App, cmd *Commands) error {
	reticle := ar.NewReticle()
	app.scene.Add(reticle)
	app.reticle = reticle

	placement := ar.NewPlacement(reticle, app.Config.Scene.FloorY, cmd.Post, app.Logger())
	placement.OnPresentingChanged = func(presenting bool) {
		app.Logger().Infof("ar session presenting=%v", presenting)
		app.syncOrbit()
	}
	app.placement = placement
	cmd.AddResources(placement)

	cmd.Defer("reticle", func() {
		reticle.RemoveFromParent()
		reticle.Dispose()
	})
	cmd.Defer("ar-session", placement.End)
	cmd.UseSystem(System(arPlacementSystem).InStage(PreUpdate))
	return nil
}

func arPlacementSystem(frame *Frame, placement *ar.Placement, orbit *camera.Orbit) {
	if !placement.Presenting() {
		return
	}
	orbit.SetEnabled(false)
	placement.Step(frame.XR)
}

// SimulatedSession returns an AR session that hit-tests the center of the
// current view against the floor.
func (app *App) SimulatedSession() *ar.SimulatedSession {
	return &ar.SimulatedSession{Camera: app.camera, FloorY: app.Config.Scene.FloorY}
}
