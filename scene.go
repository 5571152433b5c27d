package roomxr

import (
	"fmt"
	"math"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneModule creates the scene with its room shell and lights. It is
// installed first so the scene is disposed last.
type SceneModule struct{}

func (SceneModule) Install(app *App, cmd *Commands) error {
	cfg := app.Config.Scene
	bg, err := core.ParseColor(cfg.Background)
	if err != nil {
		return fmt.Errorf("scene background: %w", err)
	}
	room, err := buildRoom(cfg.Room, cfg.FloorY)
	if err != nil {
		return err
	}

	scene := core.NewScene(bg)
	scene.Add(room)
	for _, l := range roomLights() {
		scene.AddLight(l)
	}
	app.scene = scene
	cmd.AddResources(scene)
	cmd.Defer("scene", scene.Dispose)
	return nil
}

// buildRoom returns the walls, seen from inside, and a floor slab raised
// slightly above floorY so it does not fight the wall box.
func buildRoom(cfg RoomConfig, floorY float32) (*core.Node, error) {
	wallColor, err := core.ParseColor(cfg.WallColor)
	if err != nil {
		return nil, fmt.Errorf("room wall color: %w", err)
	}
	floorColor, err := core.ParseColor(cfg.FloorColor)
	if err != nil {
		return nil, fmt.Errorf("room floor color: %w", err)
	}

	room := core.NewGroup("room")

	wallGeo := core.BoxGeometry(cfg.Width, cfg.Height, cfg.Depth)
	wallMat := core.NewStandardMaterial("room-walls", wallColor, 0.95, 0.05)
	wallMat.Side = core.BackSide
	walls := core.NewMesh("walls", wallGeo, wallMat)
	walls.Position = mgl32.Vec3{0, floorY + cfg.Height/2, 0}
	walls.SetShadows(false, true)
	wallGeo.Release()
	wallMat.Release()

	floorGeo := core.PlaneGeometry(cfg.Width-0.4, cfg.Depth-0.4).RotateX(-math.Pi / 2)
	floorMat := core.NewStandardMaterial("room-floor", floorColor, 0.9, 0.1)
	floor := core.NewMesh("floor", floorGeo, floorMat)
	floor.Position = mgl32.Vec3{0, floorY + 0.01, 0}
	floor.SetShadows(false, true)
	floorGeo.Release()
	floorMat.Release()

	room.Add(walls, floor)
	return room, nil
}
