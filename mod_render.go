package roomxr

import (
	"fmt"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/gekko3d/roomxr/engine/render"
)

// RenderModule creates the renderer from the builder's factory and draws
// one view per tick. Without a factory the app runs headless.
type RenderModule struct{}

func (RenderModule) Install(app *App, cmd *Commands) error {
	if app.renderer == nil {
		return nil
	}
	r, err := app.renderer(app.Config)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	app.view = r
	cmd.AddResources(&RenderTarget{View: r, Reticle: app.reticle})
	cmd.Defer("renderer", r.Release)
	if w, h := app.Viewport(); w > 0 && h > 0 {
		r.Resize(w, h)
	}
	cmd.UseSystem(System(drawSystem).InStage(Render))
	return nil
}

// RenderTarget is the renderer of the current mount and the overlays it
// draws besides the scene.
type RenderTarget struct {
	View    render.Renderer
	Reticle *core.Node
}

func drawSystem(cmd *Commands, target *RenderTarget, scene *core.Scene, cam *core.Camera, gizmo *editor.Gizmo, sel *Selection) {
	in := render.Inputs{
		Scene:    scene,
		Camera:   cam,
		Reticle:  target.Reticle,
		Selected: sel.Active(),
	}
	if gizmo.Visible() {
		in.Gizmo = gizmo.Shapes()
	}
	if err := target.View.Render(render.BuildView(in)); err != nil {
		cmd.Logger().Errorf("render: %v", err)
	}
}
