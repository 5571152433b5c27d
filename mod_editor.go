package roomxr

import (
	"github.com/gekko3d/roomxr/engine/editor"
)

// GizmoSize is the world-space length of the transform handles.
const GizmoSize = 1.1

// EditorModule wires the selectable entities, the transform gizmo and the
// active selection. Orbit input is suspended for the length of a gizmo
// drag.
type EditorModule struct{}

func (EditorModule) Install(app *App, cmd *Commands) error {
	app.selectables = NewSelectables(app.ecs)
	app.gizmo = editor.NewGizmo(GizmoSize)
	app.gizmo.OnDraggingChanged = func(bool) { app.syncOrbit() }
	app.selection = NewSelection(app.scene, app.selectables, app.gizmo)
	cmd.AddResources(app.selectables, app.gizmo, app.selection)

	cmd.Defer("selectables", func() {
		for _, n := range app.selectables.Members() {
			n.RemoveFromParent()
			n.Dispose()
		}
		app.selectables.Reset()
	})
	cmd.Defer("gizmo", func() {
		app.gizmo.OnDraggingChanged = nil
		app.gizmo.Detach()
	})
	cmd.UseSystem(System(gizmoSyncSystem).InStage(Update))
	return nil
}

// gizmoSyncSystem keeps the gizmo on the entity carrying
// EditorSelectedComponent and following its world position.
func gizmoSyncSystem(cmd *Commands, gizmo *editor.Gizmo) {
	var selected *SelectableComponent
	MakeQuery2[SelectableComponent, EditorSelectedComponent](cmd).Map(
		func(_ EntityId, s *SelectableComponent, _ *EditorSelectedComponent) bool {
			selected = s
			return false
		})

	switch {
	case selected == nil:
		if gizmo.Visible() {
			gizmo.Detach()
		}
	case gizmo.Target() != selected.Node:
		gizmo.Attach(selected.Node)
	default:
		gizmo.Update()
	}
}
