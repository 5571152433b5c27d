package roomxr

import (
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/go-gl/mathgl/mgl32"
)

type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyE
	KeyG
	KeyQ
	KeyR
	KeySpace
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
)

const (
	KeyStep     float32 = 0.15
	KeyFineStep float32 = 0.05
)

type Regime int

const (
	RegimeOrbit Regime = iota
	RegimeARPresenting
	RegimeGizmoDragging
)

func (r Regime) String() string {
	switch r {
	case RegimeARPresenting:
		return "ar-presenting"
	case RegimeGizmoDragging:
		return "gizmo-dragging"
	}
	return "orbit"
}

// InputRouter turns pointer and keyboard events into selection, transform
// and camera commands. It must be used from the frame thread.
type InputRouter struct {
	app *App

	rotating     bool
	lastX, lastY float64
}

func newInputRouter(app *App) *InputRouter {
	return &InputRouter{app: app}
}

func (r *InputRouter) Regime() Regime {
	switch {
	case r.app.placement != nil && r.app.placement.Presenting():
		return RegimeARPresenting
	case r.app.gizmo != nil && r.app.gizmo.Dragging():
		return RegimeGizmoDragging
	}
	return RegimeOrbit
}

func (r *InputRouter) ray(x, y float64) core.Ray {
	w, h := r.app.Viewport()
	nx, ny := core.PointerToNDC(x, y, w, h)
	return r.app.camera.RayFromNDC(nx, ny)
}

// PointerDown offers the press to the gizmo first, then picks an object. A
// miss keeps the current selection. It reports whether the press selected
// or grabbed something.
func (r *InputRouter) PointerDown(x, y float64, button MouseButton) bool {
	if !r.app.Mounted() || r.Regime() != RegimeOrbit {
		return false
	}
	r.lastX, r.lastY = x, y
	if button != MouseButtonLeft {
		return false
	}

	ray := r.ray(x, y)
	if r.app.gizmo.BeginDrag(ray) {
		return true
	}
	r.rotating = true

	hits := core.Raycast(ray, r.app.selectables.Members(), true)
	if len(hits) == 0 {
		return false
	}
	target := r.app.selectables.ResolveHit(hits[0].Node)
	if target == nil {
		return false
	}
	r.app.selection.Select(target)
	return true
}

// PointerMove drags the gizmo handle or orbits the camera.
func (r *InputRouter) PointerMove(x, y float64) {
	if !r.app.Mounted() {
		return
	}
	dx, dy := x-r.lastX, y-r.lastY
	r.lastX, r.lastY = x, y

	switch r.Regime() {
	case RegimeGizmoDragging:
		r.app.gizmo.Drag(r.ray(x, y))
	case RegimeOrbit:
		if r.rotating {
			r.app.orbit.Rotate(dx, dy)
		}
	}
}

func (r *InputRouter) PointerUp(x, y float64, button MouseButton) {
	if button != MouseButtonLeft || !r.app.Mounted() {
		return
	}
	r.rotating = false
	r.app.gizmo.EndDrag()
}

// Scroll zooms the orbit camera.
func (r *InputRouter) Scroll(dy float64) {
	if r.app.Mounted() && r.Regime() == RegimeOrbit {
		r.app.orbit.Zoom(dy)
	}
}

// HandleKey applies a key press to the active object. It returns false for
// keys it does not handle and when nothing is selected.
func (r *InputRouter) HandleKey(key Key, mods Modifier) bool {
	if !r.app.Mounted() {
		return false
	}
	sel := r.app.selection
	if sel.Active() == nil {
		return false
	}

	step := KeyStep
	if mods&ModShift != 0 {
		step = KeyFineStep
	}

	switch key {
	case KeyUp:
		sel.Nudge(mgl32.Vec3{0, 0, -step})
	case KeyDown:
		sel.Nudge(mgl32.Vec3{0, 0, step})
	case KeyLeft:
		sel.Nudge(mgl32.Vec3{-step, 0, 0})
	case KeyRight:
		sel.Nudge(mgl32.Vec3{step, 0, 0})
	case KeyQ:
		sel.Nudge(mgl32.Vec3{0, step, 0})
	case KeyE:
		sel.Nudge(mgl32.Vec3{0, -step, 0})
	case KeyG:
		sel.SetMode(editor.GizmoTranslate)
	case KeyR:
		sel.SetMode(editor.GizmoRotate)
	case KeyD:
		sel.Duplicate()
	case KeyDelete, KeyBackspace:
		sel.DeleteActive()
	default:
		return false
	}
	return true
}
