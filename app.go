package roomxr

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"time"

	"github.com/gekko3d/roomxr/engine/ar"
	"github.com/gekko3d/roomxr/engine/assets"
	"github.com/gekko3d/roomxr/engine/camera"
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/gekko3d/roomxr/engine/render"
)

var (
	ErrMounted       = errors.New("app is already mounted")
	ErrNotMounted    = errors.New("app is not mounted")
	ErrARUnavailable = errors.New("in-scene AR is unavailable on this platform")
)

// Controller is the surface the UI chrome drives.
type Controller interface {
	SetMode(mode editor.GizmoMode)
	Duplicate()
	AddChair()
	AddTable()
	ARCapable() bool
}

var _ Controller = (*App)(nil)

type Module interface {
	Install(app *App, cmd *Commands) error
}

// RendererFactory creates the renderer for a mount. A nil factory runs the
// app headless.
type RendererFactory func(cfg Config) (render.Renderer, error)

// QuickLookAsset links a product to its platform AR file.
type QuickLookAsset struct {
	ID   string
	Path string
}

// App owns the scene and everything that manipulates it. All methods except
// Commands().Post must be called from the frame thread.
type App struct {
	Config Config

	logger    Logger
	stages    []Stage
	systems   map[string][]scheduledSystem
	modules   []Module
	resources map[reflect.Type]any
	renderer  RendererFactory
	source    assets.ModelSource
	binder    InputBinder
	rand      *rand.Rand
	goos      string

	mounted  bool
	ecs      *Ecs
	ctx      context.Context
	cancel   context.CancelFunc
	scope    *Scope
	cmd      *Commands
	tick     func(now time.Time, xr ar.Frame)
	lastTick time.Time
	width    int
	height   int

	scene       *core.Scene
	camera      *core.Camera
	orbit       *camera.Orbit
	selectables *Selectables
	gizmo       *editor.Gizmo
	selection   *Selection
	placement   *ar.Placement
	reticle     *core.Node
	catalog     *assets.Catalog
	loader      *assets.Loader
	loads       *assets.Queue
	view        render.Renderer
	input       *InputRouter
	primary     *core.Node
}

// Mount builds the scene, installs every module and starts the frame loop.
// On error everything acquired so far is released.
func (app *App) Mount(ctx context.Context) error {
	if app.mounted {
		return ErrMounted
	}
	app.ctx, app.cancel = context.WithCancel(ctx)
	app.scope = &Scope{}
	app.cmd = newCommands(app)
	ecs := MakeEcs()
	app.ecs = &ecs
	app.systems = nil
	app.resources = nil
	app.lastTick = time.Time{}
	app.mounted = true

	for _, m := range app.modules {
		if err := m.Install(app, app.cmd); err != nil {
			app.Unmount()
			return fmt.Errorf("install %T: %w", m, err)
		}
	}
	app.tick = app.runFrame
	app.Logger().Debugf("mounted with systems %v", app.Systems())
	return nil
}

// Unmount stops the frame loop, rejects further posts, abandons queued
// loads and releases every resource of the mount in reverse order.
func (app *App) Unmount() {
	if !app.mounted {
		return
	}
	app.mounted = false
	app.tick = nil
	app.cmd.close()
	app.cancel()
	released := app.scope.Close()
	// Completions posted before close see an unmounted app and release
	// what they carry.
	app.cmd.Flush()
	app.Logger().Debugf("unmounted, released %v", released)

	app.scene, app.camera, app.orbit = nil, nil, nil
	app.selectables, app.gizmo, app.selection = nil, nil, nil
	app.placement, app.reticle = nil, nil
	app.loader, app.loads, app.view = nil, nil, nil
	app.input, app.primary = nil, nil
	app.ecs, app.resources = nil, nil
}

func (app *App) Mounted() bool {
	return app.mounted
}

// Tick is the per-frame callback driven by the host's presentation clock.
// xr is the device frame while an AR session is presenting, otherwise nil.
func (app *App) Tick(now time.Time, xr ar.Frame) {
	if app.tick != nil {
		app.tick(now, xr)
	}
}

func (app *App) runFrame(now time.Time, xr ar.Frame) {
	app.cmd.Flush()
	if !app.mounted {
		return
	}
	frame := &Frame{Now: now, XR: xr}
	if !app.lastTick.IsZero() {
		frame.Dt = now.Sub(app.lastTick)
	}
	app.lastTick = now
	app.callSystems(frame)
}

func (app *App) Commands() *Commands {
	return app.cmd
}

// Context is cancelled at unmount.
func (app *App) Context() context.Context {
	return app.ctx
}

func (app *App) Scene() *core.Scene        { return app.scene }
func (app *App) Camera() *core.Camera      { return app.camera }
func (app *App) Orbit() *camera.Orbit      { return app.orbit }
func (app *App) Selectables() *Selectables { return app.selectables }
func (app *App) Gizmo() *editor.Gizmo      { return app.gizmo }
func (app *App) Selection() *Selection     { return app.selection }
func (app *App) Placement() *ar.Placement  { return app.placement }
func (app *App) Input() *InputRouter       { return app.input }
func (app *App) Catalog() *assets.Catalog  { return app.catalog }

// Primary is the initial product loaded at mount, the AR placement
// target. It stays nil if that load failed.
func (app *App) Primary() *core.Node {
	return app.primary
}

func (app *App) Viewport() (int, int) {
	return app.width, app.height
}

// Resize updates the camera aspect and the render surface.
func (app *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	app.width, app.height = width, height
	if app.camera != nil {
		app.camera.SetViewport(width, height)
	}
	if app.view != nil {
		app.view.Resize(width, height)
	}
}

func (app *App) SetMode(mode editor.GizmoMode) {
	if app.selection != nil {
		app.selection.SetMode(mode)
	}
}

func (app *App) Duplicate() {
	if app.selection != nil {
		app.selection.Duplicate()
	}
}

func (app *App) AddChair() {
	app.addRandom(assets.Chair)
}

func (app *App) AddTable() {
	app.addRandom(assets.Table)
}

func (app *App) addRandom(id string) {
	x := app.rand.Float32()*2 - 1
	z := app.rand.Float32()*2 - 1
	app.AddProduct(id, x, z)
}

// AddProduct queues a load. On completion the object is added to the scene,
// registered and selected. Loads complete in request order.
func (app *App) AddProduct(id string, offsetX, offsetZ float32) {
	if !app.mounted {
		return
	}
	app.loads.Enqueue(id, offsetX, offsetZ, app.placeLoaded(id))
}

func (app *App) placeLoaded(id string) assets.Completion {
	return func(node *core.Node, err error) {
		app.place(id, node, err)
	}
}

// place inserts a finished load into the scene and selects it. It reports
// whether node was placed; otherwise node has been released.
func (app *App) place(id string, node *core.Node, err error) bool {
	if err != nil {
		app.Logger().Errorf("failed to load %s: %v", id, err)
		return false
	}
	if !app.mounted || !app.selection.Insert(node) {
		node.Dispose()
		return false
	}
	app.Logger().Debugf("placed %s at %v", id, node.Position)
	return true
}

// ARCapable reports a Quick-Look-only platform: the UI offers the platform
// AR files instead of an in-scene session.
func (app *App) ARCapable() bool {
	return app.goos == "ios" || app.Config.AR.QuickLookOnly
}

func (app *App) QuickLookAssets() []QuickLookAsset {
	if app.catalog == nil {
		return nil
	}
	var out []QuickLookAsset
	for _, e := range app.catalog.Entries() {
		if e.QuickLook != "" {
			out = append(out, QuickLookAsset{ID: e.ID, Path: app.catalog.QuickLookPath(e)})
		}
	}
	return out
}

// BeginAR starts presenting session. Orbit input stays disabled until
// EndAR.
func (app *App) BeginAR(session ar.Session) error {
	if !app.mounted {
		return ErrNotMounted
	}
	if app.ARCapable() {
		return ErrARUnavailable
	}
	app.placement.Begin(app.ctx, session)
	return nil
}

func (app *App) EndAR() {
	if app.placement != nil {
		app.placement.End()
	}
}

// ARSelect handles the device select action by moving the primary object
// onto the reticle.
func (app *App) ARSelect() bool {
	if app.placement == nil {
		return false
	}
	return app.placement.Commit(app.primary)
}

// syncOrbit keeps orbit input off while presenting or dragging.
func (app *App) syncOrbit() {
	if app.orbit == nil {
		return
	}
	presenting := app.placement != nil && app.placement.Presenting()
	dragging := app.gizmo != nil && app.gizmo.Dragging()
	app.orbit.SetEnabled(!presenting && !dragging)
}
