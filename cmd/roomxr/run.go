package main

import (
	"context"
	"time"

	"github.com/gekko3d/roomxr"
	"github.com/gekko3d/roomxr/engine/ar"
	"github.com/gekko3d/roomxr/engine/gpu"
	"github.com/gekko3d/roomxr/engine/platform"
	"github.com/gekko3d/roomxr/engine/render"
	"github.com/spf13/cobra"
)

type runOptions struct {
	config     string
	watch      bool
	simulateAR bool
	debug      bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the room editor in a window",
		Long: `Open the room editor in a window.

Click an object to select it and drag the gizmo to move or rotate it.
Arrows, Q and E nudge the selection (Shift for fine steps), G and R switch
the gizmo mode, D duplicates and Delete removes.

With --simulate-ar, A toggles a simulated AR session whose reticle follows
the center of the view; Space or Enter places the first object on it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "path to a YAML config file")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "remount the scene when the config file changes")
	cmd.Flags().BoolVar(&opts.simulateAR, "simulate-ar", false, "enable the simulated AR session")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	return cmd
}

// viewer is the windowed host: it owns the window and remounts the app on
// config changes.
type viewer struct {
	win     *platform.Window
	log     roomxr.Logger
	app     *roomxr.App
	session *ar.SimulatedSession
}

func run(ctx context.Context, opts runOptions) error {
	cfg, err := roomxr.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.simulateAR {
		cfg.AR.Simulate = true
	}
	log := roomxr.NewDefaultLogger("roomxr", cfg.Debug || opts.debug)

	win, err := platform.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Destroy()

	v := &viewer{win: win, log: log}
	if err := v.mount(ctx, cfg); err != nil {
		return err
	}
	defer v.unmount()

	var reloads <-chan roomxr.Config
	if opts.watch && opts.config != "" {
		if reloads, err = watchConfig(ctx, opts.config, log); err != nil {
			return err
		}
	}

	for !win.ShouldClose() && ctx.Err() == nil {
		win.PollEvents()
		select {
		case next := <-reloads:
			if opts.simulateAR {
				next.AR.Simulate = true
			}
			log.Infof("config changed, remounting")
			v.unmount()
			if err := v.mount(ctx, next); err != nil {
				return err
			}
		default:
		}
		v.tick()
	}
	return nil
}

func (v *viewer) mount(ctx context.Context, cfg roomxr.Config) error {
	app := roomxr.NewAppBuilder().
		UseConfig(cfg).
		UseLogger(v.log).
		UseModule(roomxr.TimeModule{}).
		UseInput(func(app *roomxr.App) func() {
			return v.win.Bind(app, v.onKey)
		}).
		UseRenderer(func(roomxr.Config) (render.Renderer, error) {
			return gpu.NewRenderer(v.win.GLFW())
		}).
		Build()
	if err := app.Mount(ctx); err != nil {
		return err
	}
	app.Resize(v.win.FramebufferSize())
	v.win.SetTitle(cfg.Window.Title)
	v.app = app
	if app.ARCapable() {
		for _, a := range app.QuickLookAssets() {
			v.log.Infof("AR Quick Look asset for %s: %s", a.ID, a.Path)
		}
	}
	return nil
}

func (v *viewer) unmount() {
	if v.app == nil {
		return
	}
	v.app.Unmount()
	v.app, v.session = nil, nil
}

func (v *viewer) tick() {
	var xr ar.Frame
	if v.session != nil && v.app.Placement().Presenting() {
		xr = v.session.Frame()
	}
	v.app.Tick(time.Now(), xr)
}

// onKey handles the host-level keys the input router leaves alone.
func (v *viewer) onKey(key roomxr.Key, mods roomxr.Modifier) {
	switch key {
	case roomxr.KeyA:
		v.toggleAR()
	case roomxr.KeySpace, roomxr.KeyEnter:
		if v.session != nil && !v.app.ARSelect() {
			v.log.Debugf("select ignored: reticle hidden")
		}
	case roomxr.KeyEscape:
		if v.session != nil {
			v.toggleAR()
		}
	}
}

func (v *viewer) toggleAR() {
	if !v.app.Config.AR.Simulate {
		return
	}
	if v.session != nil {
		v.app.EndAR()
		v.session = nil
		return
	}
	s := v.app.SimulatedSession()
	if err := v.app.BeginAR(s); err != nil {
		v.log.Warnf("cannot start AR: %v", err)
		return
	}
	v.session = s
}
