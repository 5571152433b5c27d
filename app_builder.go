package roomxr

import (
	"math/rand/v2"
	"runtime"

	"github.com/gekko3d/roomxr/engine/assets"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

// NewAppBuilder starts from DefaultConfig and the core modules.
func NewAppBuilder() *AppBuilder {
	cfg := DefaultConfig()
	return &AppBuilder{app: &App{
		Config: cfg,
		stages: defaultStages(),
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		goos:   runtime.GOOS,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}}
}

func (b *AppBuilder) UseConfig(cfg Config) *AppBuilder {
	b.app.Config = cfg
	b.app.width, b.app.height = cfg.Window.Width, cfg.Window.Height
	return b
}

func (b *AppBuilder) UseLogger(l Logger) *AppBuilder {
	b.app.logger = l
	return b
}

func (b *AppBuilder) UseRenderer(f RendererFactory) *AppBuilder {
	b.app.renderer = f
	return b
}

// UseInput attaches host listeners on every mount. They are detached
// before anything else is released at unmount.
func (b *AppBuilder) UseInput(binder InputBinder) *AppBuilder {
	b.app.binder = binder
	return b
}

// UseModelSource replaces the glTF reader.
func (b *AppBuilder) UseModelSource(src assets.ModelSource) *AppBuilder {
	b.app.source = src
	return b
}

// UseRand fixes the source of AddChair/AddTable offsets.
func (b *AppBuilder) UseRand(r *rand.Rand) *AppBuilder {
	b.app.rand = r
	return b
}

// UsePlatform overrides the detected GOOS.
func (b *AppBuilder) UsePlatform(goos string) *AppBuilder {
	b.app.goos = goos
	return b
}

// UseModule appends modules installed after the core ones.
func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	if app.logger == nil {
		app.logger = NewDefaultLogger("roomxr", app.Config.Debug)
	}
	// Logging is installed ahead of the core modules, which capture the
	// logger at install time.
	var logging, rest []Module
	for _, m := range b.modules {
		if _, ok := m.(LoggingModule); ok {
			logging = append(logging, m)
		} else {
			rest = append(rest, m)
		}
	}
	app.modules = append(logging,
		SceneModule{},
		CameraModule{},
		EditorModule{},
		ARModule{},
		AssetsModule{},
		RenderModule{},
		InputModule{},
	)
	app.modules = append(app.modules, rest...)
	return app
}
