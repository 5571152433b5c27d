package roomxr

import (
	"github.com/gekko3d/roomxr/engine/assets"
	"github.com/gekko3d/roomxr/engine/core"
)

// Initial product loaded at mount. It becomes the AR placement target.
const (
	initialProduct = assets.Chair
	initialOffsetX = 0.4
	initialOffsetZ = 0.2
)

// AssetsModule starts the load queue and requests the initial product.
// Closing the queue waits for an in-flight load; anything it produces after
// unmount is released by the queue.
type AssetsModule struct{}

func (AssetsModule) Install(app *App, cmd *Commands) error {
	app.catalog = app.Config.Catalog()
	loader := assets.NewLoader(app.catalog, app.Config.Scene.FloorY, app.Logger())
	if app.source != nil {
		loader.Source = app.source
	}
	app.loader = loader

	queue := assets.NewQueue(app.ctx, loader, cmd.Post)
	app.loads = queue
	cmd.Defer("load-queue", queue.Close)

	queue.Enqueue(initialProduct, initialOffsetX, initialOffsetZ, func(node *core.Node, err error) {
		if app.place(initialProduct, node, err) {
			app.primary = node
		}
	})
	return nil
}
