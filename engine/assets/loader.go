package assets

import (
	"context"
	"fmt"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Logger interface {
	Warnf(format string, args ...any)
}

// Loader resolves product ids through a Catalog, decodes them and places the
// result on the floor.
type Loader struct {
	Catalog *Catalog
	Source  ModelSource
	FloorY  float32
	Log     Logger
}

func NewLoader(catalog *Catalog, floorY float32, log Logger) *Loader {
	return &Loader{
		Catalog: catalog,
		Source:  GLTFSource{},
		FloorY:  floorY,
		Log:     log,
	}
}

// Load returns a placeable object for id, offset horizontally by
// (offsetX, offsetZ). Products marked Fallback never fail to load: a
// procedural stand-in is returned instead.
func (l *Loader) Load(ctx context.Context, id string, offsetX, offsetZ float32) (*core.Node, error) {
	entry, err := l.Catalog.Resolve(id)
	if err != nil {
		return nil, err
	}

	model, err := l.Source.Open(ctx, l.Catalog.ModelPath(entry))
	if err != nil {
		if !entry.Fallback || ctx.Err() != nil {
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
		if l.Log != nil {
			l.Log.Warnf("%s not found, creating procedural %s: %v", entry.Model, id, err)
		}
		model = ProceduralTable()
	}
	model.Name = id

	return Place(model, l.FloorY, offsetX, offsetZ), nil
}

// Place normalizes model so that its bounding box is centered horizontally
// on the returned pivot and its lowest point touches the pivot origin, then
// moves the pivot to (offsetX, floorY, offsetZ). The pivot is what callers
// select and move, so its Position.Y is exactly floorY.
func Place(model *core.Node, floorY, offsetX, offsetZ float32) *core.Node {
	model.RemoveFromParent()

	box := core.BoundsOf(model)
	if !box.IsEmpty() {
		center := box.Center()
		model.Position = model.Position.Sub(mgl32.Vec3{center.X(), box.Min.Y(), center.Z()})
	}

	pivot := core.NewGroup(model.Name)
	pivot.Add(model)
	pivot.Position = mgl32.Vec3{offsetX, floorY, offsetZ}
	pivot.SetShadows(true, true)
	return pivot
}
