package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("file does not exist")

type fakeSource struct {
	models map[string]func() *core.Node
	delay  map[string]time.Duration
}

func (f fakeSource) Open(ctx context.Context, path string) (*core.Node, error) {
	if d := f.delay[path]; d > 0 {
		time.Sleep(d)
	}
	build, ok := f.models[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, errMissing)
	}
	return build(), nil
}

// boxModel is a 1 x 2 x 1 box whose origin is not at its base.
func boxModel() *core.Node {
	geo := core.BoxGeometry(1, 2, 1)
	mat := core.NewStandardMaterial("m", core.RGB(1, 1, 1), 1, 0)
	defer geo.Release()
	defer mat.Release()

	root := core.NewGroup("model")
	mesh := core.NewMesh("box", geo, mat)
	mesh.Position = mgl32.Vec3{3, 5, -2}
	root.Add(mesh)
	return root
}

func TestPlaceRestsOnFloor(t *testing.T) {
	cases := []struct {
		name          string
		floor, ox, oz float32
	}{
		{"origin", 0, 0, 0},
		{"offset", 0, 0.4, 0.2},
		{"raised floor", 0.5, -1, 1},
		{"negative floor", -1, 0.75, -0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pivot := Place(boxModel(), tc.floor, tc.ox, tc.oz)
			defer pivot.Dispose()

			assert.Equal(t, tc.floor, pivot.Position.Y())
			assert.Equal(t, tc.ox, pivot.Position.X())
			assert.Equal(t, tc.oz, pivot.Position.Z())

			box := core.BoundsOf(pivot)
			assert.InDelta(t, tc.floor, box.Min.Y(), 1e-5)
			assert.InDelta(t, tc.floor+2, box.Max.Y(), 1e-5)
			assert.InDelta(t, tc.ox, box.Center().X(), 1e-5)
			assert.InDelta(t, tc.oz, box.Center().Z(), 1e-5)

			pivot.Traverse(func(n *core.Node) {
				if n.Mesh != nil {
					assert.True(t, n.Mesh.CastShadow)
					assert.True(t, n.Mesh.ReceiveShadow)
				}
			})
		})
	}
}

func TestLoaderFallsBackToProceduralTable(t *testing.T) {
	before := core.LiveResources()
	l := NewLoader(DefaultCatalog(""), 0, nil)
	l.Source = fakeSource{}

	table, err := l.Load(context.Background(), Table, 0.3, -0.6)
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, Table, table.Name)
	assert.Equal(t, mgl32.Vec3{0.3, 0, -0.6}, table.Position)

	meshes := 0
	table.Traverse(func(n *core.Node) {
		if n.Mesh != nil {
			meshes++
		}
	})
	assert.Equal(t, 5, meshes, "slab plus four legs")

	box := core.BoundsOf(table)
	assert.InDelta(t, 0, box.Min.Y(), 1e-5)
	assert.InDelta(t, 0.725, box.Max.Y(), 1e-5)
	assert.InDelta(t, 1.2, box.Size().X(), 1e-5)
	assert.InDelta(t, 0.8, box.Size().Z(), 1e-5)

	table.Dispose()
	assert.Equal(t, before, core.LiveResources())
}

func TestProceduralTableIsDeterministic(t *testing.T) {
	a := ProceduralTable()
	b := ProceduralTable()
	defer a.Dispose()
	defer b.Dispose()

	assert.Equal(t, core.BoundsOf(a), core.BoundsOf(b))
	require.Len(t, b.Children(), len(a.Children()))
	for i := range a.Children() {
		assert.Equal(t, a.Children()[i].Position, b.Children()[i].Position)
	}
}

func TestLoaderPropagatesErrorsForOtherIds(t *testing.T) {
	l := NewLoader(DefaultCatalog(""), 0, nil)
	l.Source = fakeSource{}

	node, err := l.Load(context.Background(), Chair, 0, 0)
	assert.Nil(t, node)
	assert.ErrorIs(t, err, errMissing)

	_, err = l.Load(context.Background(), "sofa", 0, 0)
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestLoaderUsesCatalogPaths(t *testing.T) {
	l := NewLoader(DefaultCatalog("models"), 0.25, nil)
	l.Source = fakeSource{models: map[string]func() *core.Node{
		"models/chair.glb": boxModel,
	}}

	chair, err := l.Load(context.Background(), Chair, 0.4, 0.2)
	require.NoError(t, err)
	defer chair.Dispose()
	assert.Equal(t, float32(0.25), chair.Position.Y())
	assert.Equal(t, Chair, chair.Name)

	e, err := l.Catalog.Resolve(Table)
	require.NoError(t, err)
	assert.Equal(t, "models/table.usdz", l.Catalog.QuickLookPath(e))
}

type collector struct {
	mu  sync.Mutex
	fns chan func()
	ok  bool
}

func newCollector(accept bool) *collector {
	return &collector{fns: make(chan func(), 8), ok: accept}
}

func (c *collector) post(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok {
		c.fns <- fn
	} else {
		c.fns <- func() {}
	}
	return c.ok
}

func (c *collector) next(t *testing.T) func() {
	t.Helper()
	select {
	case fn := <-c.fns:
		return fn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load completion")
		return nil
	}
}

func TestQueueCompletesInRequestOrder(t *testing.T) {
	l := NewLoader(DefaultCatalog(""), 0, nil)
	l.Source = fakeSource{
		models: map[string]func() *core.Node{
			"chair.glb": boxModel,
			"table.glb": boxModel,
		},
		// The first request is the slow one.
		delay: map[string]time.Duration{"chair.glb": 30 * time.Millisecond},
	}
	c := newCollector(true)
	q := NewQueue(context.Background(), l, c.post)
	defer q.Close()

	var order []string
	var nodes []*core.Node
	record := func(node *core.Node, err error) {
		require.NoError(t, err)
		order = append(order, node.Name)
		nodes = append(nodes, node)
	}
	q.Enqueue(Chair, 0, 0, record)
	q.Enqueue(Table, 0, 0, record)

	c.next(t)()
	c.next(t)()
	assert.Equal(t, []string{Chair, Table}, order)

	for _, n := range nodes {
		n.Dispose()
	}
}

func TestQueueDisposesRejectedResults(t *testing.T) {
	before := core.LiveResources()
	l := NewLoader(DefaultCatalog(""), 0, nil)
	l.Source = fakeSource{}
	c := newCollector(false)
	q := NewQueue(context.Background(), l, c.post)

	q.Enqueue(Table, 0, 0, func(*core.Node, error) {
		t.Error("completion must not run when the receiver is gone")
	})
	c.next(t)
	q.Close()

	assert.Equal(t, before, core.LiveResources())
}

func TestDecodeDocumentSharesMeshes(t *testing.T) {
	before := core.LiveResources()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "root", Mesh: gltf.Index(0), Children: []int{1}},
		{Name: "child", Mesh: gltf.Index(0), Translation: [3]float64{0, 2, 0}},
	}
	doc.Scenes[0].Nodes = []int{0}

	root, err := DecodeDocument(doc)
	require.NoError(t, err)

	var meshes []*core.Node
	root.Traverse(func(n *core.Node) {
		if n.Mesh != nil {
			meshes = append(meshes, n)
		}
	})
	require.Len(t, meshes, 2)
	assert.Same(t, meshes[0].Mesh.Geometry, meshes[1].Mesh.Geometry)
	assert.Equal(t, 1, meshes[0].Mesh.Geometry.TriangleCount())

	box := core.BoundsOf(root)
	assert.InDelta(t, 3, box.Max.Y(), 1e-5)

	root.Dispose()
	assert.Equal(t, before, core.LiveResources())
}

func TestDecodeDocumentRejectsCycles(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{
		{Name: "a", Children: []int{1}},
		{Name: "b", Children: []int{0}},
	}
	doc.Scenes[0].Nodes = []int{0}

	_, err := DecodeDocument(doc)
	assert.ErrorIs(t, err, errNodeCycle)
}

func TestInspectProceduralTable(t *testing.T) {
	table := ProceduralTable()
	defer table.Dispose()

	s := Inspect(table)

	assert.Equal(t, 6, s.Nodes)
	assert.Equal(t, 5, s.Meshes)
	assert.Equal(t, 2, s.Geometries)
	assert.Equal(t, 2, s.Materials)
	// Box top plus four 32-segment cylinders (side quads and both caps).
	assert.Equal(t, 12+4*32*4, s.Triangles)
	assert.InDelta(t, 0.725, s.Bounds.Max.Y(), 1e-5)
}
