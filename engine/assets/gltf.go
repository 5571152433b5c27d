package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var errNodeCycle = errors.New("gltf: node hierarchy is cyclic")

// ModelSource turns a catalog entry into an unplaced node tree.
type ModelSource interface {
	Open(ctx context.Context, path string) (*core.Node, error)
}

// GLTFSource reads .glb / .gltf files from disk.
type GLTFSource struct{}

func (GLTFSource) Open(ctx context.Context, path string) (*core.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return DecodeDocument(doc)
}

// DecodeDocument converts the default scene of doc into a node tree. Meshes
// referenced by several nodes share their geometry and materials.
func DecodeDocument(doc *gltf.Document) (*core.Node, error) {
	d := &decoder{
		doc:       doc,
		materials: make(map[int]*core.Material),
		meshes:    make(map[int][]primitive),
		visiting:  make(map[int]bool),
	}
	root, err := d.decode()
	// The tree holds its own references; drop the decoder's.
	d.release()
	if err != nil {
		if root != nil {
			root.Dispose()
		}
		return nil, err
	}
	return root, nil
}

type primitive struct {
	geo *core.Geometry
	mat *core.Material
}

type decoder struct {
	doc       *gltf.Document
	materials map[int]*core.Material
	meshes    map[int][]primitive
	fallback  *core.Material
	visiting  map[int]bool
}

func (d *decoder) decode() (*core.Node, error) {
	root := core.NewGroup("gltf")

	var roots []int
	switch {
	case len(d.doc.Scenes) == 0:
		// No scene: every parentless node is a root.
		hasParent := make(map[int]bool)
		for _, n := range d.doc.Nodes {
			for _, c := range n.Children {
				hasParent[c] = true
			}
		}
		for i := range d.doc.Nodes {
			if !hasParent[i] {
				roots = append(roots, i)
			}
		}
	default:
		scene := 0
		if d.doc.Scene != nil {
			scene = *d.doc.Scene
		}
		if scene < 0 || scene >= len(d.doc.Scenes) {
			return root, fmt.Errorf("gltf: scene index %d out of range", scene)
		}
		roots = d.doc.Scenes[scene].Nodes
		if name := d.doc.Scenes[scene].Name; name != "" {
			root.Name = name
		}
	}

	for _, idx := range roots {
		n, err := d.node(idx, 0)
		if err != nil {
			return root, err
		}
		root.Add(n)
	}
	return root, nil
}

func (d *decoder) node(idx, depth int) (*core.Node, error) {
	if idx < 0 || idx >= len(d.doc.Nodes) {
		return nil, fmt.Errorf("gltf: node index %d out of range", idx)
	}
	if d.visiting[idx] || depth > core.MaxDepth {
		return nil, errNodeCycle
	}
	d.visiting[idx] = true
	defer delete(d.visiting, idx)

	src := d.doc.Nodes[idx]
	n := core.NewGroup(src.Name)
	applyNodeTransform(n, src)

	if src.Mesh != nil {
		prims, err := d.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		for i, p := range prims {
			name := src.Name
			if name == "" {
				name = fmt.Sprintf("mesh-%d-%d", *src.Mesh, i)
			}
			n.Add(core.NewMesh(name, p.geo, p.mat))
		}
	}

	for _, c := range src.Children {
		child, err := d.node(c, depth+1)
		if err != nil {
			n.Dispose()
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func applyNodeTransform(n *core.Node, src *gltf.Node) {
	var zero [16]float64
	identity := [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if src.Matrix != zero && src.Matrix != identity {
		var m mgl32.Mat4
		for i, v := range src.Matrix {
			m[i] = float32(v)
		}
		n.SetMatrix(m)
		return
	}

	t := src.Translation
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	if r := src.Rotation; r != [4]float64{} {
		n.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	}
	if s := src.Scale; s != [3]float64{} {
		n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}
}

func (d *decoder) mesh(idx int) ([]primitive, error) {
	if prims, ok := d.meshes[idx]; ok {
		return prims, nil
	}
	if idx < 0 || idx >= len(d.doc.Meshes) {
		return nil, fmt.Errorf("gltf: mesh index %d out of range", idx)
	}

	var prims []primitive
	fail := func(err error) ([]primitive, error) {
		for _, p := range prims {
			p.geo.Release()
		}
		return nil, err
	}
	for pi, p := range d.doc.Meshes[idx].Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok || posIdx < 0 || posIdx >= len(d.doc.Accessors) {
			continue
		}
		positions, err := modeler.ReadPosition(d.doc, d.doc.Accessors[posIdx], nil)
		if err != nil {
			return fail(fmt.Errorf("gltf: mesh %d primitive %d positions: %w", idx, pi, err))
		}
		var indices []uint32
		if p.Indices != nil {
			if *p.Indices < 0 || *p.Indices >= len(d.doc.Accessors) {
				return fail(fmt.Errorf("gltf: mesh %d primitive %d: index accessor out of range", idx, pi))
			}
			indices, err = modeler.ReadIndices(d.doc, d.doc.Accessors[*p.Indices], nil)
			if err != nil {
				return fail(fmt.Errorf("gltf: mesh %d primitive %d indices: %w", idx, pi, err))
			}
		}

		verts := make([]mgl32.Vec3, len(positions))
		for i, v := range positions {
			verts[i] = mgl32.Vec3{v[0], v[1], v[2]}
		}
		geo := core.NewGeometry(d.doc.Meshes[idx].Name, verts, indices)
		prims = append(prims, primitive{geo: geo, mat: d.material(p.Material)})
	}
	d.meshes[idx] = prims
	return prims, nil
}

func (d *decoder) material(idx *int) *core.Material {
	if idx == nil || *idx < 0 || *idx >= len(d.doc.Materials) {
		if d.fallback == nil {
			d.fallback = core.NewStandardMaterial("default", core.RGB(1, 1, 1), 1, 0)
		}
		return d.fallback
	}
	if m, ok := d.materials[*idx]; ok {
		return m
	}

	src := d.doc.Materials[*idx]
	color := core.RGB(1, 1, 1)
	roughness, metalness := float32(1), float32(1)
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		color = core.Color{R: float32(c[0]), G: float32(c[1]), B: float32(c[2]), A: float32(c[3])}
		roughness = float32(pbr.RoughnessFactorOrDefault())
		metalness = float32(pbr.MetallicFactorOrDefault())
	}
	m := core.NewStandardMaterial(src.Name, color, roughness, metalness)
	if src.DoubleSided {
		m.Side = core.DoubleSide
	}
	d.materials[*idx] = m
	return m
}

func (d *decoder) release() {
	for _, prims := range d.meshes {
		for _, p := range prims {
			p.geo.Release()
		}
	}
	for _, m := range d.materials {
		m.Release()
	}
	if d.fallback != nil {
		d.fallback.Release()
	}
}
