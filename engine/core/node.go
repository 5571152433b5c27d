package core

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// MaxDepth bounds every parent-pointer walk. Imported hierarchies are acyclic
// by construction but malformed data must not hang the frame loop.
const MaxDepth = 64

// Mesh is the renderable payload of a node.
type Mesh struct {
	Geometry      *Geometry
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool
}

// Node is an element of the scene tree. A node without a Mesh is a group.
type Node struct {
	Transform

	ID      uuid.UUID
	Name    string
	Visible bool
	Mesh    *Mesh

	parent   *Node
	children []*Node

	// matrix, when set, replaces the TRS transform (poses coming from a
	// device hit-test are full matrices).
	matrix   *mgl32.Mat4
	disposed bool
}

func NewGroup(name string) *Node {
	return &Node{
		Transform: NewTransform(),
		ID:        uuid.New(),
		Name:      name,
		Visible:   true,
	}
}

// NewMesh creates a mesh node holding its own reference to geo and mat.
func NewMesh(name string, geo *Geometry, mat *Material) *Node {
	n := NewGroup(name)
	n.Mesh = &Mesh{
		Geometry: geo.Retain(),
		Material: mat.Retain(),
	}
	return n
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.RemoveFromParent()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child. It reports whether child was a direct child of n.
func (n *Node) Remove(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Traverse visits n and its descendants depth first.
func (n *Node) Traverse(fn func(*Node)) {
	n.traverse(fn, 0)
}

func (n *Node) traverse(fn func(*Node), depth int) {
	if depth > MaxDepth {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.traverse(fn, depth+1)
	}
}

// SetMatrix pins the local matrix, bypassing Position/Rotation/Scale.
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.matrix = &m
}

// ClearMatrix returns the node to TRS-driven transforms.
func (n *Node) ClearMatrix() {
	n.matrix = nil
}

func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.matrix != nil {
		return *n.matrix
	}
	return n.Transform.Matrix()
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	p := n.parent
	for depth := 0; p != nil && depth < MaxDepth; depth++ {
		m = p.LocalMatrix().Mul4(m)
		p = p.parent
	}
	return m
}

// WorldPosition is the translation column of the world matrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// IsDescendantOf reports whether ancestor is a strict ancestor of n.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	p := n.parent
	for depth := 0; p != nil && depth < MaxDepth; depth++ {
		if p == ancestor {
			return true
		}
		p = p.parent
	}
	return false
}

// SetShadows tags every mesh in the subtree.
func (n *Node) SetShadows(cast, receive bool) {
	n.Traverse(func(c *Node) {
		if c.Mesh != nil {
			c.Mesh.CastShadow = cast
			c.Mesh.ReceiveShadow = receive
		}
	})
}

// Clone deep-copies the subtree. Transforms and hierarchy are copied;
// geometries and materials are shared and retained.
func (n *Node) Clone() *Node {
	return n.clone(0)
}

func (n *Node) clone(depth int) *Node {
	c := &Node{
		Transform: n.Transform,
		ID:        uuid.New(),
		Name:      n.Name,
		Visible:   n.Visible,
	}
	if n.matrix != nil {
		m := *n.matrix
		c.matrix = &m
	}
	if n.Mesh != nil {
		c.Mesh = &Mesh{
			Geometry:      n.Mesh.Geometry.Retain(),
			Material:      n.Mesh.Material.Retain(),
			CastShadow:    n.Mesh.CastShadow,
			ReceiveShadow: n.Mesh.ReceiveShadow,
		}
	}
	if depth >= MaxDepth {
		return c
	}
	for _, child := range n.children {
		c.Add(child.clone(depth + 1))
	}
	return c
}

// Dispose releases the GPU references held by the subtree. Calling it twice
// is harmless.
func (n *Node) Dispose() {
	n.Traverse(func(c *Node) {
		if c.disposed {
			return
		}
		c.disposed = true
		if c.Mesh != nil {
			c.Mesh.Geometry.Release()
			c.Mesh.Material.Release()
		}
	})
}

func (n *Node) Disposed() bool {
	return n.disposed
}
