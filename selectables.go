package roomxr

import (
	"slices"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/editor"
	"github.com/go-gl/mathgl/mgl32"
)

// SelectableComponent marks a top-level object the user may manipulate.
// Node is the root of the object's subtree.
type SelectableComponent struct {
	Node *core.Node
}

// EditorSelectedComponent marks the active object. At most one entity
// carries it.
type EditorSelectedComponent struct{}

// DuplicateOffset is applied to every copy made by Duplicate.
var DuplicateOffset = mgl32.Vec3{0.3, 0, 0.3}

// Selectables is the ordered set of selectable objects, stored as entities.
// Members are roots of disjoint subtrees, ordered by insertion.
type Selectables struct {
	ecs *Ecs
}

func NewSelectables(ecs *Ecs) *Selectables {
	return &Selectables{ecs: ecs}
}

type member struct {
	eid  EntityId
	node *core.Node
}

// members snapshots the set sorted by entity id, which is insertion order.
func (s *Selectables) members() []member {
	var out []member
	Query1[SelectableComponent]{ecs: s.ecs}.Map(func(eid EntityId, c *SelectableComponent) bool {
		out = append(out, member{eid: eid, node: c.Node})
		return true
	})
	slices.SortFunc(out, func(a, b member) int {
		switch {
		case a.eid < b.eid:
			return -1
		case a.eid > b.eid:
			return 1
		}
		return 0
	})
	return out
}

func (s *Selectables) entityOf(n *core.Node) (EntityId, bool) {
	var found EntityId
	if n == nil {
		return 0, false
	}
	Query1[SelectableComponent]{ecs: s.ecs}.Map(func(eid EntityId, c *SelectableComponent) bool {
		if c.Node == n {
			found = eid
			return false
		}
		return true
	})
	return found, found != 0
}

// Add registers n. Nodes already covered by a member, or covering one, are
// rejected so member subtrees stay disjoint.
func (s *Selectables) Add(n *core.Node) bool {
	if n == nil {
		return false
	}
	for _, m := range s.members() {
		if m.node == n || n.IsDescendantOf(m.node) || m.node.IsDescendantOf(n) {
			return false
		}
	}
	s.ecs.addEntity(SelectableComponent{Node: n})
	return true
}

func (s *Selectables) Contains(n *core.Node) bool {
	_, ok := s.entityOf(n)
	return ok
}

func (s *Selectables) Len() int {
	n := 0
	Query1[SelectableComponent]{ecs: s.ecs}.Map(func(EntityId, *SelectableComponent) bool {
		n++
		return true
	})
	return n
}

// First returns the oldest member, or nil.
func (s *Selectables) First() *core.Node {
	ms := s.members()
	if len(ms) == 0 {
		return nil
	}
	return ms[0].node
}

// Members returns a snapshot of the set in insertion order.
func (s *Selectables) Members() []*core.Node {
	ms := s.members()
	out := make([]*core.Node, len(ms))
	for i, m := range ms {
		out[i] = m.node
	}
	return out
}

// ResolveHit maps a raycast hit on any descendant mesh to the member owning
// it. The walk is bounded by core.MaxDepth; nil means no member was found.
func (s *Selectables) ResolveHit(n *core.Node) *core.Node {
	for depth := 0; n != nil && depth <= core.MaxDepth; depth++ {
		if s.Contains(n) {
			return n
		}
		n = n.Parent()
	}
	return nil
}

// Remove detaches n from the scene and releases its GPU resources. The last
// member can never be removed.
func (s *Selectables) Remove(n *core.Node) bool {
	if s.Len() <= 1 {
		return false
	}
	eid, ok := s.entityOf(n)
	if !ok {
		return false
	}
	s.ecs.removeEntity(eid)
	n.RemoveFromParent()
	n.Dispose()
	return true
}

// Reset forgets every member without disposing them; the scene owns them.
func (s *Selectables) Reset() {
	for _, m := range s.members() {
		s.ecs.removeEntity(m.eid)
	}
}

// Selection tracks the active object and keeps the gizmo attached to it.
// The active object is always a member of Selectables or nil.
type Selection struct {
	Scene       *core.Scene
	Selectables *Selectables
	Gizmo       *editor.Gizmo
}

func NewSelection(scene *core.Scene, selectables *Selectables, gizmo *editor.Gizmo) *Selection {
	return &Selection{
		Scene:       scene,
		Selectables: selectables,
		Gizmo:       gizmo,
	}
}

func (s *Selection) Active() *core.Node {
	var active *core.Node
	Query2[SelectableComponent, EditorSelectedComponent]{ecs: s.Selectables.ecs}.Map(
		func(_ EntityId, c *SelectableComponent, _ *EditorSelectedComponent) bool {
			active = c.Node
			return false
		})
	return active
}

func (s *Selection) clear() {
	var selected []EntityId
	Query1[EditorSelectedComponent]{ecs: s.Selectables.ecs}.Map(func(eid EntityId, _ *EditorSelectedComponent) bool {
		selected = append(selected, eid)
		return true
	})
	for _, eid := range selected {
		s.Selectables.ecs.removeComponents(eid, EditorSelectedComponent{})
	}
}

// Select makes n the active object, or clears the selection when n is nil.
// Nodes that are not members are ignored.
func (s *Selection) Select(n *core.Node) {
	if n == nil {
		s.clear()
		s.Gizmo.Detach()
		return
	}
	eid, ok := s.Selectables.entityOf(n)
	if !ok {
		return
	}
	if s.Active() != n {
		s.clear()
		s.Selectables.ecs.addComponents(eid, EditorSelectedComponent{})
	}
	s.Gizmo.Attach(n)
}

// SetMode switches the gizmo between translate and rotate. Setting the
// current mode does nothing.
func (s *Selection) SetMode(m editor.GizmoMode) bool {
	return s.Gizmo.SetMode(m)
}

func (s *Selection) Mode() editor.GizmoMode {
	return s.Gizmo.Mode()
}

// Insert adds a freshly placed object to the scene, registers it and
// selects it.
func (s *Selection) Insert(n *core.Node) bool {
	if !s.Selectables.Add(n) {
		return false
	}
	s.Scene.Add(n)
	s.Select(n)
	return true
}

// Duplicate clones the active object next to it and selects the copy.
func (s *Selection) Duplicate() *core.Node {
	active := s.Active()
	if active == nil {
		return nil
	}
	c := active.Clone()
	c.Position = active.Position.Add(DuplicateOffset)
	c.SetShadows(true, true)
	if !s.Insert(c) {
		c.Dispose()
		return nil
	}
	return c
}

// DeleteActive removes the active object unless it is the last one, then
// selects the oldest remaining object.
func (s *Selection) DeleteActive() bool {
	active := s.Active()
	if active == nil {
		return false
	}
	if !s.Selectables.Remove(active) {
		return false
	}
	s.Select(s.Selectables.First())
	return true
}

// Nudge moves the active object by delta.
func (s *Selection) Nudge(delta mgl32.Vec3) bool {
	active := s.Active()
	if active == nil {
		return false
	}
	active.Position = active.Position.Add(delta)
	s.Gizmo.Update()
	return true
}
