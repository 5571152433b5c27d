package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypeAmbient LightType = iota
	LightTypeDirectional
)

type Light struct {
	Type       LightType
	Color      Color
	Intensity  float32
	Position   mgl32.Vec3
	CastShadow bool
}

// Scene owns the node tree and the lights.
type Scene struct {
	Root       *Node
	Background Color
	Lights     []Light
}

func NewScene(background Color) *Scene {
	return &Scene{
		Root:       NewGroup("scene"),
		Background: background,
	}
}

func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

func (s *Scene) Remove(n *Node) bool {
	return s.Root.Remove(n)
}

func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// Contains reports whether n is attached to the scene tree.
func (s *Scene) Contains(n *Node) bool {
	return n == s.Root || n.IsDescendantOf(s.Root)
}

// Dispose releases every mesh still attached to the scene.
func (s *Scene) Dispose() {
	s.Root.Dispose()
}
