package core

type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material describes how a mesh is shaded. Materials are shared between the
// meshes of a model and its clones.
type Material struct {
	shared
	Name      string
	Color     Color
	Roughness float32
	Metalness float32
	Side      Side
	Unlit     bool
}

func NewStandardMaterial(name string, color Color, roughness, metalness float32) *Material {
	m := &Material{
		Name:      name,
		Color:     color,
		Roughness: roughness,
		Metalness: metalness,
	}
	m.init()
	return m
}

func NewBasicMaterial(name string, color Color) *Material {
	m := &Material{
		Name:  name,
		Color: color,
		Unlit: true,
	}
	m.init()
	return m
}

func (m *Material) Retain() *Material {
	m.retain()
	return m
}

func (m *Material) Release() {
	m.release()
}
