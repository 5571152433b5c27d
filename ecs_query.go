package roomxr

import (
	"reflect"
)

// Queries visit every entity carrying the requested components. Archetype
// and row order are unspecified. Components listed as optionals may be
// absent and are then passed as nil. The callback must not add or remove
// components; it returns false to stop the walk.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	if q.ecs == nil {
		return
	}
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}
			if !m(entityId, a) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	if q.ecs == nil {
		return
	}
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !no_a {
				a = &comps1[row]
			}
			var b *B
			if !no_b {
				b = &comps2[row]
			}
			if !m(entityId, a, b) {
				return
			}
		}
	}
}

// column returns the archetype's slice for id. missing is true when the
// archetype lacks an optional component; ok is false when it lacks a
// required one.
func column[T any](arch *archetype, id componentId, opt set[componentId]) (comps []T, missing bool, ok bool) {
	if data, found := arch.componentData[id]; found {
		return data.([]T), false, true
	}
	if _, found := opt[id]; found {
		return nil, true, true
	}
	return nil, false, false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		res[ecs.getComponentId(t)] = struct{}{}
	}
	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[A]())
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	return ecs.getComponentId(reflect.TypeFor[A]()), ecs.getComponentId(reflect.TypeFor[B]())
}
