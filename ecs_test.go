package roomxr

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	assert.Empty(t, ecs.archetypes)
	assert.Empty(t, ecs.entityIndex)
	assert.Zero(t, ecs.entityIdCounter)
	assert.Zero(t, ecs.componentIdCounter)
}

func TestEcs_AddEntity(t *testing.T) {
	type TestComponent struct{ x string }

	ecs := MakeEcs()
	entityId := ecs.addEntity()
	entityId2 := ecs.addEntity(TestComponent{x: "test"})

	assert.NotZero(t, entityId)
	assert.Greater(t, entityId2, entityId)
	assert.True(t, ecs.hasEntity(entityId))
	assert.True(t, ecs.hasEntity(entityId2))
	assert.NotEqual(t, ecs.entityIndex[entityId], ecs.entityIndex[entityId2],
		"entities with different components share an archetype")
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }
	type TestComponent3 struct{ z string }

	ecs := MakeEcs()
	entityId := ecs.addEntity(TestComponent0{a: 1337})
	ecs.addComponents(entityId, TestComponent1{x: "test"}, TestComponent2{y: "hello"})
	ecs.addComponents(entityId, &TestComponent3{z: "test-2"})

	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	assert.Len(t, arch.componentData, 4)

	var got []TestComponent0
	Query1[TestComponent0]{ecs: &ecs}.Map(func(_ EntityId, c *TestComponent0) bool {
		got = append(got, *c)
		return true
	})
	assert.Equal(t, []TestComponent0{{a: 1337}}, got, "components survive the archetype move")
}

func TestEcs_RemoveComponentsKeepsTheRest(t *testing.T) {
	type Position struct{ X, Y float64 }
	type Tag struct{}

	ecs := MakeEcs()
	id := ecs.addEntity(Position{1, 2}, Tag{})
	other := ecs.addEntity(Position{3, 4}, Tag{})
	ecs.removeComponents(id, Tag{})

	tagged := 0
	Query1[Tag]{ecs: &ecs}.Map(func(eid EntityId, _ *Tag) bool {
		assert.Equal(t, other, eid)
		tagged++
		return true
	})
	assert.Equal(t, 1, tagged)

	Query1[Position]{ecs: &ecs}.Map(func(eid EntityId, p *Position) bool {
		if eid == id {
			assert.Equal(t, Position{1, 2}, *p)
		}
		return true
	})
}

func TestEcs_AddInvalidComponentShouldPanic(t *testing.T) {
	ecs := MakeEcs()
	assert.Panics(t, func() { ecs.addEntity(123) })
}

func TestEcs_ComponentRegistration(t *testing.T) {
	type Position struct{ x, y float64 }

	ecs := MakeEcs()
	id1 := ecs.getComponentId(reflect.TypeOf(Position{}))
	id2 := ecs.getComponentId(reflect.TypeOf(Position{}))

	assert.Equal(t, id1, id2)
	assert.Equal(t, reflect.TypeOf(Position{}), ecs.getComponentType(id1))
	assert.Panics(t, func() { ecs.getComponentType(id1 + 1) })
}

func TestEcs_ArchetypeKeyExtension(t *testing.T) {
	assert.Equal(t, archetypeKey{1, 2, 3}, dedupAndSortArchetypeKey([]componentId{3, 1, 2, 1, 3}))
	assert.Equal(t, archetypeKey{1, 2, 3, 4}, combineArchetypeKeys([]componentId{1, 2, 3}, []componentId{4, 3, 2, 1}))
}

func TestEcs_RemoveEntity(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	id := ecs.addEntity(Position{1, 2})
	ecs.removeEntity(id)
	ecs.removeEntity(id)

	assert.False(t, ecs.hasEntity(id))
}

func TestEcs_RecycledRowIsReused(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	a := ecs.addEntity(Position{1, 2})
	arch := ecs.archetypes[ecs.entityIndex[a]]
	rowA := arch.entities[a]
	ecs.removeEntity(a)

	b := ecs.addEntity(Position{5, 6})
	assert.NotEqual(t, a, b, "ids are never reused")
	assert.Equal(t, rowA, arch.entities[b])
	assert.Equal(t, 1, reflect.ValueOf(arch.componentData[ecs.getComponentId(reflect.TypeOf(Position{}))]).Len())
}

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{})
	ecs.addEntity(Comp1{a: 4}, Comp3{})
	ecs.addEntity(Comp2{b: 3.14})

	got := map[EntityId]int{}
	Query2[Comp1, Comp2]{ecs: &ecs}.Map(func(eid EntityId, c1 *Comp1, c2 *Comp2) bool {
		require.NotNil(t, c1)
		require.NotNil(t, c2)
		got[eid] = c1.a
		return true
	})
	assert.Equal(t, map[EntityId]int{id2: 2, id3: 3}, got)
}

func TestQuery_MapOptionalAndStop(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})
	ecs.addEntity(Comp1{a: 2}, Comp2{})

	withTag, withoutTag := 0, 0
	Query2[Comp1, Comp2]{ecs: &ecs}.Map(func(_ EntityId, _ *Comp1, c2 *Comp2) bool {
		if c2 == nil {
			withoutTag++
		} else {
			withTag++
		}
		return true
	}, Comp2{})
	assert.Equal(t, 1, withTag)
	assert.Equal(t, 1, withoutTag)

	visited := 0
	Query1[Comp1]{ecs: &ecs}.Map(func(EntityId, *Comp1) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestEcsReflect_SliceHelpers(t *testing.T) {
	type myStruct struct{ A int }

	s := reflectSliceMake(reflect.TypeOf(myStruct{}))
	assert.Equal(t, reflect.TypeOf(myStruct{}), reflect.TypeOf(s).Elem())

	s = reflectSliceAppend(s, reflect.ValueOf(myStruct{A: 1}))
	reflectSliceSet(s, 0, reflect.ValueOf(myStruct{A: 99}))
	assert.Equal(t, 99, reflectSliceGet(s, 0).Interface().(myStruct).A)

	assert.Panics(t, func() { reflectSliceGet(s, 10) })
	assert.Panics(t, func() { reflectSliceSet(s, 0, reflect.ValueOf("wrong type")) })
}
