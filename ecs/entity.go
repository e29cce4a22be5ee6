package ecs

import (
	"slices"
	"sync/atomic"
)

// EntityId is a process-unique diagnostic identifier. Entities are still
// matched and removed by pointer identity.
type EntityId uint64

var lastEntityId atomic.Uint64

// Entity is an ordered bag of component instances.
//
// Multiple instances of the same type may coexist; Has and Get only ever
// observe the first one in insertion order.
type Entity struct {
	id         EntityId
	components []*Component
}

// NewEntity creates an entity holding the given components in order.
func NewEntity(components ...*Component) *Entity {
	e := &Entity{
		id:         EntityId(lastEntityId.Add(1)),
		components: make([]*Component, 0, len(components)),
	}
	for _, c := range components {
		e.Add(c)
	}
	return e
}

// Id returns the diagnostic identifier of the entity.
func (e *Entity) Id() EntityId {
	return e.id
}

// Has reports whether the entity holds an instance of the component type.
func (e *Entity) Has(t ComponentType) bool {
	return e.index(t) >= 0
}

// Get returns the first instance of the component type, or nil.
func (e *Entity) Get(t ComponentType) *Component {
	if i := e.index(t); i >= 0 {
		return e.components[i]
	}
	return nil
}

// Add appends a component. An existing instance of the same type is kept and
// shadows the new one.
func (e *Entity) Add(c *Component) *Entity {
	if c == nil {
		panic("cannot add nil component")
	}
	e.components = append(e.components, c)
	return e
}

// Remove removes the first instance of the component type, if any.
func (e *Entity) Remove(t ComponentType) *Entity {
	if i := e.index(t); i >= 0 {
		e.components = slices.Delete(e.components, i, i+1)
	}
	return e
}

// Components returns a copy of the entity's components in insertion order.
func (e *Entity) Components() []*Component {
	out := make([]*Component, len(e.components))
	copy(out, e.components)
	return out
}

// Len returns the number of attached component instances.
func (e *Entity) Len() int {
	return len(e.components)
}

func (e *Entity) index(t ComponentType) int {
	for i, c := range e.components {
		if c.Type.id == t.id {
			return i
		}
	}
	return -1
}
