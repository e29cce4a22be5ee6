package ecs

import "slices"

// Commands provides a buffer for deferred world operations that are executed
// after a schedule has finished emitting. Systems may also mutate the world
// directly; commands exist for changes that must not be seen by the systems
// that follow in the same emit.
type Commands struct {
	spawns   []*Entity
	despawns []*Entity
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    *Entity
	component *Component
}

type removeComponentCommand struct {
	entity   *Entity
	compType ComponentType
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues adding the entity to the world.
func (c *Commands) Spawn(entity *Entity) {
	c.spawns = append(c.spawns, entity)
}

// Despawn queues removing the entity from the world.
func (c *Commands) Despawn(entity *Entity) {
	c.despawns = append(c.despawns, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity *Entity, component *Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity *Entity, compType ComponentType) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to the world, resetting the buffer state.
// Operations queued while flushing, for example from a deferred function, stay
// in the buffer for the next flush.
//
// Despawns run first. A despawn cancels a spawn of the same entity queued in
// this buffer; otherwise it removes the entity's first registration. Component
// removals and additions then apply to every entity that is still alive, that
// is, registered in the world or about to be spawned. Spawns and deferred
// functions follow.
func (c *Commands) Flush(w *World) {
	spawns, despawns, adds, removes, defers := c.spawns, c.despawns, c.adds, c.removes, c.defers
	c.spawns, c.despawns, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil

	despawned := make(map[*Entity]bool)
	for _, e := range despawns {
		despawned[e] = true
		if i := slices.Index(spawns, e); i >= 0 {
			spawns = slices.Delete(spawns, i, i+1)
			continue
		}
		w.RemoveEntity(e)
	}

	alive := func(e *Entity) bool {
		return !despawned[e] || slices.Contains(w.entities, e) || slices.Contains(spawns, e)
	}

	for _, cmd := range removes {
		if alive(cmd.entity) {
			cmd.entity.Remove(cmd.compType)
		}
	}

	for _, cmd := range adds {
		if alive(cmd.entity) {
			cmd.entity.Add(cmd.component)
		}
	}

	for _, e := range spawns {
		w.AddEntity(e)
	}

	for _, fn := range defers {
		fn()
	}
}
