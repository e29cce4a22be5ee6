package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/tinyecs/ecs"
)

// defineComponents creates n component types cycling through the three payload
// shapes the stress systems know how to touch: tables, counters and labels.
func defineComponents(registry *ecs.ComponentRegistry, n int) []ecs.ComponentType {
	types := make([]ecs.ComponentType, n)
	for i := range types {
		name := fmt.Sprintf("Component%03d", i)
		switch i % 3 {
		case 0:
			types[i] = registry.Define(name, ecs.Fields{"value": 0.0, "count": 0})
		case 1:
			types[i] = registry.Define(name, 0)
		default:
			types[i] = registry.Define(name, name)
		}
	}
	return types
}

func randomEntity(types []ecs.ComponentType, n int, rng *rand.Rand) *ecs.Entity {
	entity := ecs.NewEntity()
	for range n {
		t := types[rng.Intn(len(types))]
		if entity.Has(t) {
			continue
		}
		entity.Add(t.New())
	}
	return entity
}

// randomQuery builds a query with one to three required types, and sometimes an
// excluded, hidden or optional element.
func randomQuery(types []ecs.ComponentType, rng *rand.Rand) *ecs.Query {
	query := ecs.NewQuery()
	for range rng.Intn(3) + 1 {
		query.With(types[rng.Intn(len(types))])
	}

	switch rng.Intn(4) {
	case 0:
		query.Without(types[rng.Intn(len(types))])
	case 1:
		query.WithHidden(types[rng.Intn(len(types))])
	case 2:
		query.Optional(types[rng.Intn(len(types))])
	}
	return query
}

// registerSystems spreads n systems over the update and draw schedules. Every
// update system reads the loop clock; every tenth one also churns entities
// through the world's command buffer.
func registerSystems(world *ecs.World, clock *ecs.Resource, types []ecs.ComponentType, n int, rng *rand.Rand) {
	for i := range n {
		query := randomQuery(types, rng)
		schedule := "update"
		if i%4 == 3 {
			schedule = "draw"
		} else {
			query.Res(clock)
		}

		name := fmt.Sprintf("%s-%03d", schedule, i)
		if i%10 == 9 {
			world.AddSystem(schedule, ecs.NewNamedSystem(name, query, churn(world, types, rng)))
			continue
		}
		world.AddSystem(schedule, ecs.NewNamedSystem(name, query, touch))
	}
}

// touch mutates every payload it is handed.
func touch(args ...any) {
	var dt float64
	for _, arg := range args {
		switch v := arg.(type) {
		case *ecs.FrameTime:
			dt = v.Delta
		case ecs.Fields:
			v["value"] = v["value"].(float64) + dt
			v["count"] = v["count"].(int) + 1
		}
	}
}

// churn respawns roughly one in a hundred matched entities.
func churn(world *ecs.World, types []ecs.ComponentType, rng *rand.Rand) func(...any) {
	return func(args ...any) {
		touch(args...)
		if rng.Intn(100) != 0 {
			return
		}
		world.Commands().Spawn(randomEntity(types, rng.Intn(5)+1, rng))
		if entities := world.Entities(); len(entities) > 0 {
			world.Commands().Despawn(entities[rng.Intn(len(entities))])
		}
	}
}
