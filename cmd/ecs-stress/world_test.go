package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/tinyecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineComponents(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	types := defineComponents(registry, 6)

	require.Len(t, types, 6)
	assert.Equal(t, 6, registry.Len())
	assert.Equal(t, "Component000", types[0].Name())
	assert.Equal(t, ecs.Fields{"value": 0.0, "count": 0}, types[0].Default())
	assert.Equal(t, 0, types[1].Default())
	assert.Equal(t, "Component002", types[2].Default())
}

func TestRandomEntity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := defineComponents(ecs.NewComponentRegistry(), 9)

	for range 50 {
		entity := randomEntity(types, 5, rng)
		assert.LessOrEqual(t, entity.Len(), 5)
		assert.GreaterOrEqual(t, entity.Len(), 1)

		seen := make(map[uint32]bool)
		for _, c := range entity.Components() {
			assert.False(t, seen[c.Type.ID()], "duplicate component type")
			seen[c.Type.ID()] = true
		}
	}
}

func TestTouch(t *testing.T) {
	table := ecs.Fields{"value": 1.0, "count": 2}
	touch(&ecs.FrameTime{Delta: 0.5}, table, nil, 3, "label")

	assert.Equal(t, 1.5, table["value"])
	assert.Equal(t, 3, table["count"])
}

func TestRunSimulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	types := defineComponents(ecs.NewComponentRegistry(), 12)

	world := ecs.NewWorld()
	loop := ecs.NewLoop(world, "update", "draw")
	registerSystems(world, loop.Clock(), types, 20, rng)
	for range 200 {
		world.AddEntity(randomEntity(types, rng.Intn(5)+1, rng))
	}

	assert.Len(t, world.Systems("update"), 15)
	assert.Len(t, world.Systems("draw"), 5)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report := &Report{}
	require.NoError(t, simulate(ctx, loop, time.Millisecond, report))

	assert.NotZero(t, report.TotalUpdates)
	assert.Len(t, report.UpdateTime.Samples, int(report.TotalUpdates))
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Max)

	stats := world.Stats()
	assert.Equal(t, 2, stats.ScheduleCount)
	assert.NotZero(t, stats.TotalExecutions)
}

func TestSimulateReturnsEmitErrors(t *testing.T) {
	world := ecs.NewWorld()
	loop := ecs.NewLoop(world, "update")
	world.AddEntity(ecs.NewEntity())
	world.AddSystem("update", ecs.NewSystem(ecs.NewQuery(), func() error { return assert.AnError }))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	report := &Report{}
	assert.ErrorIs(t, simulate(ctx, loop, 0, report), assert.AnError)
	assert.Zero(t, report.TotalUpdates)
}

func TestStartProfile(t *testing.T) {
	stop, err := startProfile("")
	require.NoError(t, err)
	assert.NotPanics(t, stop)

	_, err = startProfile("heap")
	assert.ErrorContains(t, err, `unknown profile mode "heap"`)
}
