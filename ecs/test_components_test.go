package ecs_test

import "github.com/plus3/tinyecs/ecs"

// Common test component types
var (
	testRegistry = ecs.NewComponentRegistry()

	Name     = testRegistry.Define("Name", "")
	Nickname = testRegistry.Define("Nickname", "")
	Hidden   = testRegistry.Define("Hidden", true)
	Color    = testRegistry.Define("Color", "white")
	Score    = testRegistry.Define("Score", 0)

	Position  = testRegistry.Define("Position", ecs.Fields{"x": 0.0, "y": 0.0})
	Velocity  = testRegistry.Define("Velocity", ecs.Fields{"dx": 0.0, "dy": 0.0})
	Health    = testRegistry.Define("Health", ecs.Fields{"current": 100, "max": 100})
	Inventory = testRegistry.Define("Inventory", []string(nil))
)

func named(name string) *ecs.Entity {
	return ecs.NewEntity(Name.New(name))
}
