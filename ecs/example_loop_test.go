package ecs_test

import (
	"fmt"

	"github.com/plus3/tinyecs/ecs"
)

// ExampleLoop drives the "update" schedule with a fixed delta time. The loop
// publishes a *FrameTime through its clock resource.
func ExampleLoop() {
	world := ecs.NewWorld()
	loop := ecs.NewLoop(world, "update")

	world.AddEntity(ecs.NewEntity(Position.New(), Velocity.New(ecs.Fields{"dx": 2.0})))
	world.AddSystem("update", ecs.NewSystem(
		ecs.NewQuery().Res(loop.Clock()).With(Position).With(Velocity),
		func(clock *ecs.FrameTime, pos, vel ecs.Fields) {
			pos["x"] = pos["x"].(float64) + vel["dx"].(float64)*clock.Delta
			fmt.Printf("frame %d: x=%.1f\n", clock.Frame, pos["x"])
		},
	))

	for range 3 {
		_ = loop.Once(0.5)
	}

	// Output:
	// frame 1: x=1.0
	// frame 2: x=2.0
	// frame 3: x=3.0
}
