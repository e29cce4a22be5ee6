package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tinyecs/ecs"
)

// registerSystems wires the demo systems. Update systems read the loop clock,
// draw systems read the screen resource set by Game.Draw.
func registerSystems(world *ecs.World, clock, bounds, screen *ecs.Resource) {
	world.AddSystems("update",
		ecs.NewNamedSystem("movement",
			ecs.NewQuery().Res(clock).Res(bounds).With(Position).With(Velocity).Without(Frozen),
			func(ft *ecs.FrameTime, b *Bounds, pos, vel *mgl64.Vec2) {
				step(pos, vel, b, ft.Delta)
			},
		),
		ecs.NewNamedSystem("hud",
			ecs.NewQuery().Res(clock).With(Label),
			func(ft *ecs.FrameTime, label ecs.Fields) {
				label["text"] = fmt.Sprintf("TPS: %0.1f  entities: %d  frame: %d", ebiten.ActualTPS(), len(world.Entities()), ft.Frame)
			},
		),
	)

	world.AddSystems("draw",
		ecs.NewNamedSystem("sprites",
			ecs.NewQuery().Res(screen).With(Position).With(Sprite),
			func(s *Screen, pos *mgl64.Vec2, sprite ecs.Fields) {
				if s.Image == nil {
					return
				}
				size := float32(sprite["size"].(float64))
				rgb := sprite["color"].([3]uint8)
				c := color.RGBA{rgb[0], rgb[1], rgb[2], 255}
				vector.DrawFilledRect(s.Image, float32(pos.X())-size/2, float32(pos.Y())-size/2, size, size, c, false)
			},
		),
		ecs.NewNamedSystem("labels",
			ecs.NewQuery().Res(screen).With(Label),
			func(s *Screen, label ecs.Fields) {
				if s.Image == nil {
					return
				}
				ebitenutil.DebugPrintAt(s.Image, label["text"].(string), label["x"].(int), label["y"].(int))
			},
		),
	)
}

// step advances pos by vel*dt and reflects vel off the bounds edges.
func step(pos, vel *mgl64.Vec2, b *Bounds, dt float64) {
	next := pos.Add(vel.Mul(dt))

	for axis, limit := range []float64{b.Width, b.Height} {
		switch {
		case next[axis] < 0:
			next[axis] = -next[axis]
			vel[axis] = math.Abs(vel[axis])
		case next[axis] > limit:
			next[axis] = 2*limit - next[axis]
			vel[axis] = -math.Abs(vel[axis])
		}
		next[axis] = mgl64.Clamp(next[axis], 0, limit)
	}

	*pos = next
}

func newMover(at mgl64.Vec2, rng *rand.Rand) *ecs.Entity {
	angle := rng.Float64() * 2 * math.Pi
	speed := 50 + rng.Float64()*100
	vel := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(speed)

	return ecs.NewEntity(
		Position.New(&at),
		Velocity.New(&vel),
		Sprite.New(ecs.Fields{
			"size":  4 + rng.Float64()*6,
			"color": pastelColors[rng.IntN(len(pastelColors))],
		}),
	)
}

func spawnMovers(world *ecs.World, n int, b *Bounds, rng *rand.Rand) {
	for range n {
		at := mgl64.Vec2{rng.Float64() * b.Width, rng.Float64() * b.Height}
		world.AddEntity(newMover(at, rng))
	}
}
