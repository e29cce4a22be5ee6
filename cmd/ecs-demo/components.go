package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tinyecs/ecs"
)

// Position and Velocity hold a *mgl64.Vec2 so systems can update them in place.
var (
	Position = ecs.DefineComponent("Position", nil)
	Velocity = ecs.DefineComponent("Velocity", nil)

	Sprite = ecs.DefineComponent("Sprite", ecs.Fields{"size": 6.0, "color": [3]uint8{255, 255, 255}})
	Label  = ecs.DefineComponent("Label", ecs.Fields{"text": "", "x": 4, "y": 4})

	// Frozen entities are drawn but never moved.
	Frozen = ecs.DefineComponent("Frozen", true)
)

var pastelColors = [][3]uint8{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{186, 225, 255},
	{255, 255, 186},
	{217, 186, 255},
}

type Screen struct {
	*ebiten.Image
}

type Bounds struct {
	Width  float64
	Height float64
}

func (b *Bounds) Contains(p mgl64.Vec2) bool {
	return p.X() >= 0 && p.Y() >= 0 && p.X() <= b.Width && p.Y() <= b.Height
}
