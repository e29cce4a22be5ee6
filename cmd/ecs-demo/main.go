package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tinyecs/ecs"
	"github.com/plus3/tinyecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/tinyecs/ecs/debugui/ebiten"
)

const title = "ECS Demo"

type Game struct {
	world  *ecs.World
	loop   *ecs.Loop
	bounds *Bounds
	screen *Screen
	rng    *rand.Rand

	imguiBackend *debugui_ebiten.ImguiBackend
	ui           *debugui.DebugUI

	// drawErr carries a failed draw emit to the next Update, which can return it.
	drawErr error
}

func main() {
	width := flag.Int("width", 1280, "Window width in pixels.")
	height := flag.Int("height", 720, "Window height in pixels.")
	entities := flag.Int("entities", 500, "Number of moving entities to spawn.")
	withDebugUI := flag.Bool("debugui", false, "Show the ImGui debug windows.")
	flag.Parse()

	game := newGame(*width, *height, *entities, rand.New(rand.NewPCG(1, 2)))

	if *withDebugUI {
		game.imguiBackend = debugui_ebiten.NewImguiBackend(title, *width, *height)
		game.ui = debugui.SpawnDebugUI(game.world, ecs.DefaultRegistry)
	} else {
		ebiten.SetWindowSize(*width, *height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func newGame(width, height, entities int, rng *rand.Rand) *Game {
	g := &Game{
		world:  ecs.NewWorld(),
		bounds: &Bounds{Width: float64(width), Height: float64(height)},
		screen: &Screen{},
		rng:    rng,
	}
	g.loop = ecs.NewLoop(g.world, "update")

	bounds := ecs.NewResource(g.bounds)
	screen := ecs.NewResource(g.screen)
	g.world.AddResource(bounds)
	g.world.AddResource(screen)

	registerSystems(g.world, g.loop.Clock(), bounds, screen)

	g.world.AddEntity(ecs.NewEntity(Label.New()))
	spawnMovers(g.world, entities, g.bounds, g.rng)
	return g
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.drawErr; err != nil {
		return err
	}

	if !g.mouseCaptured() {
		x, y := ebiten.CursorPosition()
		at := mgl64.Vec2{float64(x), float64(y)}
		switch {
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
			g.world.Commands().Spawn(newMover(at, g.rng))
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
			g.world.Commands().Spawn(newMover(at, g.rng).Add(Frozen.New()))
		}
	}

	return g.loop.Once(1.0 / float64(ebiten.TPS()))
}

func (g *Game) mouseCaptured() bool {
	if g.ui == nil {
		return false
	}
	state := g.ui.InputState()
	return state != nil && state.WantCaptureMouse
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Image = screen
	defer func() { g.screen.Image = nil }()

	if g.imguiBackend == nil {
		g.drawErr = g.world.Emit("draw")
		return
	}

	// The ImGui system shares the draw schedule, so the frame wraps the emit
	g.drawErr = g.imguiBackend.Emit(g.world, debugui.DrawSchedule, g.ui.Frame)
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	g.bounds.Width = float64(outsideWidth)
	g.bounds.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}
