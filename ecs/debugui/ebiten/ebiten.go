// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
	"github.com/plus3/tinyecs/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend}
}

// Emit runs schedule on world inside an ImGui frame and renders the renders
// queued on frame. On failure the queued renders are dropped. The ImGui frame
// is always ended.
func (b *ImguiBackend) Emit(world *ecs.World, schedule string, frame *debugui.Frame) error {
	b.BeginFrame()
	defer b.EndFrame()

	return frame.Emit(world, schedule)
}
