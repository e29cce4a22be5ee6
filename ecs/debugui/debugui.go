// Package debugui provides immediate-mode GUI integration for ECS worlds using Dear ImGui.
// Windows are attached to the world as entities carrying an ImguiItem component and
// are rendered by the ImGui system, which is registered on the "draw" schedule.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
)

// ImguiItem is a component holding a Dear ImGui render function (func()).
// Attach this to entities that should render ImGui widgets each frame.
var ImguiItem = ecs.DefineComponent("ImguiItem", nil)

// ImguiInputState tracks Dear ImGui's input capture state. It is published as
// the Data of DebugUI.Input.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Frame queues ImGui render functions for one frame. It is separate from the
// world's command buffer so that renders never outlive the frame they were
// queued for. A nil Frame ignores every call.
type Frame struct {
	renders []func()
}

// Queue adds a render function to the frame.
func (f *Frame) Queue(render func()) {
	if f == nil || render == nil {
		return
	}
	f.renders = append(f.renders, render)
}

// Len returns the number of queued render functions.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.renders)
}

// Render runs the queued functions in order and empties the frame.
func (f *Frame) Render() {
	if f == nil {
		return
	}
	renders := f.renders
	f.renders = nil
	for _, render := range renders {
		render()
	}
}

// Discard empties the frame without rendering.
func (f *Frame) Discard() {
	if f != nil {
		f.renders = nil
	}
}

// Emit runs schedule on world, then renders the frame. When the emit fails
// the queued renders are discarded and the error is returned. Call it between
// the backend's BeginFrame and EndFrame.
func (f *Frame) Emit(world *ecs.World, schedule string) error {
	if err := world.Emit(schedule); err != nil {
		f.Discard()
		return err
	}
	f.Render()
	return nil
}

// NewImguiSystem returns a system that updates the input state resource and
// queues every ImguiItem render function on frame.
func NewImguiSystem(input *ecs.Resource, frame *Frame) *ecs.System {
	query := ecs.NewQuery().Res(input).With(ImguiItem)

	return ecs.NewNamedSystem("ImguiSystem", query, func(state *ImguiInputState, render func()) {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

		frame.Queue(render)
	})
}
