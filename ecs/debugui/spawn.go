package debugui

import "github.com/plus3/tinyecs/ecs"

// DrawSchedule is the schedule the ImGui system is registered on.
const DrawSchedule = "draw"

// DebugUI is the handle returned by SpawnDebugUI.
type DebugUI struct {
	// Input holds a *ImguiInputState.
	Input *ecs.Resource
	// Frame collects the window renders queued during a DrawSchedule emit.
	Frame *Frame
}

// InputState returns the input capture state published by the ImGui system.
func (ui *DebugUI) InputState() *ImguiInputState {
	state, _ := ecs.ResourceData[*ImguiInputState](ui.Input)
	return state
}

// SpawnDebugUI attaches the debug windows to the world and registers the
// ImGui system on DrawSchedule. The registry lists the component types offered
// by the query debugger.
func SpawnDebugUI(world *ecs.World, registry *ecs.ComponentRegistry) *DebugUI {
	ui := &DebugUI{
		Input: ecs.NewResource(&ImguiInputState{}),
		Frame: &Frame{},
	}
	world.AddResource(ui.Input)

	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	schedules := NewScheduleViewerComponent()
	perf := NewPerformanceStatsComponent(120)
	queries := NewQueryDebuggerComponent(registry)
	timer := NewFrameTimer()

	items := []func(){
		func() { browser.Render(world) },
		func() { inspector.Render(world, browser.GetSelectedEntity()) },
		func() { schedules.Render(world) },
		func() { perf.Render(world, timer.GetDeltaTime()) },
		func() { queries.Render(world) },
	}
	for _, render := range items {
		world.AddEntity(ecs.NewEntity(ImguiItem.New(render)))
	}

	world.AddSystem(DrawSchedule, NewImguiSystem(ui.Input, ui.Frame))
	return ui
}
