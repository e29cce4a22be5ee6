package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStatsComponent) Render(world *ecs.World, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)

	stats := world.Stats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Resources: %d", stats.ResourceCount))
	imgui.Text(fmt.Sprintf("Schedules: %d", stats.ScheduleCount))
	imgui.Text(fmt.Sprintf("System Executions: %d", stats.TotalExecutions))

	avgFrameTime := ps.averageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	} else {
		imgui.Text("Avg Frame Time: -")
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Schedule Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ScheduleStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Schedule")
			imgui.TableSetupColumn("Emits")
			imgui.TableSetupColumn("Systems")
			imgui.TableHeadersRow()

			for _, schedule := range stats.Schedules {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(schedule.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", schedule.EmitCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(schedule.Systems)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Slowest Systems") {
		for _, s := range slowestSystems(stats, 5) {
			imgui.BulletText(fmt.Sprintf("%s: avg %v, max %v", s.Name, s.AvgDuration, s.MaxDuration))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStatsComponent) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	if ps.recorded < ps.historyFrames {
		ps.recorded++
	}
}

// averageFrameTime is in milliseconds over the recorded part of the history.
func (ps *PerformanceStatsComponent) averageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}

	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}

// slowestSystems returns up to n systems with the highest average duration.
// Systems shared between schedules appear once.
func slowestSystems(stats *ecs.WorldStats, n int) []ecs.SystemStats {
	seen := make(map[uint32]bool)
	var systems []ecs.SystemStats
	for _, schedule := range stats.Schedules {
		for _, s := range schedule.Systems {
			if seen[s.Id] {
				continue
			}
			seen[s.Id] = true
			systems = append(systems, s)
		}
	}

	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].AvgDuration > systems[j].AvgDuration
	})
	if len(systems) > n {
		systems = systems[:n]
	}
	return systems
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
