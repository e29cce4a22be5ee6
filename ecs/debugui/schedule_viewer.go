package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
)

// SystemRow is one line of the schedule viewer table.
type SystemRow struct {
	Schedule    string
	Position    int
	System      string
	Query       string
	Executions  int64
	Invocations int64
	Avg         time.Duration
	Last        time.Duration
}

func NewScheduleViewerComponent() ScheduleViewerComponent {
	return ScheduleViewerComponent{
		sortAscending: true,
	}
}

func (sv *ScheduleViewerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Schedule Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sv.rows = collectSystemRows(world)
	sortSystemRows(sv.rows, sv.sortColumn, sv.sortAscending)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("ScheduleTable", 7, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Schedule")
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Query")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Calls")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range sv.rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%s[%d]", row.Schedule, row.Position))
			imgui.TableNextColumn()
			imgui.Text(row.System)
			imgui.TableNextColumn()
			imgui.Text(row.Query)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Executions))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Invocations))
			imgui.TableNextColumn()
			imgui.Text(row.Avg.String())
			imgui.TableNextColumn()
			imgui.Text(row.Last.String())
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Systems: %d", len(sv.rows)))
	imgui.End()
}

// collectSystemRows flattens every schedule in registration order. A system
// registered on several schedules gets one row per registration.
func collectSystemRows(world *ecs.World) []SystemRow {
	stats := world.Stats()

	var rows []SystemRow
	for _, schedule := range stats.Schedules {
		systems := world.Systems(schedule.Name)
		for i, s := range schedule.Systems {
			query := ""
			if i < len(systems) {
				query = systems[i].Query().String()
			}

			rows = append(rows, SystemRow{
				Schedule:    schedule.Name,
				Position:    i,
				System:      s.Name,
				Query:       query,
				Executions:  s.ExecutionCount,
				Invocations: s.Invocations,
				Avg:         s.AvgDuration,
				Last:        s.LastDuration,
			})
		}
	}
	return rows
}

func sortSystemRows(rows []SystemRow, column int, ascending bool) {
	less := func(a, b SystemRow) bool {
		switch column {
		case 1:
			return a.System < b.System
		case 2:
			return a.Query < b.Query
		case 3:
			return a.Executions < b.Executions
		case 4:
			return a.Invocations < b.Invocations
		case 5:
			return a.Avg < b.Avg
		case 6:
			return a.Last < b.Last
		default:
			if a.Schedule != b.Schedule {
				return a.Schedule < b.Schedule
			}
			return a.Position < b.Position
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !ascending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
