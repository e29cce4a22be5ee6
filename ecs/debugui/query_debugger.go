package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
)

// elementMode is how the query debugger uses a component type when it builds
// its query.
type elementMode int32

const (
	modeNone elementMode = iota
	modeWith
	modeWithout
	modeOptional
	modeHidden
)

var modeLabels = []string{"-", "With", "Without", "Optional", "Hidden"}

func (m elementMode) next() elementMode {
	return (m + 1) % elementMode(len(modeLabels))
}

const maxResultRows = 50

func NewQueryDebuggerComponent(registry *ecs.ComponentRegistry) QueryDebuggerComponent {
	if registry == nil {
		registry = ecs.DefaultRegistry
	}
	return QueryDebuggerComponent{
		registry: registry,
		modes:    make(map[uint32]elementMode),
	}
}

func (qd *QueryDebuggerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.modes = make(map[uint32]elementMode)
	}

	// Each button cycles its type through the element modes
	for _, t := range qd.registry.Types() {
		mode := qd.modes[t.ID()]
		if imgui.Button(fmt.Sprintf("%s##mode%d", modeLabels[mode], t.ID())) {
			qd.setMode(t, mode.next())
		}
		imgui.SameLine()
		imgui.Text(t.String())
	}

	imgui.Separator()

	query := buildQuery(qd.registry.Types(), qd.modes)
	if query.Len() == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	rows := query.Apply(world)
	imgui.Text(query.String())
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(rows)))

	if query.Arity() > 0 && imgui.TreeNodeStr("Results") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryResultTable", int32(query.Arity()), tableFlags, imgui.NewVec2(0, 0), 0) {
			for _, t := range visibleTypes(qd.registry.Types(), qd.modes) {
				imgui.TableSetupColumn(t.String())
			}
			imgui.TableHeadersRow()

			for i, row := range rows {
				if i == maxResultRows {
					break
				}
				imgui.TableNextRow()
				for _, v := range row {
					imgui.TableNextColumn()
					imgui.Text(formatValue(v))
				}
			}

			imgui.EndTable()
		}
		if len(rows) > maxResultRows {
			imgui.Text(fmt.Sprintf("... %d more", len(rows)-maxResultRows))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) setMode(t ecs.ComponentType, mode elementMode) {
	if mode == modeNone {
		delete(qd.modes, t.ID())
		return
	}
	qd.modes[t.ID()] = mode
}

// buildQuery turns the selected modes into a query. Elements follow the
// registry's definition order.
func buildQuery(types []ecs.ComponentType, modes map[uint32]elementMode) *ecs.Query {
	query := ecs.NewQuery()
	for _, t := range types {
		switch modes[t.ID()] {
		case modeWith:
			query.With(t)
		case modeWithout:
			query.Without(t)
		case modeOptional:
			query.Optional(t)
		case modeHidden:
			query.WithHidden(t)
		}
	}
	return query
}

func visibleTypes(types []ecs.ComponentType, modes map[uint32]elementMode) []ecs.ComponentType {
	var visible []ecs.ComponentType
	for _, t := range types {
		if m := modes[t.ID()]; m == modeWith || m == modeOptional {
			visible = append(visible, t)
		}
	}
	return visible
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case ecs.Fields:
		parts := make([]string, 0, len(v))
		for _, k := range sortedKeys(v) {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v[k]))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case func():
		return "func()"
	default:
		return fmt.Sprintf("%v", v)
	}
}
