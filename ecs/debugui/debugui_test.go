package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/tinyecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRegistry = ecs.NewComponentRegistry()

	Name     = testRegistry.Define("Name", "")
	Hidden   = testRegistry.Define("Hidden", true)
	Color    = testRegistry.Define("Color", "white")
	Position = testRegistry.Define("Position", ecs.Fields{"x": 0.0, "y": 0.0})
)

func newTestWorld() (*ecs.World, []*ecs.Entity) {
	world := ecs.NewWorld()
	entities := []*ecs.Entity{
		ecs.NewEntity(Name.New("Taya"), Position.New()),
		ecs.NewEntity(Name.New("Evee"), Hidden.New(), Color.New("red")),
		ecs.NewEntity(Color.New()),
	}
	for _, e := range entities {
		world.AddEntity(e)
	}
	return world, entities
}

func TestEntityBrowserHelpers(t *testing.T) {
	world, entities := newTestWorld()

	infos := collectEntityInfos(world)
	require.Len(t, infos, 3)
	assert.Equal(t, entities[1].Id(), infos[1].ID)
	assert.Equal(t, 1, infos[1].Position)
	assert.Equal(t, []string{"Name", "Hidden", "Color"}, infos[1].ComponentTypes)
	assert.Equal(t, 3, infos[1].ComponentCount)

	t.Run("filter by component name ignores case", func(t *testing.T) {
		filtered := filterEntityInfos(infos, "posit")
		require.Len(t, filtered, 1)
		assert.Equal(t, entities[0].Id(), filtered[0].ID)
	})

	t.Run("empty filter keeps everything", func(t *testing.T) {
		assert.Len(t, filterEntityInfos(infos, ""), 3)
	})

	t.Run("sort by component count descending", func(t *testing.T) {
		sorted := append([]EntityInfo(nil), infos...)
		sortEntityInfos(sorted, 3, false)
		assert.Equal(t, []int{3, 2, 1}, []int{sorted[0].ComponentCount, sorted[1].ComponentCount, sorted[2].ComponentCount})

		sortEntityInfos(sorted, 1, true)
		assert.Equal(t, []int{0, 1, 2}, []int{sorted[0].Position, sorted[1].Position, sorted[2].Position})
	})
}

func TestFindEntity(t *testing.T) {
	world, entities := newTestWorld()
	assert.Same(t, entities[2], findEntity(world, entities[2].Id()))
	assert.Nil(t, findEntity(world, 0))

	world.RemoveEntity(entities[2])
	assert.Nil(t, findEntity(world, entities[2].Id()))
}

func TestCollectSystemRows(t *testing.T) {
	world, _ := newTestWorld()

	names := ecs.NewNamedSystem("names", ecs.NewQuery().With(Name), func(string) {})
	colors := ecs.NewNamedSystem("colors", ecs.NewQuery().With(Color).Without(Hidden), func(string) {})
	world.AddSystems("update", names, colors)
	world.AddSystem("draw", names)

	require.NoError(t, world.Emit("update"))
	require.NoError(t, world.Emit("update"))

	rows := collectSystemRows(world)
	require.Len(t, rows, 3)

	assert.Equal(t, SystemRow{Schedule: "draw", Position: 0, System: "names", Query: "Query(Name)", Executions: 2, Invocations: 4}, withoutTimings(rows[0]))
	assert.Equal(t, "update", rows[2].Schedule)
	assert.Equal(t, 1, rows[2].Position)
	assert.Equal(t, "Query(Color, !Hidden)", rows[2].Query)
	assert.Equal(t, int64(1*2), rows[2].Invocations)

	sortSystemRows(rows, 1, true)
	assert.Equal(t, []string{"colors", "names", "names"}, []string{rows[0].System, rows[1].System, rows[2].System})
}

func withoutTimings(row SystemRow) SystemRow {
	row.Avg = 0
	row.Last = 0
	return row
}

func TestBuildQuery(t *testing.T) {
	world, _ := newTestWorld()

	modes := map[uint32]elementMode{
		Name.ID():   modeWith,
		Hidden.ID(): modeWithout,
		Color.ID():  modeOptional,
	}
	query := buildQuery(testRegistry.Types(), modes)

	assert.Equal(t, "Query(Name, !Hidden, ?Color)", query.String())
	assert.Equal(t, [][]any{{"Taya", nil}}, query.Apply(world))
	assert.Equal(t, []ecs.ComponentType{Name, Color}, visibleTypes(testRegistry.Types(), modes))

	t.Run("hidden elements do not project", func(t *testing.T) {
		query := buildQuery(testRegistry.Types(), map[uint32]elementMode{Hidden.ID(): modeHidden, Name.ID(): modeWith})
		assert.Equal(t, [][]any{{"Evee"}}, query.Apply(world))
	})

	t.Run("no modes is an empty query", func(t *testing.T) {
		assert.Equal(t, 0, buildQuery(testRegistry.Types(), nil).Len())
	})

	t.Run("modes cycle", func(t *testing.T) {
		qd := NewQueryDebuggerComponent(testRegistry)
		mode := modeNone
		for range len(modeLabels) - 1 {
			mode = mode.next()
			qd.setMode(Color, mode)
		}
		assert.Equal(t, modeHidden, qd.modes[Color.ID()])

		qd.setMode(Color, mode.next())
		assert.NotContains(t, qd.modes, Color.ID())
	})
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "<nil>", formatValue(nil))
	assert.Equal(t, "{x=1 y=2}", formatValue(ecs.Fields{"y": 2, "x": 1}))
	assert.Equal(t, "func()", formatValue(func() {}))
	assert.Equal(t, "red", formatValue("red"))
}

func TestPerformanceStats(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	assert.Zero(t, ps.averageFrameTime())

	ps.record(0.010)
	ps.record(0.020)
	assert.InDelta(t, 15.0, ps.averageFrameTime(), 0.001)

	for range 4 {
		ps.record(0.005)
	}
	assert.InDelta(t, 5.0, ps.averageFrameTime(), 0.001)

	world, _ := newTestWorld()
	slow := ecs.NewNamedSystem("slow", ecs.NewQuery().With(Name), func(string) {})
	world.AddSystem("update", slow)
	world.AddSystem("draw", slow)
	require.NoError(t, world.Emit("update"))

	systems := slowestSystems(world.Stats(), 5)
	require.Len(t, systems, 1)
	assert.Equal(t, "slow", systems[0].Name)
}

func TestReflectionCache(t *testing.T) {
	type inner struct{ A int }
	type payload struct {
		Label  string
		hidden int
		Inner  *inner
		Tags   []string
	}

	fields := NewReflectionCache().GetFields(reflect.TypeFor[payload]())
	require.Len(t, fields, 3)
	assert.Equal(t, FieldInfo{Name: "Label", Index: 0, Kind: reflect.String}, fields[0])
	assert.True(t, fields[1].IsPointer)
	assert.Equal(t, 2, fields[1].Index)
	assert.Equal(t, reflect.Struct, fields[1].Kind)

	assert.Empty(t, NewReflectionCache().GetFields(reflect.TypeFor[int]()))

	cache := NewReflectionCache()
	assert.Equal(t, cache.GetFields(reflect.TypeFor[payload]()), cache.GetFields(reflect.TypeFor[payload]()))
	assert.Equal(t, []string{"a", "b"}, sortedKeys(map[string]any{"b": 1, "a": 2}))
}

func TestFrame(t *testing.T) {
	t.Run("render runs queued functions in order", func(t *testing.T) {
		var order []int
		frame := &Frame{}
		frame.Queue(func() { order = append(order, 1) })
		frame.Queue(nil)
		frame.Queue(func() { order = append(order, 2) })
		assert.Equal(t, 2, frame.Len())

		frame.Render()
		assert.Equal(t, []int{1, 2}, order)
		assert.Zero(t, frame.Len())
	})

	t.Run("nil frame ignores calls", func(t *testing.T) {
		var frame *Frame
		assert.NotPanics(t, func() {
			frame.Queue(func() {})
			frame.Render()
			frame.Discard()
		})
		assert.Zero(t, frame.Len())
	})

	t.Run("failed emit drops queued renders", func(t *testing.T) {
		world := ecs.NewWorld()
		frame := &Frame{}

		rendered := 0
		world.AddEntity(ecs.NewEntity(ImguiItem.New(func() { rendered++ })))

		fail := true
		world.AddSystems(DrawSchedule,
			ecs.NewSystem(ecs.NewQuery().With(ImguiItem), func(render func()) { frame.Queue(render) }),
			ecs.NewSystem(ecs.NewQuery().With(ImguiItem), func(func()) error {
				if fail {
					return assert.AnError
				}
				return nil
			}),
		)
		world.AddSystem("update", ecs.NewSystem(ecs.NewQuery().With(ImguiItem), func(func()) {}))

		require.ErrorIs(t, frame.Emit(world, DrawSchedule), assert.AnError)
		assert.Zero(t, frame.Len())

		require.NoError(t, world.Emit("update"))
		assert.Zero(t, rendered, "render leaked into another schedule")

		fail = false
		require.NoError(t, frame.Emit(world, DrawSchedule))
		assert.Equal(t, 1, rendered)
	})
}

func TestAsTable(t *testing.T) {
	fields, ok := asTable(ecs.Fields{"x": 1})
	assert.True(t, ok)
	assert.Equal(t, 1, fields["x"])

	plain := map[string]any{"y": 2}
	table, ok := asTable(plain)
	require.True(t, ok)
	table["y"] = 3
	assert.Equal(t, 3, plain["y"], "plain maps are edited in place")

	for _, v := range []any{nil, ecs.Fields(nil), map[string]any(nil), "text", map[string]int{"z": 1}} {
		_, ok := asTable(v)
		assert.False(t, ok, "%#v", v)
	}
}
