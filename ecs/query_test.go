package ecs_test

import (
	"testing"

	"github.com/plus3/tinyecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQueryApplyScenarios(t *testing.T) {
	t.Run("required component", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(named("Taya"))
		world.AddEntity(named("Evee"))

		rows := ecs.NewQuery().With(Name).Apply(world)
		assert.Equal(t, [][]any{{"Taya"}, {"Evee"}}, rows)
	})

	t.Run("optional component yields nil when absent", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(ecs.NewEntity(Name.New("Samantha"), Nickname.New("Sam")))
		world.AddEntity(named("John"))

		rows := ecs.NewQuery().With(Name).Optional(Nickname).Apply(world)
		assert.Equal(t, [][]any{{"Samantha", "Sam"}, {"John", nil}}, rows)
	})

	t.Run("hidden component gates without projecting", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(ecs.NewEntity(Name.New("Taya"), Hidden.New(), Color.New("red")))
		world.AddEntity(named("Evee"))

		rows := ecs.NewQuery().With(Name).WithHidden(Hidden).With(Color).Apply(world)
		assert.Equal(t, [][]any{{"Taya", "red"}}, rows)
	})

	t.Run("excluded component", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(ecs.NewEntity(Name.New("Taya"), Hidden.New()))
		world.AddEntity(named("Evee"))

		rows := ecs.NewQuery().With(Name).Without(Hidden).Apply(world)
		assert.Equal(t, [][]any{{"Evee"}}, rows)
	})

	t.Run("resource is projected by reference", func(t *testing.T) {
		world := ecs.NewWorld()
		res := ecs.NewResource(10)
		world.AddResource(res)
		world.AddEntity(named("a"))
		world.AddEntity(named("b"))

		query := ecs.NewQuery().Res(res).With(Name)
		assert.Equal(t, [][]any{{10, "a"}, {10, "b"}}, query.Apply(world))

		res.Data = 11
		assert.Equal(t, [][]any{{11, "a"}, {11, "b"}}, query.Apply(world))
	})

	t.Run("resource elements never gate matching", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(ecs.NewEntity())

		rows := ecs.NewQuery().Res(ecs.NewResource("unregistered")).Apply(world)
		assert.Equal(t, [][]any{{"unregistered"}}, rows)
	})

	t.Run("empty world", func(t *testing.T) {
		rows := ecs.NewQuery().With(Name).Apply(ecs.NewWorld())
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("first duplicate component is projected", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(ecs.NewEntity(Name.New("first"), Name.New("second")))

		rows := ecs.NewQuery().With(Name).Apply(world)
		assert.Equal(t, [][]any{{"first"}}, rows)
	})
}

func TestQueryMatch(t *testing.T) {
	entities := map[string]*ecs.Entity{
		"empty":          ecs.NewEntity(),
		"name":           named("n"),
		"name+hidden":    ecs.NewEntity(Name.New("n"), Hidden.New()),
		"name+color":     ecs.NewEntity(Name.New("n"), Color.New()),
		"color+hidden":   ecs.NewEntity(Color.New(), Hidden.New()),
		"name+color+hid": ecs.NewEntity(Name.New("n"), Color.New(), Hidden.New()),
	}

	tests := []struct {
		name     string
		query    *ecs.Query
		required []ecs.ComponentType
		excluded []ecs.ComponentType
	}{
		{"empty query", ecs.NewQuery(), nil, nil},
		{"with", ecs.NewQuery().With(Name), []ecs.ComponentType{Name}, nil},
		{"without", ecs.NewQuery().Without(Hidden), nil, []ecs.ComponentType{Hidden}},
		{"hidden", ecs.NewQuery().WithHidden(Hidden), []ecs.ComponentType{Hidden}, nil},
		{"optional only", ecs.NewQuery().Optional(Color), nil, nil},
		{"mixed", ecs.NewQuery().With(Name).Without(Hidden).Optional(Color), []ecs.ComponentType{Name}, []ecs.ComponentType{Hidden}},
		{"resource ignored", ecs.NewQuery().Res(ecs.NewResource(nil)).With(Color), []ecs.ComponentType{Color}, nil},
		{"required and hidden", ecs.NewQuery().With(Name).WithHidden(Hidden).With(Color), []ecs.ComponentType{Name, Hidden, Color}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for label, e := range entities {
				expected := true
				for _, typ := range tt.required {
					if !e.Has(typ) {
						expected = false
					}
				}
				for _, typ := range tt.excluded {
					if e.Has(typ) {
						expected = false
					}
				}
				assert.Equal(t, expected, tt.query.Match(e), label)
			}
		})
	}

	t.Run("nil entity never matches", func(t *testing.T) {
		assert.False(t, ecs.NewQuery().Match(nil))
	})
}

func TestQueryOrderAndArity(t *testing.T) {
	world := ecs.NewWorld()
	entities := []*ecs.Entity{
		ecs.NewEntity(Name.New("a"), Score.New(1)),
		ecs.NewEntity(Score.New(2)),
		ecs.NewEntity(Name.New("c"), Score.New(3), Hidden.New()),
		ecs.NewEntity(Name.New("d")),
		ecs.NewEntity(Name.New("e"), Score.New(5)),
	}
	for _, e := range entities {
		world.AddEntity(e)
	}

	query := ecs.NewQuery().Optional(Score).Without(Hidden).With(Name).WithHidden(Name)

	t.Run("arity counts visible elements", func(t *testing.T) {
		assert.Equal(t, 2, query.Arity())
		assert.Equal(t, 4, query.Len())
		assert.Equal(t, 0, ecs.NewQuery().Arity())
	})

	t.Run("rows follow world order and declaration order", func(t *testing.T) {
		rows := query.Apply(world)
		assert.Equal(t, [][]any{{1, "a"}, {nil, "d"}, {5, "e"}}, rows)
		for _, row := range rows {
			assert.Len(t, row, query.Arity())
		}
	})

	t.Run("order tracks world mutation", func(t *testing.T) {
		world.RemoveEntity(entities[0])
		world.AddEntity(entities[0])

		rows := query.Apply(world)
		assert.Equal(t, [][]any{{nil, "d"}, {5, "e"}, {1, "a"}}, rows)
	})

	t.Run("apply is a snapshot", func(t *testing.T) {
		rows := query.Apply(world)
		world.AddEntity(named("late"))
		entities[3].Add(Score.New(4))

		assert.Len(t, rows, 3)
		assert.Equal(t, []any{nil, "d"}, rows[0])
	})
}

func TestQueryConstruction(t *testing.T) {
	t.Run("builder returns the same query", func(t *testing.T) {
		q := ecs.NewQuery()
		assert.Same(t, q, q.With(Name))
		assert.Same(t, q, q.Without(Hidden))
		assert.Same(t, q, q.WithHidden(Color))
		assert.Same(t, q, q.Optional(Nickname))
		assert.Same(t, q, q.Res(ecs.NewResource(1)))
	})

	t.Run("nil resource panics", func(t *testing.T) {
		assert.Panics(t, func() { ecs.NewQuery().Res(nil) })
	})

	t.Run("undefined component type panics", func(t *testing.T) {
		var zero ecs.ComponentType
		assert.Panics(t, func() { ecs.NewQuery().With(zero) })
		assert.Panics(t, func() { ecs.NewQuery().Without(zero) })
		assert.Panics(t, func() { ecs.NewQuery().WithHidden(zero) })
		assert.Panics(t, func() { ecs.NewQuery().Optional(zero) })
	})

	t.Run("string", func(t *testing.T) {
		q := ecs.NewQuery().With(Name).Without(Hidden).WithHidden(Color).Optional(Nickname).Res(ecs.NewResource(nil))
		assert.Equal(t, "Query(Name, !Hidden, ~Color, ?Nickname, $)", q.String())
	})
}
