package ecs

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/kamstrup/intmap"
)

// World owns entities, resources and named schedules of systems, and
// dispatches systems when a schedule is emitted.
//
// A World is not safe for concurrent use.
type World struct {
	entities  []*Entity
	resources []*Resource
	schedules map[string][]*System

	commands    *Commands
	emitCounts  map[string]int64
	systemStats *intmap.Map[uint32, *systemStatsInternal]
	logger      *slog.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger receiving diagnostic records. Logging never
// changes control flow; the default logger discards everything.
func WithLogger(logger *slog.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:    make([]*Entity, 0),
		resources:   make([]*Resource, 0),
		schedules:   make(map[string][]*System),
		commands:    newCommands(),
		emitCounts:  make(map[string]int64),
		systemStats: intmap.New[uint32, *systemStatsInternal](32),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddResource registers a resource. Resources live for the lifetime of the
// world; there is no removal.
func (w *World) AddResource(r *Resource) {
	if r == nil {
		panic("cannot add nil resource")
	}
	w.resources = append(w.resources, r)
}

// AddEntity appends an entity to the world. The same entity may be added
// more than once, in which case queries visit it once per registration.
func (w *World) AddEntity(e *Entity) {
	if e == nil {
		panic("cannot add nil entity")
	}
	w.entities = append(w.entities, e)
}

// RemoveEntity removes the first registration of the entity. Removing an
// entity that is not in the world is a no-op.
func (w *World) RemoveEntity(e *Entity) {
	i := slices.Index(w.entities, e)
	if i < 0 {
		w.logger.Debug("remove of unknown entity ignored", "entity", entityIdOf(e))
		return
	}
	w.entities = slices.Delete(w.entities, i, i+1)
}

// AddSystem appends a system to the named schedule, creating the schedule
// if needed.
func (w *World) AddSystem(schedule string, system *System) {
	w.AddSystems(schedule, system)
}

// AddSystems appends systems to the named schedule in argument order.
func (w *World) AddSystems(schedule string, systems ...*System) {
	for _, system := range systems {
		if system == nil {
			panic("cannot add nil system")
		}
	}

	w.schedules[schedule] = append(w.schedules[schedule], systems...)
	for _, system := range systems {
		if _, ok := w.systemStats.Get(system.id); !ok {
			w.systemStats.Put(system.id, newSystemStatsInternal())
		}
	}
}

// RemoveSystem removes the first registration of the system from the named
// schedule. Unknown schedules and systems are ignored.
func (w *World) RemoveSystem(schedule string, system *System) {
	systems, ok := w.schedules[schedule]
	if !ok {
		w.logger.Debug("remove from unknown schedule ignored", "schedule", schedule)
		return
	}

	i := slices.Index(systems, system)
	if i < 0 {
		w.logger.Debug("remove of unknown system ignored", "schedule", schedule)
		return
	}
	w.schedules[schedule] = slices.Delete(systems, i, i+1)
}

// Emit runs every system of the named schedule once, in registration order.
//
// Each system's query is evaluated immediately before the system runs, so
// changes made by earlier systems are visible to later ones. The callback is
// invoked once per matching entity. A binding failure or callback error stops
// the emit and is returned; the remaining systems do not run. Deferred
// commands are flushed after every system has run.
//
// Emitting an unknown or empty schedule is a no-op.
func (w *World) Emit(schedule string) error {
	systems := w.schedules[schedule]
	if len(systems) == 0 {
		w.logger.Debug("emit of empty schedule ignored", "schedule", schedule)
		return nil
	}

	w.emitCounts[schedule]++

	// Systems added or removed during the emit take effect on the next one
	systems = slices.Clone(systems)
	for _, system := range systems {
		if err := w.run(system); err != nil {
			return fmt.Errorf("schedule %q: system %s: %w", schedule, system.name, err)
		}
	}

	w.commands.Flush(w)
	return nil
}

func (w *World) run(system *System) error {
	start := time.Now()
	rows := system.query.Apply(w)

	invoked := 0
	var err error
	for _, row := range rows {
		invoked++
		if err = system.invoke(row); err != nil {
			break
		}
	}

	stats, ok := w.systemStats.Get(system.id)
	if !ok {
		stats = newSystemStatsInternal()
		w.systemStats.Put(system.id, stats)
	}
	stats.record(time.Since(start), invoked)

	return err
}

// Entities returns a copy of the entity list in world order.
func (w *World) Entities() []*Entity {
	return slices.Clone(w.entities)
}

// Resources returns a copy of the registered resources.
func (w *World) Resources() []*Resource {
	return slices.Clone(w.resources)
}

// Systems returns a copy of the systems registered under the schedule.
func (w *World) Systems(schedule string) []*System {
	return slices.Clone(w.schedules[schedule])
}

// Schedules returns the names of all schedules, sorted.
func (w *World) Schedules() []string {
	names := make([]string, 0, len(w.schedules))
	for name := range w.schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the world's deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

func entityIdOf(e *Entity) EntityId {
	if e == nil {
		return 0
	}
	return e.id
}
