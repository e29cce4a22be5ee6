package ecs

import (
	"sort"
	"time"
)

// WorldStats provides a snapshot of world contents and dispatch statistics.
type WorldStats struct {
	EntityCount     int
	ResourceCount   int
	ScheduleCount   int
	TotalExecutions int64
	Schedules       []ScheduleStats
}

// ScheduleStats provides statistics about one named schedule.
type ScheduleStats struct {
	Name      string
	EmitCount int64
	Systems   []SystemStats
}

// SystemStats provides execution statistics for a single system.
// A system registered under several schedules shares one set of counters.
type SystemStats struct {
	Id             uint32
	Name           string
	ExecutionCount int64
	Invocations    int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	invocations    int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStatsInternal() *systemStatsInternal {
	return &systemStatsInternal{
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *systemStatsInternal) record(duration time.Duration, invocations int) {
	s.executionCount++
	s.invocations += int64(invocations)
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *systemStatsInternal) export(system *System) SystemStats {
	out := SystemStats{
		Id:   system.id,
		Name: system.name,
	}
	if s == nil || s.executionCount == 0 {
		return out
	}

	out.ExecutionCount = s.executionCount
	out.Invocations = s.invocations
	out.MinDuration = s.minDuration
	out.MaxDuration = s.maxDuration
	out.AvgDuration = s.totalDuration / time.Duration(s.executionCount)
	out.LastDuration = s.lastDuration
	out.TotalDuration = s.totalDuration
	return out
}

// Stats returns statistics about world contents and system execution.
// Schedules are sorted by name; systems keep registration order.
func (w *World) Stats() *WorldStats {
	stats := &WorldStats{
		EntityCount:   len(w.entities),
		ResourceCount: len(w.resources),
		ScheduleCount: len(w.schedules),
		Schedules:     make([]ScheduleStats, 0, len(w.schedules)),
	}

	counted := make(map[uint32]bool)
	for name, systems := range w.schedules {
		schedule := ScheduleStats{
			Name:      name,
			EmitCount: w.emitCounts[name],
			Systems:   make([]SystemStats, len(systems)),
		}
		for i, system := range systems {
			internal, _ := w.systemStats.Get(system.id)
			schedule.Systems[i] = internal.export(system)
			if !counted[system.id] {
				counted[system.id] = true
				stats.TotalExecutions += schedule.Systems[i].ExecutionCount
			}
		}
		stats.Schedules = append(stats.Schedules, schedule)
	}

	sort.Slice(stats.Schedules, func(i, j int) bool {
		return stats.Schedules[i].Name < stats.Schedules[j].Name
	})

	return stats
}
