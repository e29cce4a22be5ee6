package debugui

import (
	"github.com/plus3/tinyecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type ScheduleViewerComponent struct {
	rows          []SystemRow
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

type QueryDebuggerComponent struct {
	registry *ecs.ComponentRegistry
	modes    map[uint32]elementMode
}
