package ecs

import (
	"context"
	"fmt"
	"time"
)

// FrameTime is the clock data a Loop publishes before each tick.
type FrameTime struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// Loop drives a fixed list of schedules on a timer. Hosts that own their own
// frame callbacks can call Emit directly instead.
type Loop struct {
	world     *World
	clock     *Resource
	schedules []string
}

// NewLoop creates a loop emitting the given schedules in order on every tick.
// It registers a clock resource holding a *FrameTime with the world.
func NewLoop(w *World, schedules ...string) *Loop {
	clock := NewResource(&FrameTime{})
	w.AddResource(clock)

	return &Loop{
		world:     w,
		clock:     clock,
		schedules: schedules,
	}
}

// Clock returns the resource holding the loop's *FrameTime, for use in
// Query.Res.
func (l *Loop) Clock() *Resource {
	return l.clock
}

// Once advances the clock by dt seconds and emits every schedule once.
// It stops at the first schedule that fails.
func (l *Loop) Once(dt float64) error {
	if ft, ok := l.clock.Data.(*FrameTime); ok {
		ft.Delta = dt
		ft.Elapsed += dt
		ft.Frame++
	}

	for _, schedule := range l.schedules {
		if err := l.world.Emit(schedule); err != nil {
			return err
		}
	}
	return nil
}

// Run executes all schedules repeatedly at the given interval until the
// context is cancelled or an emit fails. A non-positive interval returns
// ErrInvalidInterval without ticking.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := l.Once(dt); err != nil {
				return err
			}
		}
	}
}
