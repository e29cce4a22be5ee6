package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/tinyecs/ecs"
)

const componentCount = 64

func main() {
	if err := run(); err != nil {
		log.Printf("Stress test failed: %v", err)
		os.Exit(1)
	}
}

// run must return rather than exit so the profile is stopped and written.
func run() error {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	systemCount := flag.Int("systems", 50, "The number of systems to register across the update and draw schedules.")
	interval := flag.Duration("interval", 0, "Minimum time between ticks. Zero runs ticks back to back.")
	seed := flag.Int64("seed", 1, "Seed for the random world layout.")
	debug := flag.Bool("debug", false, "Log world debug records to stderr.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	stopProfile, err := startProfile(*profileMode)
	if err != nil {
		return err
	}
	defer stopProfile()

	log.Println("Starting ECS stress test...")

	// 1. Setup registry, world and systems
	var opts []ecs.WorldOption
	if *debug {
		opts = append(opts, ecs.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	rng := rand.New(rand.NewSource(*seed))
	registry := ecs.NewComponentRegistry()
	types := defineComponents(registry, componentCount)
	world := ecs.NewWorld(opts...)
	loop := ecs.NewLoop(world, "update", "draw")
	registerSystems(world, loop.Clock(), types, *systemCount, rng)

	// 2. Populate the world with initial entities
	log.Printf("Populating world with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		world.AddEntity(randomEntity(types, rng.Intn(5)+1, rng))
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        *systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	if err := simulate(ctx, loop, *interval, report); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	runtime.ReadMemStats(&report.MemStatsEnd)
	report.World = world.Stats()

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
	return nil
}

// startProfile starts pkg/profile for mode and returns its stop function.
func startProfile(mode string) (func(), error) {
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
	}
}

// simulate ticks the loop until ctx is done, recording the time of every tick.
func simulate(ctx context.Context, loop *ecs.Loop, interval time.Duration, report *Report) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				break Loop
			case <-tick:
			}
		} else if ctx.Err() != nil {
			break Loop
		}

		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		if err := loop.Once(deltaTime.Seconds()); err != nil {
			return err
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	return nil
}
