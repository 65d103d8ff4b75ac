// Command blockfall-stress plays random games headlessly and reports engine
// throughput and gameplay statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
)

// intents is sampled uniformly; repeats weight the common moves.
var intents = []engine.Action{
	engine.ActionMoveLeft, engine.ActionMoveLeft,
	engine.ActionMoveRight, engine.ActionMoveRight,
	engine.ActionRotate, engine.ActionRotate,
	engine.ActionMoveDown, engine.ActionMoveDown, engine.ActionMoveDown,
	engine.ActionHold,
	engine.ActionHardDrop,
}

// step plays one frame: an intent on roughly a quarter of frames, then a tick.
// It reports whether the game ended.
func step(e *engine.Engine, rng *rand.Rand, frame time.Duration) bool {
	if rng.IntN(4) == 0 {
		a := intents[rng.IntN(len(intents))]
		if errors.Is(e.Apply(a), engine.ErrGameOver) {
			return true
		}
	}
	return errors.Is(e.Tick(frame), engine.ErrGameOver)
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	maxGames := flag.Int("games", 0, "Stop after this many finished games. 0 runs for the full duration.")
	frame := flag.Duration("frame", time.Second/60, "Simulated time passed to every engine tick.")
	seed := flag.Uint64("seed", 0, "Seed for the supplier and the random intents. 0 picks one.")
	configPath := flag.String("config", "", "Path to a YAML config file. Falls back to $"+config.EnvPath+".")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting blockfall stress test...")

	// 1. Load configuration and build the engine
	cfg, err := config.LoadOrDefault(config.Resolve(*configPath))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}
	cfg.Supplier.Seed = *seed

	supplier, err := cfg.NewSupplier()
	if err != nil {
		log.Fatalf("Failed to build supplier: %v", err)
	}
	e, err := engine.New(cfg.EngineConfig(), supplier)
	if err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	rng := rand.New(rand.NewPCG(*seed, ^*seed))

	// 2. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Frame:          *frame,
		Rows:           cfg.Board.Rows,
		Columns:        cfg.Board.Columns,
		Supplier:       cfg.Supplier.Kind,
		Seed:           *seed,
		MaxGames:       *maxGames,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			over := step(e, rng, *frame)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			if !over {
				continue
			}
			report.addGame(e.Stats())
			if *maxGames > 0 && report.Games >= *maxGames {
				break Loop
			}
			if err := e.Reset(); err != nil {
				log.Fatalf("Failed to reset engine: %v", err)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.PiecesPerGame.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Printf("Simulation finished after %d games.\n", report.Games)

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
