package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/tinyecs/ecs"
)

// Stress component types, mixed so several pools churn at once.
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Label string

// liveComp tracks a component key so the churn loop can remove it later
// and verify it goes stale.
type liveComp struct {
	kind   int
	key    ecs.ComponentKey
	entity ecs.EntityKey
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The target number of live entities.")
	batchSize := flag.Int("batch", 256, "Operations per churn batch.")
	seed := flag.Int64("seed", 1, "PRNG seed for the churn workload.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	cpuProfile := flag.Bool("cpuprofile", false, "Write a CPU profile to the current directory.")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewSource(*seed))
	store := ecs.NewStore()

	// 1. Populate the store with the initial entity set.
	log.Printf("Populating store with %d entities...\n", *entityCount)
	entities := make([]ecs.EntityKey, 0, *entityCount)
	comps := make([]liveComp, 0, *entityCount*2)
	for i := 0; i < *entityCount; i++ {
		e := store.InsertEntity()
		entities = append(entities, e)
		for j := rng.Intn(3); j >= 0; j-- {
			comps = append(comps, insertRandom(store, rng, e))
		}
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Batch:          *batchSize,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	// 2. Run the churn loop until the deadline.
	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			batchStart := time.Now()
			entities, comps = churnBatch(store, rng, entities, comps, *entityCount, *batchSize, report)
			report.BatchTime.Samples = append(report.BatchTime.Samples, time.Since(batchStart))
			report.Batches++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.BatchTime.Finalize()
	report.FinalStats = store.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Churn finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// churnBatch performs one batch of random insertions and removals, keeping
// the live-entity count near target, and verifies that every removed key
// really is stale afterwards.
func churnBatch(store *ecs.Store, rng *rand.Rand, entities []ecs.EntityKey, comps []liveComp, target, batch int, report *Report) ([]ecs.EntityKey, []liveComp) {
	for i := 0; i < batch; i++ {
		switch op := rng.Intn(10); {
		case op < 3 && len(entities) < target*2: // insert entity + components
			e := store.InsertEntity()
			entities = append(entities, e)
			for j := rng.Intn(3); j >= 0; j-- {
				comps = append(comps, insertRandom(store, rng, e))
			}
			report.EntityInserts++

		case op < 5 && len(entities) > target/2: // remove entity, cascade
			idx := rng.Intn(len(entities))
			e := entities[idx]
			entities[idx] = entities[len(entities)-1]
			entities = entities[:len(entities)-1]
			if err := store.RemoveEntity(e); err != nil {
				log.Fatalf("remove of live entity %v failed: %v", e, err)
			}
			if store.ContainsEntity(e) {
				log.Fatalf("entity %v still live after removal", e)
			}
			report.EntityRemoves++

		case op < 8 && len(entities) > 0: // insert component
			e := entities[rng.Intn(len(entities))]
			comps = append(comps, insertRandom(store, rng, e))
			report.CompInserts++

		case len(comps) > 0: // remove component, verify staleness
			idx := rng.Intn(len(comps))
			c := comps[idx]
			comps[idx] = comps[len(comps)-1]
			comps = comps[:len(comps)-1]
			err := removeByKind(store, c)
			// The owner may have been cascade-removed already; both
			// outcomes are fine, but the key must be dead afterwards.
			if err != nil && !errors.Is(err, ecs.ErrUnknownComponent) {
				log.Fatalf("component removal failed unexpectedly: %v", err)
			}
			if _, err := store.ComponentEntity(c.key); !errors.Is(err, ecs.ErrUnknownComponent) {
				log.Fatalf("key %v still resolves after removal", c.key)
			}
			report.CompRemoves++
		}
	}

	// Drop tracking entries for components that died in entity cascades,
	// so the slice does not grow without bound.
	alive := comps[:0]
	for _, c := range comps {
		if _, err := store.ComponentEntity(c.key); err == nil {
			alive = append(alive, c)
		}
	}
	return entities, alive
}

func insertRandom(store *ecs.Store, rng *rand.Rand, e ecs.EntityKey) liveComp {
	kind := rng.Intn(4)
	var (
		key ecs.ComponentKey
		err error
	)
	switch kind {
	case 0:
		key, err = ecs.InsertComponent(store, e, Position{X: rng.Float32(), Y: rng.Float32()})
	case 1:
		key, err = ecs.InsertComponent(store, e, Velocity{DX: rng.Float32(), DY: rng.Float32()})
	case 2:
		key, err = ecs.InsertComponent(store, e, Health{Current: rng.Intn(100), Max: 100})
	default:
		key, err = ecs.InsertComponent(store, e, Label(fmt.Sprintf("label-%d", rng.Intn(1000))))
	}
	if err != nil {
		log.Fatalf("insert on live entity %v failed: %v", e, err)
	}
	return liveComp{kind: kind, key: key, entity: e}
}

func removeByKind(store *ecs.Store, c liveComp) error {
	var err error
	switch c.kind {
	case 0:
		_, err = ecs.RemoveComponent[Position](store, c.key)
	case 1:
		_, err = ecs.RemoveComponent[Velocity](store, c.key)
	case 2:
		_, err = ecs.RemoveComponent[Health](store, c.key)
	default:
		_, err = ecs.RemoveComponent[Label](store, c.key)
	}
	return err
}
