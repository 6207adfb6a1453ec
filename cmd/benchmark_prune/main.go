package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-bindable/bindable"
	"github.com/olekukonko/tablewriter"
)

type benchmarkTestConfig struct {
	name             string  // friendly name for the test, should be unique
	total            int     // bindings registered before collection
	retainedFraction float64 // fraction of targets kept alive
	updates          int     // steady-state Set calls to time
}

type subLabel struct {
	id    int
	value int
}

func main() {
	log.Print("Starting notify-and-prune benchmark, please wait...")
	defer log.Print("Finished notify-and-prune benchmark")

	perfTestCfgs := []benchmarkTestConfig{
		{
			name:             "mostly live",
			total:            1_000,
			retainedFraction: 0.9,
			updates:          10_000,
		},
		{
			name:             "half dead",
			total:            1_000,
			retainedFraction: 0.5,
			updates:          10_000,
		},
		{
			name:             "mass teardown",
			total:            10_000,
			retainedFraction: 0.05,
			updates:          2_000,
		},
		{
			name:             "churn heavy",
			total:            100_000,
			retainedFraction: 0.01,
			updates:          500,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "total", "retained", "prunePass",
		"nTimes", "time", "deliveryRate",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)

		bestSteady := time.Hour
		bestPrune := time.Hour
		retainedCount := int(float64(cfg.total) * cfg.retainedFraction)

		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)
			prune, steady := runOnce(cfg, retainedCount)
			if prune < bestPrune {
				bestPrune = prune
			}
			if steady < bestSteady {
				bestSteady = steady
			}
		}

		deliveries := int64(retainedCount) * int64(cfg.updates)
		deliveryRate := float64(deliveries) / (float64(bestSteady) / float64(time.Second))

		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.total)),
			humanize.Comma(int64(retainedCount)),
			fmt.Sprint(bestPrune),
			humanize.Comma(int64(cfg.updates)),
			fmt.Sprint(bestSteady),
			humanize.Comma(int64(deliveryRate)),
		})
	}
	table.Render() // Send output
}

// attach registers one binding whose handler records its id; the
// returned target is the only strong reference to it
func attach(b *bindable.Bindable[int], id int, fired mapset.Set[int], hits *int64) *subLabel {
	l := &subLabel{id: id}
	bindable.Bind(b,
		func(v int) int { return v },
		l,
		func(sl *subLabel, v int) {
			sl.value = v
			*hits++
			fired.Add(id)
		},
	)
	return l
}

func runOnce(cfg benchmarkTestConfig, retainedCount int) (prunePass, steady time.Duration) {
	b := bindable.New[int]()
	fired := mapset.NewSet[int]()
	retainedIDs := mapset.NewSet[int]()
	var hits int64

	retained := make([]*subLabel, 0, retainedCount)
	for i := 0; i < cfg.total; i++ {
		l := attach(b, i, fired, &hits)
		if i < retainedCount {
			retained = append(retained, l)
			retainedIDs.Add(i)
		}
		// targets past retainedCount are dropped on the spot
	}

	runtime.GC()
	runtime.GC()

	// first pass after collection does all the pruning
	start := time.Now()
	b.Set(0)
	prunePass = time.Since(start)

	if got := b.Subscribers(); got != retainedCount {
		log.Fatalf("%s: expected %d live subscriptions after prune, got %d", cfg.name, retainedCount, got)
	}
	if !fired.Equal(retainedIDs) {
		log.Fatalf("%s: fired set does not match retained set", cfg.name)
	}
	if hits != int64(retainedCount) {
		log.Fatalf("%s: expected %d deliveries on prune pass, got %d", cfg.name, retainedCount, hits)
	}

	hits = 0
	start = time.Now()
	for i := 1; i <= cfg.updates; i++ {
		b.Set(i)
	}
	steady = time.Since(start)

	if expected := int64(retainedCount) * int64(cfg.updates); hits != expected {
		log.Fatalf("%s: expected %d steady-state deliveries, got %d", cfg.name, expected, hits)
	}
	runtime.KeepAlive(retained)
	return prunePass, steady
}
