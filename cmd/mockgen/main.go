package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"worklog-insights/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, crunch, sparse")
	outDir := flag.String("out", "./.cache", "Output directory for the fixture")
	name := flag.String("name", "worklogs", "Fixture file name without extension")
	count := flag.Int("count", 200, "Number of issues to generate")
	days := flag.Int("days", 30, "Days of history ending today")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Days:     *days,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Days: %d, Seed: %d) to %s...\n", cfg.Scenario, cfg.Count, cfg.Days, cfg.Seed, *outDir)

	dump := engine.Generate(cfg)

	path, err := engine.Save(*outDir, *name, dump)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Point JIRA_FIXTURE_PATH at %s\n", path)
}
