package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"docpulse/internal/metrics"
	"docpulse/internal/runner"
	"docpulse/internal/scan"
)

func main() {
	root := flag.String("root", ".", "directory to scan for projects")
	threshold := flag.Float64("threshold", metrics.DefaultThreshold, "gap-analysis similarity threshold")
	workers := flag.Int("workers", 4, "parallel parse workers")
	asJSON := flag.Bool("json", false, "emit JSON instead of a table")
	flag.Parse()

	_ = godotenv.Load()

	opts := scan.DefaultOptions()
	dirs, err := scan.Discover(*root, opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("found %d project(s) under %s", len(dirs), *root)

	cfg := metrics.Config{SimilarityThreshold: *threshold}
	pool := runner.NewPool(*workers, cfg, nil)
	results := pool.Run(context.Background(), dirs, opts)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatal(err)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tTASKS\tDONE\tCOMPLETION\tHEALTH\tORPHAN REQS\tORPHAN TASKS")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", res.Project.Name, res.Err)
			continue
		}
		snap := res.Snapshot
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%.2f\t%d\t%d\n",
			res.Project.Name,
			snap.TotalTasks,
			snap.TaskCountsByStatus["done"],
			snap.CompletionPercentage,
			snap.HealthScore,
			len(snap.OrphanedRequirementIDs),
			len(snap.OrphanedTaskIDs),
		)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
