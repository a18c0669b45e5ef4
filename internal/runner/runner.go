// Package runner fans the per-project parse and score work over a bounded
// pool of goroutines. Each parse owns its inputs and produces an independent
// result, so the pool needs no synchronization beyond job distribution.
package runner

import (
	"context"
	"sync"
	"time"

	"docpulse/internal/metrics"
	"docpulse/internal/parser"
	"docpulse/internal/scan"
	t "docpulse/internal/types"
	"docpulse/internal/utils"
)

const defaultWorkers = 4

// Result pairs one parsed project with its snapshot. Err is set when the
// metrics configuration was rejected; parse itself never fails.
type Result struct {
	Project  t.Project
	Snapshot t.MetricsSnapshot
	Err      error
}

// ActivityFunc supplies the recent-activity factor for one project, derived
// from externally tracked state (snapshot history). Nil means 0 everywhere.
type ActivityFunc func(dir scan.ProjectDir) float64

// Pool runs parses with bounded concurrency.
type Pool struct {
	workers  int
	cfg      metrics.Config
	activity ActivityFunc
}

func NewPool(workers int, cfg metrics.Config, activity ActivityFunc) *Pool {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Pool{workers: workers, cfg: cfg, activity: activity}
}

// Run parses every project and returns results in input order. A canceled
// context stops feeding work; jobs already started still complete.
func (p *Pool) Run(ctx context.Context, dirs []scan.ProjectDir, opts scan.Options) []Result {
	results := make([]Result, len(dirs))
	if len(dirs) == 0 {
		return results
	}

	workers := utils.ClampInt(p.workers, 1, len(dirs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg := p.cfg
				if p.activity != nil {
					cfg.RecentActivityFactor = p.activity(dirs[i])
				}
				results[i] = ParseProject(dirs[i], opts, cfg)
			}
		}()
	}

feed:
	for i := range dirs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// ParseProject loads one project's documents, extracts both entity sets and
// computes a snapshot. Pure over the file contents; safe to call from any
// number of goroutines.
func ParseProject(dir scan.ProjectDir, opts scan.Options, cfg metrics.Config) Result {
	docs := scan.LoadDocs(dir, opts)

	taskDoc := parser.TaskExtractor{}.Extract(docs.TodoText)
	reqDoc := parser.RequirementExtractor{}.Extract(docs.RequirementsText)

	project := t.Project{
		ID:               utils.NewIDGen().ID(dir.Path),
		Name:             dir.Name,
		Path:             dir.Path,
		TodoPath:         dir.TodoPath,
		RequirementsPath: dir.RequirementsPath,
		ReadmePath:       dir.ReadmePath,
		ReadmeExcerpt:    docs.ReadmeExcerpt,
		Tasks:            taskDoc.Tasks,
		Requirements:     reqDoc.Requirements,
		LastScanned:      time.Now(),
	}

	snapshot, err := metrics.Compute(project.Tasks, project.Requirements, cfg)
	return Result{Project: project, Snapshot: snapshot, Err: err}
}
