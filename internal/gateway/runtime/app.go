// Package runtime composes the gateway: configuration, project store,
// report store and the scan/parse pipeline behind one App.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"docpulse/internal/gateway/config"
	"docpulse/internal/gateway/repository/projectstore"
	"docpulse/internal/gateway/repository/report"
	"docpulse/internal/metrics"
	"docpulse/internal/runner"
	"docpulse/internal/scan"
	t "docpulse/internal/types"
)

type App struct {
	cfg     *config.Config
	store   *projectstore.Store
	reports report.Store

	scanMu sync.Mutex // one rescan at a time

	watchMu  sync.RWMutex
	watchers map[chan DashboardSummary]struct{}
}

func New(cfg *config.Config, store *projectstore.Store, reports report.Store) *App {
	if reports == nil {
		reports = report.NewMemoryStore()
	}
	return &App{
		cfg:      cfg,
		store:    store,
		reports:  reports,
		watchers: make(map[chan DashboardSummary]struct{}),
	}
}

func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Reports() report.Store { return a.reports }

// ScanSummary reports the outcome of one rescan.
type ScanSummary struct {
	ProjectsFound int       `json:"projects_found"`
	ScannedAt     time.Time `json:"scanned_at"`
	Errors        []string  `json:"errors,omitempty"`
}

// Rescan discovers projects under the configured root, parses them
// concurrently and replaces the stored entity sets. Each project gets a new
// snapshot appended to its history and a rendered report.
func (a *App) Rescan(ctx context.Context) (ScanSummary, error) {
	a.scanMu.Lock()
	defer a.scanMu.Unlock()

	opts := a.cfg.Scanner.ScanOptions()
	dirs, err := scan.Discover(a.cfg.ScanRoot, opts)
	if err != nil {
		return ScanSummary{}, err
	}
	log.Printf("rescan: %d project(s) under %s", len(dirs), a.cfg.ScanRoot)

	cfg := metrics.Config{SimilarityThreshold: a.cfg.Scanner.SimilarityThreshold}
	pool := runner.NewPool(a.cfg.Scanner.Workers, cfg, a.activityFor)

	summary := ScanSummary{ProjectsFound: len(dirs), ScannedAt: time.Now()}
	for _, res := range pool.Run(ctx, dirs, opts) {
		if res.Err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", res.Project.Path, res.Err))
			continue
		}
		a.store.Put(projectstore.State{
			ProjectID: res.Project.ID,
			Project:   res.Project,
			UpdatedAt: summary.ScannedAt,
		})
		if err := a.store.AddSnapshot(projectstore.SnapshotRecord{
			ProjectID: res.Project.ID,
			Snapshot:  res.Snapshot,
			CreatedAt: res.Snapshot.ComputedAt,
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: snapshot: %v", res.Project.ID, err))
		}
		a.saveReport(ctx, res)
	}
	a.store.Save()

	a.broadcast(a.Dashboard())
	return summary, nil
}

func (a *App) saveReport(ctx context.Context, res runner.Result) {
	body, err := json.MarshalIndent(struct {
		Project  t.Project         `json:"project"`
		Snapshot t.MetricsSnapshot `json:"snapshot"`
	}{res.Project, res.Snapshot}, "", "  ")
	if err != nil {
		return
	}
	name := fmt.Sprintf("snapshot-%s.json", res.Snapshot.ComputedAt.UTC().Format("20060102T150405Z"))
	if err := a.reports.Put(ctx, res.Project.ID, name, body); err != nil {
		log.Printf("report store: put %s/%s: %v", res.Project.ID, name, err)
	}
}

// activityFor derives the recent-activity factor from a project's snapshot
// history: fresher history scores higher. Timestamp state stays out of the
// metrics engine; it only sees the resulting scalar.
func (a *App) activityFor(dir scan.ProjectDir) float64 {
	state, ok := a.stateForPath(dir.Path)
	if !ok {
		return 0
	}
	recs, err := a.store.ListSnapshots(state.ProjectID)
	if err != nil || len(recs) == 0 {
		return 0
	}
	age := time.Since(recs[len(recs)-1].CreatedAt)
	switch {
	case age < 24*time.Hour:
		return 1.0
	case age < 7*24*time.Hour:
		return 0.7
	case age < 30*24*time.Hour:
		return 0.3
	default:
		return 0
	}
}

func (a *App) stateForPath(path string) (projectstore.State, bool) {
	for _, state := range a.store.List() {
		if state.Project.Path == path {
			return state, true
		}
	}
	return projectstore.State{}, false
}

// Projects returns every stored project record, sorted by ID.
func (a *App) Projects() []projectstore.State {
	return a.store.List()
}

func (a *App) Project(id string) (projectstore.State, bool) {
	return a.store.Get(id)
}

// LatestSnapshot returns the newest metrics snapshot for a project.
func (a *App) LatestSnapshot(id string) (t.MetricsSnapshot, bool) {
	recs, err := a.store.ListSnapshots(id)
	if err != nil || len(recs) == 0 {
		return t.MetricsSnapshot{}, false
	}
	return recs[len(recs)-1].Snapshot, true
}

func (a *App) SnapshotHistory(id string) []projectstore.SnapshotRecord {
	recs, err := a.store.ListSnapshots(id)
	if err != nil {
		return nil
	}
	return recs
}
