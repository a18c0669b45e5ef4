package runtime

import (
	"context"
	"strings"
	"sync"
	"time"

	t "docpulse/internal/types"
)

// DashboardSummary aggregates the latest snapshot of every project into one
// cross-project view.
type DashboardSummary struct {
	TotalProjects        int                  `json:"total_projects"`
	TotalTasks           int                  `json:"total_tasks"`
	TotalRequirements    int                  `json:"total_requirements"`
	TaskCountsByStatus   map[t.TaskStatus]int `json:"task_counts_by_status"`
	AverageCompletion    float64              `json:"average_completion"`
	AverageHealth        float64              `json:"average_health"`
	OrphanedRequirements int                  `json:"orphaned_requirements"`
	OrphanedTasks        int                  `json:"orphaned_tasks"`
	GeneratedAt          time.Time            `json:"generated_at"`
}

func (a *App) Dashboard() DashboardSummary {
	sum := DashboardSummary{
		TaskCountsByStatus: make(map[t.TaskStatus]int, len(t.TaskStatuses)),
		GeneratedAt:        time.Now(),
	}
	for _, status := range t.TaskStatuses {
		sum.TaskCountsByStatus[status] = 0
	}

	var completion, health float64
	scored := 0
	for _, state := range a.store.List() {
		sum.TotalProjects++
		snap, ok := a.LatestSnapshot(state.ProjectID)
		if !ok {
			continue
		}
		scored++
		completion += snap.CompletionPercentage
		health += snap.HealthScore
		sum.TotalTasks += snap.TotalTasks
		sum.TotalRequirements += snap.TotalRequirements
		sum.OrphanedRequirements += len(snap.OrphanedRequirementIDs)
		sum.OrphanedTasks += len(snap.OrphanedTaskIDs)
		for status, n := range snap.TaskCountsByStatus {
			sum.TaskCountsByStatus[status] += n
		}
	}
	if scored > 0 {
		sum.AverageCompletion = completion / float64(scored)
		sum.AverageHealth = health / float64(scored)
	}
	return sum
}

// Search ---------------------------------------------------------------------------

type SearchResults struct {
	Query        string         `json:"query"`
	Projects     []t.Project    `json:"projects"`
	Tasks        []SearchHit    `json:"tasks"`
	Requirements []SearchReqHit `json:"requirements"`
}

type SearchHit struct {
	ProjectID string `json:"project_id"`
	Task      t.Task `json:"task"`
}

type SearchReqHit struct {
	ProjectID   string        `json:"project_id"`
	Requirement t.Requirement `json:"requirement"`
}

// Search matches projects by name and entities by text, case-insensitive
// substring over the stored sets.
func (a *App) Search(query string) SearchResults {
	q := strings.ToLower(strings.TrimSpace(query))
	out := SearchResults{
		Query:        query,
		Projects:     []t.Project{},
		Tasks:        []SearchHit{},
		Requirements: []SearchReqHit{},
	}
	if q == "" {
		return out
	}
	for _, state := range a.store.List() {
		p := state.Project
		if strings.Contains(strings.ToLower(p.Name), q) {
			listing := p
			listing.Tasks = nil
			listing.Requirements = nil
			out.Projects = append(out.Projects, listing)
		}
		for _, task := range p.Tasks {
			if strings.Contains(strings.ToLower(task.Description), q) {
				out.Tasks = append(out.Tasks, SearchHit{ProjectID: p.ID, Task: task})
			}
		}
		for _, req := range p.Requirements {
			if strings.Contains(strings.ToLower(req.Text), q) {
				out.Requirements = append(out.Requirements, SearchReqHit{ProjectID: p.ID, Requirement: req})
			}
		}
	}
	return out
}

// Watch hub ------------------------------------------------------------------------

// Subscribe registers a watcher that receives a dashboard summary after
// every completed rescan. The returned cancel func must be called when the
// watcher goes away; it is also bound to ctx.
func (a *App) Subscribe(ctx context.Context) (<-chan DashboardSummary, func()) {
	ch := make(chan DashboardSummary, 4)
	a.watchMu.Lock()
	a.watchers[ch] = struct{}{}
	a.watchMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			a.watchMu.Lock()
			delete(a.watchers, ch)
			a.watchMu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}

func (a *App) broadcast(sum DashboardSummary) {
	a.watchMu.RLock()
	defer a.watchMu.RUnlock()
	for ch := range a.watchers {
		select {
		case ch <- sum:
		default:
			// Slow watcher; drop rather than block the scan.
		}
	}
}
