package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"docpulse/internal/gateway/repository/report"
	t "docpulse/internal/types"
)

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// projectListing is a project record without its entity sets, for list
// responses.
type projectListing struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Path              string    `json:"path"`
	TotalTasks        int       `json:"total_tasks"`
	TotalRequirements int       `json:"total_requirements"`
	LastScanned       time.Time `json:"last_scanned"`
}

func (s *Service) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := parsePagination(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	srt, err := parseSorting(q, []string{"name", "path", "last_scanned"})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	nameFilter := strings.ToLower(strings.TrimSpace(q.Get("name")))

	var listings []projectListing
	for _, state := range s.app.Projects() {
		p := state.Project
		if nameFilter != "" && !strings.Contains(strings.ToLower(p.Name), nameFilter) {
			continue
		}
		listings = append(listings, projectListing{
			ID:                p.ID,
			Name:              p.Name,
			Path:              p.Path,
			TotalTasks:        len(p.Tasks),
			TotalRequirements: len(p.Requirements),
			LastScanned:       p.LastScanned,
		})
	}

	switch srt.Field {
	case "name":
		sortStable(listings, func(a, b projectListing) bool { return a.Name < b.Name }, srt.Desc)
	case "path":
		sortStable(listings, func(a, b projectListing) bool { return a.Path < b.Path }, srt.Desc)
	case "last_scanned":
		sortStable(listings, func(a, b projectListing) bool { return a.LastScanned.Before(b.LastScanned) }, srt.Desc)
	}

	total := len(listings)
	lo, hi := page.slice(total)
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": listings[lo:hi],
		"total":    total,
		"page":     page.Page,
		"per_page": page.PerPage,
	})
}

func (s *Service) handleGetProject(w http.ResponseWriter, r *http.Request) {
	state, ok := s.app.Project(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, state.Project)
}

func (s *Service) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.app.Project(id); !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	snap, ok := s.app.LatestSnapshot(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no metrics computed yet")
		return
	}
	if strings.EqualFold(r.URL.Query().Get("history"), "true") {
		writeJSON(w, http.StatusOK, map[string]any{
			"latest":  snap,
			"history": s.app.SnapshotHistory(id),
		})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleListTasks(w http.ResponseWriter, r *http.Request) {
	state, ok := s.app.Project(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	q := r.URL.Query()
	page, err := parsePagination(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, err := parseEnumFilter(q, "status", []string{"todo", "in_progress", "done", "blocked"})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	priority, err := parseEnumFilter(q, "priority", []string{"critical", "high", "medium", "low", "unknown"})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stage := strings.TrimSpace(q.Get("stage"))

	tasks := make([]t.Task, 0, len(state.Project.Tasks))
	for _, task := range state.Project.Tasks {
		if status != "" && string(task.Status) != status {
			continue
		}
		if priority != "" && string(task.Priority) != priority {
			continue
		}
		if stage != "" && !strings.EqualFold(task.Stage, stage) {
			continue
		}
		tasks = append(tasks, task)
	}

	total := len(tasks)
	lo, hi := page.slice(total)
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":    tasks[lo:hi],
		"total":    total,
		"page":     page.Page,
		"per_page": page.PerPage,
	})
}

func (s *Service) handleListRequirements(w http.ResponseWriter, r *http.Request) {
	state, ok := s.app.Project(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	q := r.URL.Query()
	page, err := parsePagination(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	priority, err := parseEnumFilter(q, "priority", []string{"must", "should", "could", "wont"})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := strings.TrimSpace(q.Get("category"))

	reqs := make([]t.Requirement, 0, len(state.Project.Requirements))
	for _, req := range state.Project.Requirements {
		if priority != "" && string(req.Priority) != priority {
			continue
		}
		if category != "" && !strings.EqualFold(req.Category, category) {
			continue
		}
		reqs = append(reqs, req)
	}

	total := len(reqs)
	lo, hi := page.slice(total)
	writeJSON(w, http.StatusOK, map[string]any{
		"requirements": reqs[lo:hi],
		"total":        total,
		"page":         page.Page,
		"per_page":     page.PerPage,
	})
}

func (s *Service) handleListReports(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.app.Project(id); !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	names, err := s.app.Reports().List(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": names})
}

func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	body, err := s.app.Reports().Get(r.Context(), r.PathValue("id"), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	writeJSON(w, http.StatusOK, s.app.Search(query))
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Dashboard())
}

func (s *Service) handleScan(w http.ResponseWriter, r *http.Request) {
	summary, err := s.app.Rescan(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
