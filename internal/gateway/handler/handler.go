// Package handler exposes the JSON HTTP API over the runtime App.
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"

	"docpulse/internal/gateway/config"
	"docpulse/internal/gateway/repository/projectstore"
	"docpulse/internal/gateway/runtime"
)

// Service implements every route. It holds the runtime App as its single
// dependency.
type Service struct {
	app *runtime.App
}

func NewService(app *runtime.App) *Service {
	return &Service{app: app}
}

// App returns the underlying runtime App (used by tests).
func (s *Service) App() *runtime.App { return s.app }

// DefaultApp creates a runtime App with the default file-backed store.
func DefaultApp(cfg *config.Config) *runtime.App {
	store := projectstore.NewFromEnv(filepath.Join("tmp", "docpulse_projects.json"))
	return runtime.New(cfg, store, nil)
}

// BuildMux registers every route on a new ServeMux.
func BuildMux(s *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc("GET /api/projects/{id}/metrics", s.handleGetMetrics)
	mux.HandleFunc("GET /api/projects/{id}/tasks", s.handleListTasks)
	mux.HandleFunc("GET /api/projects/{id}/requirements", s.handleListRequirements)
	mux.HandleFunc("GET /api/projects/{id}/reports", s.handleListReports)
	mux.HandleFunc("GET /api/projects/{id}/reports/{name}", s.handleGetReport)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/scan", s.handleScan)
	mux.HandleFunc("/api/watch", s.handleWatchWS)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
