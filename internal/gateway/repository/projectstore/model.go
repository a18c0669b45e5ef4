package projectstore

import (
	"strings"
	"time"

	t "docpulse/internal/types"
)

// State is one persisted project record: the latest parse of its documents.
type State struct {
	ProjectID string    `json:"project_id"`
	Project   t.Project `json:"project"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotRecord is one appended metrics snapshot. History is append-only;
// the engine never mutates past records.
type SnapshotRecord struct {
	ID        int               `json:"id"`
	ProjectID string            `json:"project_id"`
	Snapshot  t.MetricsSnapshot `json:"snapshot"`
	CreatedAt time.Time         `json:"created_at"`
}

func normalizeState(state State) State {
	state.ProjectID = strings.TrimSpace(state.ProjectID)
	if state.ProjectID == "" {
		state.ProjectID = strings.TrimSpace(state.Project.ID)
	}
	if state.Project.Name == "" {
		state.Project.Name = "Project"
	}
	return state
}

type rowScanner interface {
	Scan(dest ...any) error
}
