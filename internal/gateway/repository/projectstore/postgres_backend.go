package projectstore

import (
	"encoding/json"
	"strings"
	"time"

	t "docpulse/internal/types"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS project_states (
  project_id TEXT PRIMARY KEY,
  data JSONB NOT NULL,
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS project_snapshots (
  id SERIAL PRIMARY KEY,
  project_id TEXT NOT NULL,
  data JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_project_snapshots_project_id ON project_snapshots (project_id);
`)
	})
	return s.schemaErr
}

func scanStateDB(row rowScanner) (State, bool) {
	var (
		state State
		raw   []byte
	)
	if err := row.Scan(&state.ProjectID, &raw, &state.UpdatedAt); err != nil {
		return State{}, false
	}
	if err := json.Unmarshal(raw, &state.Project); err != nil {
		return State{}, false
	}
	return normalizeState(state), true
}

func (s *Store) getDB(projectID string) (State, bool) {
	if err := s.ensureSchema(); err != nil {
		return State{}, false
	}
	id := strings.TrimSpace(projectID)
	if id == "" {
		return State{}, false
	}
	row := s.db.QueryRow(`SELECT project_id, data, updated_at
FROM project_states WHERE project_id = $1`, id)
	return scanStateDB(row)
}

func (s *Store) putDB(state State) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	n := normalizeState(state)
	if n.ProjectID == "" {
		return
	}
	raw, err := json.Marshal(n.Project)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(`
INSERT INTO project_states (project_id, data, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (project_id)
DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		n.ProjectID, raw)
}

func (s *Store) listDB() []State {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT project_id, data, updated_at
FROM project_states ORDER BY project_id`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []State
	for rows.Next() {
		if state, ok := scanStateDB(rows); ok {
			out = append(out, state)
		}
	}
	return out
}

func (s *Store) addSnapshotDB(rec SnapshotRecord) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	id := strings.TrimSpace(rec.ProjectID)
	if id == "" {
		return nil
	}
	raw, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return err
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.Exec(`
INSERT INTO project_snapshots (project_id, data, created_at)
VALUES ($1, $2, $3)`, id, raw, created)
	return err
}

func (s *Store) listSnapshotsDB(projectID string) ([]SnapshotRecord, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, project_id, data, created_at
FROM project_snapshots WHERE project_id = $1 ORDER BY id`, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SnapshotRecord
	for rows.Next() {
		var (
			rec SnapshotRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &raw, &rec.CreatedAt); err != nil {
			continue
		}
		var snap t.MetricsSnapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			continue
		}
		rec.Snapshot = snap
		out = append(out, rec)
	}
	return out, nil
}
