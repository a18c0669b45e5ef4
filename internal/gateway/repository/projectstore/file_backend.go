package projectstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type fileDocument struct {
	Projects  []State          `json:"projects"`
	Snapshots []SnapshotRecord `json:"snapshots"`
}

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var doc fileDocument
		if err := json.Unmarshal(b, &doc); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range doc.Projects {
			row = normalizeState(row)
			if row.ProjectID == "" {
				continue
			}
			s.byID[row.ProjectID] = row
		}
		for _, rec := range doc.Snapshots {
			id := strings.TrimSpace(rec.ProjectID)
			if id == "" {
				continue
			}
			s.snapshots[id] = append(s.snapshots[id], rec)
			if rec.ID >= s.nextSnap {
				s.nextSnap = rec.ID + 1
			}
		}
	})
}

func (s *Store) saveFile() {
	s.ensureLoadedFile()
	s.mu.RLock()
	doc := fileDocument{
		Projects:  make([]State, 0, len(s.byID)),
		Snapshots: []SnapshotRecord{},
	}
	for _, state := range s.byID {
		doc.Projects = append(doc.Projects, normalizeState(state))
	}
	for _, recs := range s.snapshots {
		doc.Snapshots = append(doc.Snapshots, recs...)
	}
	s.mu.RUnlock()

	sort.Slice(doc.Projects, func(i, j int) bool { return doc.Projects[i].ProjectID < doc.Projects[j].ProjectID })
	sort.Slice(doc.Snapshots, func(i, j int) bool { return doc.Snapshots[i].ID < doc.Snapshots[j].ID })

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) getFile(projectID string) (State, bool) {
	s.ensureLoadedFile()
	id := strings.TrimSpace(projectID)
	if id == "" {
		return State{}, false
	}
	s.mu.RLock()
	state, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return State{}, false
	}
	return state, true
}

func (s *Store) putFile(state State) {
	s.ensureLoadedFile()
	normalized := normalizeState(state)
	if normalized.ProjectID == "" {
		return
	}
	if normalized.UpdatedAt.IsZero() {
		normalized.UpdatedAt = time.Now()
	}
	s.mu.Lock()
	s.byID[normalized.ProjectID] = normalized
	s.mu.Unlock()
}

func (s *Store) listFile() []State {
	s.ensureLoadedFile()
	s.mu.RLock()
	out := make([]State, 0, len(s.byID))
	for _, state := range s.byID {
		out = append(out, state)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}

func (s *Store) addSnapshotFile(rec SnapshotRecord) {
	s.ensureLoadedFile()
	id := strings.TrimSpace(rec.ProjectID)
	if id == "" {
		return
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.mu.Lock()
	rec.ID = s.nextSnap
	s.nextSnap++
	s.snapshots[id] = append(s.snapshots[id], rec)
	s.mu.Unlock()
}

func (s *Store) listSnapshotsFile(projectID string) []SnapshotRecord {
	s.ensureLoadedFile()
	id := strings.TrimSpace(projectID)
	s.mu.RLock()
	recs := s.snapshots[id]
	out := make([]SnapshotRecord, len(recs))
	copy(out, recs)
	s.mu.RUnlock()
	return out
}
