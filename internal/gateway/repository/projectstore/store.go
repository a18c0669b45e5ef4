// Package projectstore persists project records and their snapshot history.
// The default backend is a JSON file; setting PROJECT_STORE_PG_DSN switches
// to Postgres via the pgx stdlib driver. Snapshot-history reads go through
// an LRU cache that is invalidated on append.
package projectstore

import (
	"database/sql"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce  sync.Once
	mu        sync.RWMutex
	byID      map[string]State
	snapshots map[string][]SnapshotRecord
	nextSnap  int

	schemaOnce sync.Once
	schemaErr  error

	snapCache *lru.Cache[string, []SnapshotRecord]
}

func New(path string) *Store {
	return &Store{
		path:      path,
		byID:      make(map[string]State),
		snapshots: make(map[string][]SnapshotRecord),
		nextSnap:  1,
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, []SnapshotRecord](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:        db,
		snapCache: cache,
	}, nil
}

// NewFromEnv picks Postgres when PROJECT_STORE_PG_DSN is set and reachable,
// falling back to the JSON file store at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("PROJECT_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) EnsureLoaded() {
	if s == nil {
		return
	}
	if s.db != nil {
		_ = s.ensureSchema()
		return
	}
	s.ensureLoadedFile()
}

func (s *Store) Save() {
	if s == nil || s.db != nil {
		return
	}
	s.saveFile()
}

func (s *Store) Get(projectID string) (State, bool) {
	if s == nil {
		return State{}, false
	}
	if s.db != nil {
		return s.getDB(projectID)
	}
	return s.getFile(projectID)
}

func (s *Store) Put(state State) {
	if s == nil {
		return
	}
	if s.db != nil {
		s.putDB(state)
		return
	}
	s.putFile(state)
}

func (s *Store) List() []State {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.listDB()
	}
	return s.listFile()
}

func (s *Store) AddSnapshot(rec SnapshotRecord) error {
	if s == nil {
		return nil
	}
	if s.db != nil {
		err := s.addSnapshotDB(rec)
		if err == nil && s.snapCache != nil {
			s.snapCache.Remove(rec.ProjectID)
		}
		return err
	}
	s.addSnapshotFile(rec)
	return nil
}

// ListSnapshots returns history oldest-first.
func (s *Store) ListSnapshots(projectID string) ([]SnapshotRecord, error) {
	if s == nil {
		return nil, nil
	}
	if s.db != nil {
		if s.snapCache != nil {
			if cached, ok := s.snapCache.Get(projectID); ok {
				return cached, nil
			}
		}
		recs, err := s.listSnapshotsDB(projectID)
		if err != nil {
			return nil, err
		}
		if s.snapCache != nil {
			s.snapCache.Add(projectID, recs)
		}
		return recs, nil
	}
	return s.listSnapshotsFile(projectID), nil
}
