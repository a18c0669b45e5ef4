package report

import (
	"context"
	"errors"
)

// Store persists rendered snapshot reports (JSON documents keyed by project
// and report name).
type Store interface {
	Put(ctx context.Context, projectID, name string, content []byte) error
	Get(ctx context.Context, projectID, name string) ([]byte, error)
	List(ctx context.Context, projectID string) ([]string, error)
}

var ErrNotFound = errors.New("report not found")
