package storage

import (
	"context"

	"glaze-matrix-be/internal/entity"

	"github.com/google/uuid"
)

// Source names the backend that served a request
type Source string

const (
	SourceDatabase Source = "database"
	SourceFile     Source = "file"
)

// SaveMeta carries optional reconciliation metadata stored alongside a save
type SaveMeta struct {
	Run *entity.ReconciliationRun
}

// Backend persists the disabled cell set. Save replaces the whole set.
type Backend interface {
	Source() Source
	Save(ctx context.Context, cells []string, meta SaveMeta) error
	Load(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*entity.ReconciliationRun, error)
	// FindRun returns nil when no run has the id.
	FindRun(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRun, error)
	Close() error
}
