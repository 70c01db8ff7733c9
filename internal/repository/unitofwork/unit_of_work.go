package unitofwork

import (
	"context"

	"glaze-matrix-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ToggleStateRepository() contract.ToggleStateRepository
	ReconciliationRunRepository() contract.ReconciliationRunRepository
}
