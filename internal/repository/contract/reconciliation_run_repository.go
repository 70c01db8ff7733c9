package contract

import (
	"context"

	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/repository/specification"
)

type ReconciliationRunRepository interface {
	Create(ctx context.Context, run *entity.ReconciliationRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReconciliationRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReconciliationRun, error)
}
