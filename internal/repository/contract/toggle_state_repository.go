package contract

import (
	"context"

	"glaze-matrix-be/internal/repository/specification"
)

type ToggleStateRepository interface {
	DeleteAll(ctx context.Context) error
	CreateDisabled(ctx context.Context, cellKeys []string) error
	FindDisabledKeys(ctx context.Context) ([]string, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
