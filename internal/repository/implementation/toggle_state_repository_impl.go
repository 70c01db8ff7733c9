package implementation

import (
	"context"

	"glaze-matrix-be/internal/mapper"
	"glaze-matrix-be/internal/model"
	"glaze-matrix-be/internal/repository/contract"
	"glaze-matrix-be/internal/repository/specification"

	"gorm.io/gorm"
)

const toggleStateBatchSize = 500

type ToggleStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ToggleStateMapper
}

func NewToggleStateRepository(db *gorm.DB) contract.ToggleStateRepository {
	return &ToggleStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewToggleStateMapper(),
	}
}

// DeleteAll clears every stored cell. The state is always replaced wholesale.
func (r *ToggleStateRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ToggleState{}).Error
}

func (r *ToggleStateRepositoryImpl) CreateDisabled(ctx context.Context, cellKeys []string) error {
	if len(cellKeys) == 0 {
		return nil
	}
	models := r.mapper.DisabledModels(cellKeys)
	return r.db.WithContext(ctx).CreateInBatches(models, toggleStateBatchSize).Error
}

// FindDisabledKeys returns disabled keys in insertion order
func (r *ToggleStateRepositoryImpl) FindDisabledKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.ToggleState{}),
		specification.DisabledOnly{},
		specification.OrderBy{Field: "id"},
	)
	if err := query.Pluck("cell_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *ToggleStateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.ToggleState{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
