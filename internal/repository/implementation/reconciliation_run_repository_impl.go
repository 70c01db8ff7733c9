package implementation

import (
	"context"
	"errors"

	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/mapper"
	"glaze-matrix-be/internal/model"
	"glaze-matrix-be/internal/repository/contract"
	"glaze-matrix-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReconciliationRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReconciliationRunMapper
}

func NewReconciliationRunRepository(db *gorm.DB) contract.ReconciliationRunRepository {
	return &ReconciliationRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewReconciliationRunMapper(),
	}
}

func (r *ReconciliationRunRepositoryImpl) Create(ctx context.Context, run *entity.ReconciliationRun) error {
	if run.Id == uuid.Nil {
		run.Id = uuid.New()
	}
	m, err := r.mapper.ToModel(run)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReconciliationRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReconciliationRun, error) {
	var m model.ReconciliationRun
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReconciliationRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReconciliationRun, error) {
	var models []*model.ReconciliationRun
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
