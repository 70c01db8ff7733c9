package storage

import (
	"context"

	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/model"
	"glaze-matrix-be/internal/repository/specification"
	"glaze-matrix-be/internal/repository/unitofwork"
	"glaze-matrix-be/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DatabaseBackend struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
}

func NewDatabaseBackend(db *gorm.DB) *DatabaseBackend {
	return &DatabaseBackend{
		db:         db,
		uowFactory: unitofwork.NewRepositoryFactory(db),
	}
}

// Migrate creates or updates the tables the backend needs
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&model.ToggleState{}, &model.ReconciliationRun{})
}

func (b *DatabaseBackend) Source() Source {
	return SourceDatabase
}

func (b *DatabaseBackend) Save(ctx context.Context, cells []string, meta SaveMeta) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return newPersistenceError("begin transaction", err)
	}

	if err := uow.ToggleStateRepository().DeleteAll(ctx); err != nil {
		_ = uow.Rollback()
		return newPersistenceError("clear toggle states", err)
	}

	if err := uow.ToggleStateRepository().CreateDisabled(ctx, cells); err != nil {
		_ = uow.Rollback()
		return newPersistenceError("insert toggle states", err)
	}

	if meta.Run != nil {
		if err := uow.ReconciliationRunRepository().Create(ctx, meta.Run); err != nil {
			_ = uow.Rollback()
			return newPersistenceError("record reconciliation run", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return newPersistenceError("commit", err)
	}
	return nil
}

func (b *DatabaseBackend) Load(ctx context.Context) ([]string, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	keys, err := uow.ToggleStateRepository().FindDisabledKeys(ctx)
	if err != nil {
		return nil, newPersistenceError("load toggle states", err)
	}
	return keys, nil
}

func (b *DatabaseBackend) Count(ctx context.Context) (int, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ToggleStateRepository().Count(ctx, specification.DisabledOnly{})
	if err != nil {
		return 0, newPersistenceError("count toggle states", err)
	}
	return int(count), nil
}

func (b *DatabaseBackend) ListRuns(ctx context.Context, limit, offset int) ([]*entity.ReconciliationRun, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	runs, err := uow.ReconciliationRunRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, newPersistenceError("list reconciliation runs", err)
	}
	return runs, nil
}

func (b *DatabaseBackend) FindRun(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRun, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	run, err := uow.ReconciliationRunRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, newPersistenceError("find reconciliation run", err)
	}
	return run, nil
}

func (b *DatabaseBackend) Close() error {
	return database.Close(b.db)
}
