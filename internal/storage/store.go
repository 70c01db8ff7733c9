package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/pkg/database"
	"glaze-matrix-be/pkg/matrix"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const logModule = "STORAGE"

type Config struct {
	DSN            string
	ConnectTimeout time.Duration
	FilePath       string
}

// Store is the toggle-state store used by the service layer. The backend is chosen
// once by Open and never changes for the lifetime of the process.
type Store struct {
	backend  Backend
	logger   logger.ILogger
	demotion error
}

func NewStore(backend Backend, log logger.ILogger) *Store {
	return &Store{backend: backend, logger: log}
}

// Open prefers the database and falls back to the file backend on any connection or
// migration failure. It never returns an error.
func Open(ctx context.Context, cfg Config, log logger.ILogger) *Store {
	fileBackend := NewFileBackend(cfg.FilePath)

	if strings.TrimSpace(cfg.DSN) == "" {
		log.Info(logModule, "No database configured, using file storage", map[string]interface{}{
			"path": cfg.FilePath,
		})
		return NewStore(fileBackend, log)
	}

	db, err := connect(ctx, cfg)
	if err != nil {
		demotion := fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		log.Warn(logModule, "Database unavailable, falling back to file storage", map[string]interface{}{
			"error": demotion.Error(),
			"path":  cfg.FilePath,
		})
		store := NewStore(fileBackend, log)
		store.demotion = demotion
		return store
	}

	log.Info(logModule, "Using database storage", nil)
	return NewStore(NewDatabaseBackend(db), log)
}

func connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	db, err := database.OpenWithTimeout(ctx, cfg.DSN, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	migrateCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		migrateCtx, cancel = context.WithTimeout(ctx, 2*cfg.ConnectTimeout)
		defer cancel()
	}
	if err := Migrate(migrateCtx, db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (s *Store) Source() Source {
	return s.backend.Source()
}

// DemotionReason is non-nil when a configured database was abandoned at startup
func (s *Store) DemotionReason() error {
	return s.demotion
}

// Save replaces the stored set and returns the number of distinct keys written
func (s *Store) Save(ctx context.Context, cells []string, meta SaveMeta) (int, error) {
	keys := matrix.NewDisabledSet(cells...).Keys()

	if err := s.backend.Save(ctx, keys, meta); err != nil {
		s.logger.Error(logModule, "Failed to save toggle states", map[string]interface{}{
			"source": s.backend.Source(),
			"count":  len(keys),
			"error":  err.Error(),
		})
		return 0, err
	}

	s.logger.Info(logModule, "Toggle states saved", map[string]interface{}{
		"source": s.backend.Source(),
		"count":  len(keys),
	})
	return len(keys), nil
}

func (s *Store) Load(ctx context.Context) ([]string, error) {
	keys, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error(logModule, "Failed to load toggle states", map[string]interface{}{
			"source": s.backend.Source(),
			"error":  err.Error(),
		})
		return nil, err
	}
	return keys, nil
}

// Count returns the number of stored disabled cells
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.backend.Count(ctx)
}

func (s *Store) ListRuns(ctx context.Context, limit, offset int) ([]*entity.ReconciliationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.backend.ListRuns(ctx, limit, offset)
}

func (s *Store) FindRun(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRun, error) {
	return s.backend.FindRun(ctx, id)
}

func (s *Store) Close() error {
	return s.backend.Close()
}
