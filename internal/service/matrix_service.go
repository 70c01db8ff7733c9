package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"glaze-matrix-be/internal/dto"
	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/internal/repository/memory"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/events"
	"glaze-matrix-be/pkg/matrix"

	"github.com/google/uuid"
)

const (
	matrixLogModule = "MATRIX"
	reconcileSource = "CSV reimport"
)

var (
	ErrBlankCellKey    = errors.New("disabled cell keys must not be blank")
	ErrPreviewNotFound = errors.New("reconciliation preview not found or expired")
	ErrRunNotFound     = errors.New("reconciliation run not found")
)

type IMatrixService interface {
	GetCatalog(ctx context.Context) *dto.CatalogResponse
	SaveToggleStates(ctx context.Context, req *dto.SaveToggleStatesRequest) (*dto.SaveToggleStatesResponse, error)
	LoadToggleStates(ctx context.Context) (*dto.LoadToggleStatesResponse, error)
	ExportStoredMatrix(ctx context.Context, w io.Writer) error
	ExportMatrix(ctx context.Context, w io.Writer, cells []string) error
	Reconcile(ctx context.Context, req *dto.ReconcileRequest) (*dto.ReconcileResponse, error)
	ApplyPreview(ctx context.Context, previewId string) (*dto.ReconcileResponse, error)
	ListRuns(ctx context.Context, req *dto.ListRunsRequest) ([]*dto.ReconciliationRunResponse, error)
	GetRun(ctx context.Context, id uuid.UUID) (*dto.ReconciliationRunResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type matrixService struct {
	registry        *matrix.Registry
	store           *storage.Store
	previews        *memory.PreviewRepository
	publisher       IPublisherService
	logger          logger.ILogger
	defaultBoundary string
	now             func() time.Time
}

// NewMatrixService wires the matrix operations. publisher may be nil.
func NewMatrixService(
	registry *matrix.Registry,
	store *storage.Store,
	previews *memory.PreviewRepository,
	publisher IPublisherService,
	log logger.ILogger,
	defaultBoundary string,
) IMatrixService {
	return &matrixService{
		registry:        registry,
		store:           store,
		previews:        previews,
		publisher:       publisher,
		logger:          log,
		defaultBoundary: defaultBoundary,
		now:             time.Now,
	}
}

func (s *matrixService) GetCatalog(ctx context.Context) *dto.CatalogResponse {
	return &dto.CatalogResponse{
		Glazes:            s.registry.Glazes,
		Underglazes:       s.registry.Underglazes,
		CrossCombinations: s.registry.CrossCombinations(),
		TotalPairings:     s.registry.TotalPairings(),
	}
}

func (s *matrixService) SaveToggleStates(ctx context.Context, req *dto.SaveToggleStatesRequest) (*dto.SaveToggleStatesResponse, error) {
	for _, key := range req.DisabledCells {
		if strings.TrimSpace(key) == "" {
			return nil, ErrBlankCellKey
		}
	}

	count, err := s.store.Save(ctx, req.DisabledCells, storage.SaveMeta{})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeToggleStatesSaved, map[string]interface{}{
		"count":   count,
		"storage": string(s.store.Source()),
	})

	return &dto.SaveToggleStatesResponse{
		Success: true,
		Count:   count,
	}, nil
}

func (s *matrixService) LoadToggleStates(ctx context.Context) (*dto.LoadToggleStatesResponse, error) {
	cells, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.LoadToggleStatesResponse{
		Success:       true,
		DisabledCells: cells,
		Source:        string(s.store.Source()),
	}, nil
}

func (s *matrixService) ExportStoredMatrix(ctx context.Context, w io.Writer) error {
	cells, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	return s.ExportMatrix(ctx, w, cells)
}

func (s *matrixService) ExportMatrix(ctx context.Context, w io.Writer, cells []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return matrix.Export(w, s.registry, matrix.NewDisabledSet(cells...))
}

func (s *matrixService) Reconcile(ctx context.Context, req *dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	boundary := strings.TrimSpace(req.BoundaryColumn)
	if boundary == "" {
		boundary = s.defaultBoundary
	}

	source := reconcileSource
	if name := strings.TrimSpace(req.FileName); name != "" {
		source = reconcileSource + " - " + name
	}

	result, err := matrix.ReconcileCSV(s.registry, strings.NewReader(req.Csv), boundary)
	if err != nil {
		s.logger.Warn(matrixLogModule, "Rejected reconciliation input", map[string]interface{}{
			"source": source,
			"error":  err.Error(),
		})
		return nil, err
	}

	preview := &entity.ReconcilePreview{
		Id:             uuid.New(),
		Source:         source,
		BoundaryColumn: boundary,
		Result:         result,
		CreatedAt:      s.now(),
	}

	if req.Apply {
		return s.apply(ctx, preview)
	}

	preview.ExpiresAt = preview.CreatedAt.Add(s.previews.TTL())
	s.previews.Save(preview)

	s.logger.Info(matrixLogModule, "Reconciliation preview created", map[string]interface{}{
		"preview_id": preview.Id.String(),
		"disabled":   result.DisabledCount,
		"not_found":  len(result.NotFoundNames),
	})

	res := toReconcileResponse(preview, false)
	res.PreviewId = &preview.Id
	res.ExpiresAt = &preview.ExpiresAt
	return res, nil
}

func (s *matrixService) ApplyPreview(ctx context.Context, previewId string) (*dto.ReconcileResponse, error) {
	preview, ok := s.previews.Get(previewId)
	if !ok {
		return nil, ErrPreviewNotFound
	}

	res, err := s.apply(ctx, preview)
	if err != nil {
		return nil, err
	}
	s.previews.Delete(previewId)
	return res, nil
}

func (s *matrixService) apply(ctx context.Context, preview *entity.ReconcilePreview) (*dto.ReconcileResponse, error) {
	result := preview.Result
	run := &entity.ReconciliationRun{
		Id:                uuid.New(),
		Source:            preview.Source,
		BoundaryColumn:    preview.BoundaryColumn,
		TotalCombinations: result.TotalCombinations,
		EnabledCount:      result.EnabledCount,
		DisabledCount:     result.DisabledCount,
		NotFoundNames:     result.SortedNotFound(),
		Warnings:          result.Warnings,
		CreatedAt:         s.now(),
	}

	if _, err := s.store.Save(ctx, result.DisabledCells, storage.SaveMeta{Run: run}); err != nil {
		return nil, err
	}

	s.logger.Info(matrixLogModule, "Reconciliation applied", map[string]interface{}{
		"source":    preview.Source,
		"total":     result.TotalCombinations,
		"enabled":   result.EnabledCount,
		"disabled":  result.DisabledCount,
		"not_found": len(result.NotFoundNames),
		"storage":   string(s.store.Source()),
	})

	s.publish(ctx, events.TypeMatrixReconciled, map[string]interface{}{
		"source":    preview.Source,
		"total":     result.TotalCombinations,
		"enabled":   result.EnabledCount,
		"disabled":  result.DisabledCount,
		"not_found": result.SortedNotFound(),
		"storage":   string(s.store.Source()),
	})

	res := toReconcileResponse(preview, true)
	res.StorageSource = string(s.store.Source())
	if s.store.Source() == storage.SourceDatabase {
		res.RunId = &run.Id
	}
	return res, nil
}

func (s *matrixService) ListRuns(ctx context.Context, req *dto.ListRunsRequest) ([]*dto.ReconciliationRunResponse, error) {
	runs, err := s.store.ListRuns(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ReconciliationRunResponse, 0, len(runs))
	for _, run := range runs {
		res = append(res, toRunResponse(run))
	}
	return res, nil
}

func (s *matrixService) GetRun(ctx context.Context, id uuid.UUID) (*dto.ReconciliationRunResponse, error) {
	run, err := s.store.FindRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return toRunResponse(run), nil
}

func toRunResponse(run *entity.ReconciliationRun) *dto.ReconciliationRunResponse {
	return &dto.ReconciliationRunResponse{
		Id:                run.Id,
		Source:            run.Source,
		BoundaryColumn:    run.BoundaryColumn,
		TotalCombinations: run.TotalCombinations,
		EnabledCount:      run.EnabledCount,
		DisabledCount:     run.DisabledCount,
		NotFoundNames:     run.NotFoundNames,
		Warnings:          run.Warnings,
		CreatedAt:         run.CreatedAt,
	}
}

func (s *matrixService) Health(ctx context.Context) *dto.HealthResponse {
	res := &dto.HealthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC(),
		Storage:   string(s.store.Source()),
		Demoted:   s.store.DemotionReason() != nil,
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn(matrixLogModule, "Health check could not count toggle states", map[string]interface{}{
			"error": err.Error(),
		})
		return res
	}
	res.DisabledCount = &count
	return res
}

// publish is best effort; the state change has already been committed
func (s *matrixService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(matrixLogModule, "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toReconcileResponse(preview *entity.ReconcilePreview, applied bool) *dto.ReconcileResponse {
	result := preview.Result
	return &dto.ReconcileResponse{
		Applied:              applied,
		Source:               preview.Source,
		DisabledCells:        result.DisabledCells,
		NotFoundNames:        result.SortedNotFound(),
		UncoveredGlazes:      result.UncoveredGlazes,
		UncoveredUnderglazes: result.UncoveredUnderglazes,
		Warnings:             result.Warnings,
		TotalCombinations:    result.TotalCombinations,
		EnabledCount:         result.EnabledCount,
		DisabledCount:        result.DisabledCount,
	}
}
