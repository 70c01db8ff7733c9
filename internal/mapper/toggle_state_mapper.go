// FILE: internal/mapper/toggle_state_mapper.go
// Mapper for toggle state and reconciliation run entity <-> model conversion
package mapper

import (
	"encoding/json"

	"glaze-matrix-be/internal/entity"
	"glaze-matrix-be/internal/model"
	"glaze-matrix-be/pkg/matrix"

	"gorm.io/datatypes"
)

type ToggleStateMapper struct{}

func NewToggleStateMapper() *ToggleStateMapper {
	return &ToggleStateMapper{}
}

// DisabledModels builds one row per key, all flagged disabled
func (m *ToggleStateMapper) DisabledModels(cellKeys []string) []*model.ToggleState {
	models := make([]*model.ToggleState, 0, len(cellKeys))
	for _, key := range cellKeys {
		models = append(models, &model.ToggleState{
			CellKey:    key,
			IsDisabled: true,
		})
	}
	return models
}

type ReconciliationRunMapper struct{}

func NewReconciliationRunMapper() *ReconciliationRunMapper {
	return &ReconciliationRunMapper{}
}

func (m *ReconciliationRunMapper) ToModel(run *entity.ReconciliationRun) (*model.ReconciliationRun, error) {
	if run == nil {
		return nil, nil
	}
	notFound, err := json.Marshal(nonNilStrings(run.NotFoundNames))
	if err != nil {
		return nil, err
	}
	warnings := run.Warnings
	if warnings == nil {
		warnings = []matrix.Warning{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return nil, err
	}
	return &model.ReconciliationRun{
		Id:                run.Id,
		Source:            run.Source,
		BoundaryColumn:    run.BoundaryColumn,
		TotalCombinations: run.TotalCombinations,
		EnabledCount:      run.EnabledCount,
		DisabledCount:     run.DisabledCount,
		NotFoundNames:     datatypes.JSON(notFound),
		Warnings:          datatypes.JSON(warningsJSON),
		CreatedAt:         run.CreatedAt,
	}, nil
}

func (m *ReconciliationRunMapper) ToEntity(model *model.ReconciliationRun) *entity.ReconciliationRun {
	if model == nil {
		return nil
	}
	run := &entity.ReconciliationRun{
		Id:                model.Id,
		Source:            model.Source,
		BoundaryColumn:    model.BoundaryColumn,
		TotalCombinations: model.TotalCombinations,
		EnabledCount:      model.EnabledCount,
		DisabledCount:     model.DisabledCount,
		NotFoundNames:     []string{},
		Warnings:          []matrix.Warning{},
		CreatedAt:         model.CreatedAt,
	}
	// Malformed JSON columns degrade to empty lists rather than failing the listing
	if len(model.NotFoundNames) > 0 {
		_ = json.Unmarshal(model.NotFoundNames, &run.NotFoundNames)
	}
	if len(model.Warnings) > 0 {
		_ = json.Unmarshal(model.Warnings, &run.Warnings)
	}
	return run
}

func (m *ReconciliationRunMapper) ToEntities(models []*model.ReconciliationRun) []*entity.ReconciliationRun {
	entities := make([]*entity.ReconciliationRun, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
