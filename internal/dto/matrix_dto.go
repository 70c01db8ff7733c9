package dto

import (
	"time"

	"glaze-matrix-be/pkg/matrix"

	"github.com/google/uuid"
)

type SaveToggleStatesRequest struct {
	DisabledCells []string `json:"disabledCells" validate:"required,dive,required"`
}

// SaveToggleStatesResponse keeps the flat shape existing matrix clients expect
type SaveToggleStatesResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type LoadToggleStatesResponse struct {
	Success       bool     `json:"success"`
	DisabledCells []string `json:"disabledCells"`
	Source        string   `json:"source"`
}

type ExportMatrixRequest struct {
	DisabledCells []string `json:"disabledCells" validate:"required,dive,required"`
}

type ReconcileRequest struct {
	Csv            string `json:"csv" form:"csv"`
	BoundaryColumn string `json:"boundaryColumn" form:"boundaryColumn"`
	Apply          bool   `json:"apply" form:"apply"`
	FileName       string `json:"fileName" form:"fileName"`
}

type ReconcileResponse struct {
	PreviewId            *uuid.UUID       `json:"previewId,omitempty"`
	ExpiresAt            *time.Time       `json:"expiresAt,omitempty"`
	RunId                *uuid.UUID       `json:"runId,omitempty"`
	Applied              bool             `json:"applied"`
	Source               string           `json:"source"`
	StorageSource        string           `json:"storage,omitempty"`
	DisabledCells        []string         `json:"disabledCells"`
	NotFoundNames        []string         `json:"notFoundNames"`
	UncoveredGlazes      []string         `json:"uncoveredGlazes"`
	UncoveredUnderglazes []string         `json:"uncoveredUnderglazes"`
	Warnings             []matrix.Warning `json:"warnings"`
	TotalCombinations    int              `json:"totalCombinations"`
	EnabledCount         int              `json:"enabledCount"`
	DisabledCount        int              `json:"disabledCount"`
}

type ReconciliationRunResponse struct {
	Id                uuid.UUID        `json:"id"`
	Source            string           `json:"source"`
	BoundaryColumn    string           `json:"boundaryColumn"`
	TotalCombinations int              `json:"totalCombinations"`
	EnabledCount      int              `json:"enabledCount"`
	DisabledCount     int              `json:"disabledCount"`
	NotFoundNames     []string         `json:"notFoundNames"`
	Warnings          []matrix.Warning `json:"warnings"`
	CreatedAt         time.Time        `json:"createdAt"`
}

type ListRunsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type CatalogResponse struct {
	Glazes            []matrix.CatalogEntity `json:"glazes"`
	Underglazes       []matrix.CatalogEntity `json:"underglazes"`
	CrossCombinations int                    `json:"crossCombinations"`
	TotalPairings     int                    `json:"totalPairings"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Storage   string    `json:"storage"`
	Demoted   bool      `json:"storageDemoted"`

	// DisabledCount is omitted when the store could not be read
	DisabledCount *int `json:"disabledCount,omitempty"`
}
