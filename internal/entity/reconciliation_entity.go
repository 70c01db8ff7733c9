// FILE: internal/entity/reconciliation_entity.go
// Domain entities for reconciliation runs and previews
package entity

import (
	"time"

	"glaze-matrix-be/pkg/matrix"

	"github.com/google/uuid"
)

// ReconciliationRun is the audit record of an applied reconciliation
type ReconciliationRun struct {
	Id                uuid.UUID
	Source            string // e.g. "CSV reimport - matrix.csv"
	BoundaryColumn    string
	TotalCombinations int
	EnabledCount      int
	DisabledCount     int
	NotFoundNames     []string
	Warnings          []matrix.Warning
	CreatedAt         time.Time
}

// ReconcilePreview is a computed reconciliation awaiting an explicit apply
type ReconcilePreview struct {
	Id             uuid.UUID
	Source         string
	BoundaryColumn string
	Result         *matrix.Result
	CreatedAt      time.Time
	ExpiresAt      time.Time
}
