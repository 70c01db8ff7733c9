// FILE: internal/model/reconciliation_run_model.go
// GORM model for the reconciliation_runs audit table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReconciliationRun records one applied CSV reconciliation
type ReconciliationRun struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Source            string         `gorm:"type:varchar(255);not null"`
	BoundaryColumn    string         `gorm:"type:varchar(255)"`
	TotalCombinations int            `gorm:"not null;default:0"`
	EnabledCount      int            `gorm:"not null;default:0"`
	DisabledCount     int            `gorm:"not null;default:0"`
	NotFoundNames     datatypes.JSON `gorm:"type:jsonb"`
	Warnings          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index"`
}

func (ReconciliationRun) TableName() string {
	return "reconciliation_runs"
}
