// FILE: internal/model/toggle_state_model.go
// GORM model for the toggle_states table
package model

import "time"

// ToggleState is one persisted matrix cell. Only disabled cells are stored; a missing
// row means the pairing is enabled.
type ToggleState struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	CellKey    string    `gorm:"type:varchar(255);uniqueIndex:idx_toggle_states_cell_key;not null"`
	IsDisabled bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (ToggleState) TableName() string {
	return "toggle_states"
}
