package specification

import "gorm.io/gorm"

// DisabledOnly keeps rows flagged as disabled
type DisabledOnly struct{}

func (s DisabledOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_disabled = ?", true)
}
