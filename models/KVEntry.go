package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one persisted key of the key-value backend.
type KVEntry struct {
	Key       string         `gorm:"column:entry_key;primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (KVEntry) TableName() string {
	return "kv_entries"
}
