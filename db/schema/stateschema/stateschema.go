// Package stateschema holds the schema for persisted engine state
package stateschema

import "time"

// Entry is one key of the key-value state store
type Entry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string {
	return "state_entries"
}
