// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the identity on insert so that every driver,
// sqlite included, gets the same UUID keys.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsNew reports whether the record has not been persisted yet.
func (m *BaseModel) IsNew() bool {
	return m.ID == uuid.Nil
}
