// internal/models/review.go
package models

import "github.com/google/uuid"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseModel
	ReviewerName string    `json:"reviewer_name" gorm:"size:100;not null;index" validate:"notblank,max=100"`
	Rating       int       `json:"rating" gorm:"not null;index;check:rating >= 1 AND rating <= 5" validate:"gte=1,lte=5"`
	Comment      string    `json:"comment" gorm:"type:text;not null" validate:"notblank,max=2000"`
	BookID       uuid.UUID `json:"book_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" validate:"-"`
}
