// internal/models/book.go
package models

type Book struct {
	BaseModel
	Title           string `json:"title" gorm:"size:200;not null" validate:"notblank,max=200"`
	Author          string `json:"author" gorm:"size:100;not null;index" validate:"notblank,max=100"`
	Genre           string `json:"genre" gorm:"size:50;index" validate:"max=50"`
	ISBN            string `json:"isbn" gorm:"column:isbn;size:20" validate:"max=20"`
	Description     string `json:"description" gorm:"type:text"`
	PublicationYear *int   `json:"publication_year" gorm:"index"`

	// Relationships
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" validate:"-"`
}
