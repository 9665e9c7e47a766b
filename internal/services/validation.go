package services

import (
	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/utils"
)

// ValidateBook returns one entry per violated book constraint.
func ValidateBook(book *models.Book) []utils.ValidationError {
	return utils.Violations(book)
}

// ValidateReview returns one entry per violated review constraint.
func ValidateReview(review *models.Review) []utils.ValidationError {
	return utils.Violations(review)
}
