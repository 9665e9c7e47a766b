// Package rating computes the derived review aggregates of a book.
//
// A Summary can be built eagerly from reviews already in memory
// (FromReviews) or read from the store with a single COUNT/SUM query.
// Both paths carry the same integer count and total, so the averages
// they produce are identical.
package rating

import "github.com/javajoker/bookreview/internal/models"

// Summary holds the review count and the sum of ratings for one book.
type Summary struct {
	Count int64 `json:"review_count" gorm:"column:review_count"`
	Total int64 `json:"rating_total" gorm:"column:rating_total"`
}

// Average returns Total/Count, or 0 when there are no reviews.
func (s Summary) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Count)
}

// Add folds one rating into the summary.
func (s Summary) Add(r int) Summary {
	s.Count++
	s.Total += int64(r)
	return s
}

func FromReviews(reviews []models.Review) Summary {
	var s Summary
	for _, r := range reviews {
		s = s.Add(r.Rating)
	}
	return s
}
