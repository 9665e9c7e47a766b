// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"

	"github.com/javajoker/bookreview/internal/models"
)

type DashboardService struct {
	bookService   *BookService
	reviewService *ReviewService
}

type DashboardStats struct {
	TotalBooks    int64           `json:"total_books"`
	TotalReviews  int64           `json:"total_reviews"`
	RecentBooks   []models.Book   `json:"recent_books"`
	RecentReviews []models.Review `json:"recent_reviews"`
}

func NewDashboardService(bookService *BookService, reviewService *ReviewService) *DashboardService {
	return &DashboardService{
		bookService:   bookService,
		reviewService: reviewService,
	}
}

// Stats reports the catalog totals and the most recent books and reviews.
func (s *DashboardService) Stats(ctx context.Context, recent int) (*DashboardStats, error) {
	totalBooks, err := s.bookService.TotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	totalReviews, err := s.reviewService.TotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	books, err := s.bookService.Recent(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent books: %w", err)
	}

	reviews, err := s.reviewService.Recent(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}

	return &DashboardStats{
		TotalBooks:    totalBooks,
		TotalReviews:  totalReviews,
		RecentBooks:   books,
		RecentReviews: reviews,
	}, nil
}
