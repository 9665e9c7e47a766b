// internal/services/review_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/rating"
	"github.com/javajoker/bookreview/internal/store"
)

type ReviewService struct {
	store       *store.Store
	bookService *BookService
	now         func() time.Time
}

func NewReviewService(st *store.Store, bookService *BookService) *ReviewService {
	return &ReviewService{
		store:       st,
		bookService: bookService,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListAll returns every review with its book, newest first.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.store.Reviews.FindAll(ctx, store.WithBook(), store.Newest()...)
}

// Recent returns the n most recent reviews with their books.
func (s *ReviewService) Recent(ctx context.Context, n int) ([]models.Review, error) {
	if n <= 0 {
		return []models.Review{}, nil
	}
	return s.store.Reviews.FindAll(ctx, store.And(store.WithBook(), store.Limit(n)), store.Newest()...)
}

// GetByID returns nil when the review does not exist.
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return s.store.Reviews.FindByID(ctx, id)
}

// Save validates the review and writes it. The owning book comes from
// BookID, or from the attached Book when BookID is unset. On update the
// stored owning book and creation time win over whatever the caller sent.
func (s *ReviewService) Save(ctx context.Context, review *models.Review) (*models.Review, error) {
	if violations := ValidateReview(review); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	if review.BookID == uuid.Nil && review.Book != nil {
		review.BookID = review.Book.ID
	}

	isNew := review.IsNew()
	if !isNew {
		existing, err := s.store.Reviews.FindByID(ctx, review.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("review %s: %w", review.ID, ErrNotFound)
		}
		review.BookID = existing.BookID
		review.CreatedAt = existing.CreatedAt
	}

	if review.BookID == uuid.Nil {
		return nil, ErrInvalidReference
	}
	found, err := s.bookService.ExistsByID(ctx, review.BookID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("book %s: %w", review.BookID, ErrInvalidReference)
	}

	if isNew && review.CreatedAt.IsZero() {
		review.CreatedAt = s.now()
	}

	saved, err := s.store.Reviews.Save(ctx, review)
	if err != nil {
		return nil, err
	}

	entry := logrus.WithFields(logrus.Fields{
		"review_id": saved.ID,
		"book_id":   saved.BookID,
	})
	if isNew {
		entry.Info("Review created")
	} else {
		entry.Info("Review updated")
	}
	return saved, nil
}

// Delete removes one review. Its book is left as it was.
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Reviews.DeleteByID(ctx, id); err != nil {
		return err
	}
	logrus.WithField("review_id", id).Info("Review deleted")
	return nil
}

// ByBook returns the reviews of one book, newest first.
func (s *ReviewService) ByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	return s.store.Reviews.FindByBook(ctx, bookID)
}

func (s *ReviewService) ByReviewerName(ctx context.Context, name string) ([]models.Review, error) {
	return s.store.Reviews.FindAll(ctx,
		store.And(store.Contains("reviewer_name", name), store.WithBook()), store.Newest()...)
}

func (s *ReviewService) ByRating(ctx context.Context, stars int) ([]models.Review, error) {
	return s.store.Reviews.FindAll(ctx,
		store.And(store.Equals("rating", stars), store.WithBook()), store.Newest()...)
}

func (s *ReviewService) ByMinRating(ctx context.Context, minRating int) ([]models.Review, error) {
	return s.store.Reviews.FindAll(ctx,
		store.And(store.GreaterOrEqual("rating", minRating), store.WithBook()), store.Newest()...)
}

func (s *ReviewService) CountByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	return s.store.Reviews.CountByBook(ctx, bookID)
}

// AverageRatingByBook is the exact mean rating, 0 for a book without reviews.
func (s *ReviewService) AverageRatingByBook(ctx context.Context, bookID uuid.UUID) (float64, error) {
	summary, err := s.RatingSummaryByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return summary.Average(), nil
}

func (s *ReviewService) RatingSummaryByBook(ctx context.Context, bookID uuid.UUID) (rating.Summary, error) {
	return s.store.Reviews.RatingSummary(ctx, bookID)
}

// RatingSummaries returns a summary for every given book, zero for books
// without reviews.
func (s *ReviewService) RatingSummaries(ctx context.Context, books []models.Book) (map[uuid.UUID]rating.Summary, error) {
	ids := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	summaries, err := s.store.Reviews.RatingSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := summaries[id]; !ok {
			summaries[id] = rating.Summary{}
		}
	}
	return summaries, nil
}

func (s *ReviewService) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.store.Reviews.ExistsByID(ctx, id)
}

func (s *ReviewService) TotalCount(ctx context.Context) (int64, error) {
	return s.store.Reviews.Count(ctx)
}
