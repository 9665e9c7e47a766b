package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/bookreview/internal/database"
	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/rating"
)

type ReviewStore struct {
	db *gorm.DB
}

type bookRatingRow struct {
	BookID      uuid.UUID
	ReviewCount int64
	RatingTotal int64
}

// Save inserts or fully replaces a review. The owning book must exist
// when the write happens, otherwise ErrInvalidReference is returned.
func (s *ReviewStore) Save(ctx context.Context, review *models.Review) (*models.Review, error) {
	isNew := review.IsNew()

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if !isNew {
			if err := requireExists[models.Review](tx, review.ID); err != nil {
				return err
			}
		}

		found, err := exists[models.Book](tx, review.BookID)
		if err != nil {
			return err
		}
		if !found {
			return ErrInvalidReference
		}

		if isNew {
			return tx.Omit(clause.Associations).Create(review).Error
		}
		return tx.Omit(clause.Associations).Save(review).Error
	})
	if err != nil {
		if isNew {
			review.ID = uuid.Nil
		}
		if isForeignKeyViolation(err) {
			err = ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}

func (s *ReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	review, err := findByID[models.Review](s.db.WithContext(ctx).Preload("Book"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to find review %s: %w", id, err)
	}
	return review, nil
}

// DeleteByID removes one review. The owning book is left untouched.
func (s *ReviewStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

func (s *ReviewStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := exists[models.Review](s.db.WithContext(ctx), id)
	if err != nil {
		return false, fmt.Errorf("failed to check review %s: %w", id, err)
	}
	return found, nil
}

func (s *ReviewStore) Count(ctx context.Context) (int64, error) {
	n, err := count[models.Review](s.db.WithContext(ctx), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return n, nil
}

func (s *ReviewStore) CountByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	n, err := count[models.Review](s.db.WithContext(ctx), Equals("book_id", bookID))
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews of book %s: %w", bookID, err)
	}
	return n, nil
}

func (s *ReviewStore) FindAll(ctx context.Context, filter Filter, orders ...Order) ([]models.Review, error) {
	reviews, err := findAll[models.Review](s.db.WithContext(ctx), filter, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewStore) FindByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	return s.FindAll(ctx, Equals("book_id", bookID), Newest()...)
}

// RatingSummary reads the count and rating total of one book in a single query.
func (s *ReviewStore) RatingSummary(ctx context.Context, bookID uuid.UUID) (rating.Summary, error) {
	var summary rating.Summary
	err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS review_count, COALESCE(SUM(rating), 0) AS rating_total").
		Where("book_id = ?", bookID).
		Scan(&summary).Error
	if err != nil {
		return rating.Summary{}, fmt.Errorf("failed to summarize ratings of book %s: %w", bookID, err)
	}
	return summary, nil
}

// RatingSummaries groups the summaries of several books. Books without
// reviews are absent from the result.
func (s *ReviewStore) RatingSummaries(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]rating.Summary, error) {
	summaries := make(map[uuid.UUID]rating.Summary, len(bookIDs))
	if len(bookIDs) == 0 {
		return summaries, nil
	}

	var rows []bookRatingRow
	err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("book_id, COUNT(*) AS review_count, COALESCE(SUM(rating), 0) AS rating_total").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ratings: %w", err)
	}

	for _, row := range rows {
		summaries[row.BookID] = rating.Summary{Count: row.ReviewCount, Total: row.RatingTotal}
	}
	return summaries, nil
}
