package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/bookreview/internal/database"
	"github.com/javajoker/bookreview/internal/models"
)

type BookStore struct {
	db *gorm.DB
}

// Save inserts a book without an identity and fully replaces the stored
// row otherwise. Reviews attached to the book are never written.
func (s *BookStore) Save(ctx context.Context, book *models.Book) (*models.Book, error) {
	db := s.db.WithContext(ctx)

	if book.IsNew() {
		if err := db.Omit(clause.Associations).Create(book).Error; err != nil {
			book.ID = uuid.Nil
			return nil, fmt.Errorf("failed to create book: %w", err)
		}
		return book, nil
	}

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		if err := requireExists[models.Book](tx, book.ID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(book).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update book %s: %w", book.ID, err)
	}
	return book, nil
}

func (s *BookStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := findByID[models.Book](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to find book %s: %w", id, err)
	}
	return book, nil
}

// FindByIDWithReviews loads the book with its reviews, newest first.
func (s *BookStore) FindByIDWithReviews(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	db := s.db.WithContext(ctx).Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return applyOrders(db, Newest())
	})
	book, err := findByID[models.Book](db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find book %s: %w", id, err)
	}
	return book, nil
}

// DeleteByID removes every review of the book and then the book itself,
// in one transaction. A missing id is a no-op.
func (s *BookStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Book{}).Error; err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, err)
	}
	return nil
}

func (s *BookStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := exists[models.Book](s.db.WithContext(ctx), id)
	if err != nil {
		return false, fmt.Errorf("failed to check book %s: %w", id, err)
	}
	return found, nil
}

func (s *BookStore) Count(ctx context.Context) (int64, error) {
	n, err := count[models.Book](s.db.WithContext(ctx), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func (s *BookStore) FindAll(ctx context.Context, filter Filter, orders ...Order) ([]models.Book, error) {
	books, err := findAll[models.Book](s.db.WithContext(ctx), filter, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}
