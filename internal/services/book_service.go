// internal/services/book_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/store"
)

type BookService struct {
	store *store.Store
	now   func() time.Time
}

func NewBookService(st *store.Store) *BookService {
	return &BookService{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListAll returns every book, most recently created first.
func (s *BookService) ListAll(ctx context.Context) ([]models.Book, error) {
	return s.store.Books.FindAll(ctx, store.All(), store.Newest()...)
}

// Recent returns the n most recently created books.
func (s *BookService) Recent(ctx context.Context, n int) ([]models.Book, error) {
	if n <= 0 {
		return []models.Book{}, nil
	}
	return s.store.Books.FindAll(ctx, store.Limit(n), store.Newest()...)
}

// GetByID returns nil when the book does not exist.
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	return s.store.Books.FindByID(ctx, id)
}

// GetWithReviews loads the book and its reviews, newest first.
func (s *BookService) GetWithReviews(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	return s.store.Books.FindByIDWithReviews(ctx, id)
}

// Save validates the book, then inserts it or replaces the stored one.
// An update keeps the creation time already on record.
func (s *BookService) Save(ctx context.Context, book *models.Book) (*models.Book, error) {
	if violations := ValidateBook(book); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	isNew := book.IsNew()
	if isNew {
		if book.CreatedAt.IsZero() {
			book.CreatedAt = s.now()
		}
	} else {
		existing, err := s.store.Books.FindByID(ctx, book.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("book %s: %w", book.ID, ErrNotFound)
		}
		book.CreatedAt = existing.CreatedAt
	}

	saved, err := s.store.Books.Save(ctx, book)
	if err != nil {
		return nil, err
	}

	entry := logrus.WithField("book_id", saved.ID)
	if isNew {
		entry.Info("Book created")
	} else {
		entry.Info("Book updated")
	}
	return saved, nil
}

// Delete removes the book together with all of its reviews.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Books.DeleteByID(ctx, id); err != nil {
		return err
	}
	logrus.WithField("book_id", id).Info("Book deleted")
	return nil
}

// Search matches the keyword against title or author, ignoring case.
// A blank keyword lists every book.
func (s *BookService) Search(ctx context.Context, keyword string) ([]models.Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListAll(ctx)
	}
	return s.store.Books.FindAll(ctx, store.AnyContains(keyword, "title", "author"), store.Newest()...)
}

func (s *BookService) ByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	return s.store.Books.FindAll(ctx, store.Contains("genre", genre), store.Asc("title"), store.Asc("id"))
}

func (s *BookService) ByAuthor(ctx context.Context, author string) ([]models.Book, error) {
	return s.store.Books.FindAll(ctx, store.Contains("author", author), store.Newest()...)
}

func (s *BookService) ByYear(ctx context.Context, year int) ([]models.Book, error) {
	return s.store.Books.FindAll(ctx, store.Equals("publication_year", year), store.Newest()...)
}

// ByYearRange is inclusive on both ends.
func (s *BookService) ByYearRange(ctx context.Context, start, end int) ([]models.Book, error) {
	if start > end {
		return []models.Book{}, nil
	}
	return s.store.Books.FindAll(ctx,
		store.Between("publication_year", start, end),
		store.Asc("publication_year"), store.Asc("title"))
}

func (s *BookService) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.store.Books.ExistsByID(ctx, id)
}

func (s *BookService) TotalCount(ctx context.Context) (int64, error) {
	return s.store.Books.Count(ctx)
}
