package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/store"
	"github.com/javajoker/bookreview/internal/testutil"
)

func newSeeder(t *testing.T) (*Seeder, *services.BookService, *services.ReviewService) {
	st := store.New(testutil.NewDB(t))
	books := services.NewBookService(st)
	reviews := services.NewReviewService(st, books)

	s := New(books, reviews)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s, books, reviews
}

func TestRunLoadsSampleCatalog(t *testing.T) {
	ctx := context.Background()
	s, books, reviews := newSeeder(t)

	result, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Books: 5, Reviews: 10}, result)

	all, err := books.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "The Catcher in the Rye", all[0].Title)
	assert.Equal(t, "The Great Gatsby", all[4].Title)
	assert.True(t, all[4].CreatedAt.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))

	orwell, err := books.Search(ctx, "1984")
	require.NoError(t, err)
	require.Len(t, orwell, 1)

	avg, err := reviews.AverageRatingByBook(ctx, orwell[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)

	gatsby := all[4]
	n, err := reviews.CountByBook(ctx, gatsby.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, books, reviews := newSeeder(t)

	_, err := s.Run(ctx)
	require.NoError(t, err)

	again, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, again)

	nb, err := books.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), nb)

	nr, err := reviews.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), nr)
}
