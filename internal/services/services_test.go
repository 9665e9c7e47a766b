package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/rating"
	"github.com/javajoker/bookreview/internal/store"
	"github.com/javajoker/bookreview/internal/testutil"
)

type ServicesTestSuite struct {
	suite.Suite
	ctx       context.Context
	books     *BookService
	reviews   *ReviewService
	dashboard *DashboardService
	clock     time.Time
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	st := store.New(testutil.NewDB(suite.T()))

	suite.clock = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		suite.clock = suite.clock.Add(time.Minute)
		return suite.clock
	}

	suite.books = NewBookService(st)
	suite.books.now = tick
	suite.reviews = NewReviewService(st, suite.books)
	suite.reviews.now = tick
	suite.dashboard = NewDashboardService(suite.books, suite.reviews)
}

func (suite *ServicesTestSuite) createBook(title, author, genre string, year int) *models.Book {
	book, err := suite.books.Save(suite.ctx, &models.Book{
		Title:           title,
		Author:          author,
		Genre:           genre,
		PublicationYear: &year,
	})
	require.NoError(suite.T(), err)
	return book
}

func (suite *ServicesTestSuite) createReview(bookID uuid.UUID, name string, stars int) *models.Review {
	review, err := suite.reviews.Save(suite.ctx, &models.Review{
		ReviewerName: name,
		Rating:       stars,
		Comment:      "Worth reading.",
		BookID:       bookID,
	})
	require.NoError(suite.T(), err)
	return review
}

func (suite *ServicesTestSuite) TestAverageRatingOf1984() {
	book := suite.createBook("1984", "George Orwell", "Dystopian Fiction", 1949)
	suite.createReview(book.ID, "David Brown", 5)
	suite.createReview(book.ID, "Emma Davis", 4)

	avg, err := suite.reviews.AverageRatingByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4.5, avg)

	n, err := suite.reviews.CountByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), n)
}

func (suite *ServicesTestSuite) TestBookWithoutReviews() {
	book := suite.createBook("Unread", "Someone", "", 2020)

	avg, err := suite.reviews.AverageRatingByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, avg)

	n, err := suite.reviews.CountByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), n)
}

func (suite *ServicesTestSuite) TestAverageMatchesEagerComputation() {
	book := suite.createBook("Pride and Prejudice", "Jane Austen", "Romance", 1813)
	for _, stars := range []int{1, 2, 2, 5, 4, 3, 5} {
		suite.createReview(book.ID, "reader", stars)
	}

	loaded, err := suite.books.GetWithReviews(suite.ctx, book.ID)
	require.NoError(suite.T(), err)

	avg, err := suite.reviews.AverageRatingByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), rating.FromReviews(loaded.Reviews).Average(), avg)
	assert.Equal(suite.T(), 22.0/7.0, avg)
}

func (suite *ServicesTestSuite) TestByGenreIgnoresCaseAndSortsByTitle() {
	suite.createBook("The Great Gatsby", "F. Scott Fitzgerald", "Classic Fiction", 1925)
	suite.createBook("1984", "George Orwell", "Dystopian Fiction", 1949)
	suite.createBook("Pride and Prejudice", "Jane Austen", "Romance", 1813)

	books, err := suite.books.ByGenre(suite.ctx, "fiction")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), books, 2)
	assert.Equal(suite.T(), "1984", books[0].Title)
	assert.Equal(suite.T(), "The Great Gatsby", books[1].Title)
}

func (suite *ServicesTestSuite) TestRatingBounds() {
	book := suite.createBook("1984", "George Orwell", "", 1949)

	for _, stars := range []int{0, 6} {
		_, err := suite.reviews.Save(suite.ctx, &models.Review{
			ReviewerName: "Ann", Rating: stars, Comment: "Hmm", BookID: book.ID,
		})
		var verr *ValidationError
		require.ErrorAs(suite.T(), err, &verr, "rating %d", stars)
		require.Len(suite.T(), verr.Violations, 1)
		assert.Equal(suite.T(), "rating", verr.Violations[0].Field)
	}

	for _, stars := range []int{1, 5} {
		suite.createReview(book.ID, "Ann", stars)
	}

	n, err := suite.reviews.TotalCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), n)
}

func (suite *ServicesTestSuite) TestBookValidation() {
	_, err := suite.books.Save(suite.ctx, &models.Book{Title: "   ", Author: ""})

	var verr *ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(suite.T(), []string{"title", "author"}, fields)

	n, err := suite.books.TotalCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), n)
}

func (suite *ServicesTestSuite) TestLengthLimits() {
	book := suite.createBook("1984", "George Orwell", "", 1949)

	newBook := func(mutate func(*models.Book)) *models.Book {
		b := &models.Book{Title: "Title", Author: "Author"}
		mutate(b)
		return b
	}
	newReview := func(mutate func(*models.Review)) *models.Review {
		r := &models.Review{ReviewerName: "Reader", Rating: 3, Comment: "Fine.", BookID: book.ID}
		mutate(r)
		return r
	}

	tests := []struct {
		name  string
		save  func() error
		field string
	}{
		{"title at limit", bookSaver(suite, newBook(func(b *models.Book) { b.Title = strings.Repeat("a", 200) })), ""},
		{"title multibyte at limit", bookSaver(suite, newBook(func(b *models.Book) { b.Title = strings.Repeat("é", 200) })), ""},
		{"title over limit", bookSaver(suite, newBook(func(b *models.Book) { b.Title = strings.Repeat("a", 201) })), "title"},
		{"author at limit", bookSaver(suite, newBook(func(b *models.Book) { b.Author = strings.Repeat("a", 100) })), ""},
		{"author over limit", bookSaver(suite, newBook(func(b *models.Book) { b.Author = strings.Repeat("a", 101) })), "author"},
		{"genre at limit", bookSaver(suite, newBook(func(b *models.Book) { b.Genre = strings.Repeat("g", 50) })), ""},
		{"genre over limit", bookSaver(suite, newBook(func(b *models.Book) { b.Genre = strings.Repeat("g", 51) })), "genre"},
		{"isbn at limit", bookSaver(suite, newBook(func(b *models.Book) { b.ISBN = strings.Repeat("9", 20) })), ""},
		{"isbn over limit", bookSaver(suite, newBook(func(b *models.Book) { b.ISBN = strings.Repeat("9", 21) })), "isbn"},
		{"reviewer at limit", reviewSaver(suite, newReview(func(r *models.Review) { r.ReviewerName = strings.Repeat("r", 100) })), ""},
		{"reviewer over limit", reviewSaver(suite, newReview(func(r *models.Review) { r.ReviewerName = strings.Repeat("r", 101) })), "reviewer_name"},
		{"comment at limit", reviewSaver(suite, newReview(func(r *models.Review) { r.Comment = strings.Repeat("c", 2000) })), ""},
		{"comment over limit", reviewSaver(suite, newReview(func(r *models.Review) { r.Comment = strings.Repeat("c", 2001) })), "comment"},
	}

	for _, tt := range tests {
		err := tt.save()
		if tt.field == "" {
			assert.NoError(suite.T(), err, tt.name)
			continue
		}

		var verr *ValidationError
		if assert.ErrorAs(suite.T(), err, &verr, tt.name) {
			require.Len(suite.T(), verr.Violations, 1, tt.name)
			assert.Equal(suite.T(), tt.field, verr.Violations[0].Field, tt.name)
			assert.Equal(suite.T(), "max", verr.Violations[0].Tag, tt.name)
		}
	}
}

func bookSaver(suite *ServicesTestSuite, book *models.Book) func() error {
	return func() error {
		_, err := suite.books.Save(suite.ctx, book)
		return err
	}
}

func reviewSaver(suite *ServicesTestSuite, review *models.Review) func() error {
	return func() error {
		_, err := suite.reviews.Save(suite.ctx, review)
		return err
	}
}

func (suite *ServicesTestSuite) TestReviewTakesAttachedBook() {
	book := suite.createBook("1984", "George Orwell", "", 1949)

	saved, err := suite.reviews.Save(suite.ctx, &models.Review{
		ReviewerName: "Ann", Rating: 4, Comment: "Chilling.", Book: book,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), book.ID, saved.BookID)

	n, err := suite.reviews.CountByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), n)

	books, err := suite.books.TotalCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), books)
}

func (suite *ServicesTestSuite) TestSearchBlankEqualsListAll() {
	suite.createBook("1984", "George Orwell", "", 1949)
	suite.createBook("Emma", "Jane Austen", "", 1815)
	suite.createBook("Animal Farm", "George Orwell", "", 1945)

	all, err := suite.books.ListAll(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, 3)
	assert.Equal(suite.T(), "Animal Farm", all[0].Title)

	for _, keyword := range []string{"", "   "} {
		found, err := suite.books.Search(suite.ctx, keyword)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), all, found)
	}

	orwell, err := suite.books.Search(suite.ctx, " ORWELL ")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), orwell, 2)

	none, err := suite.books.Search(suite.ctx, "%")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)
}

func (suite *ServicesTestSuite) TestRoundTrip() {
	year := 1951
	saved, err := suite.books.Save(suite.ctx, &models.Book{
		Title:           "The Catcher in the Rye",
		Author:          "J.D. Salinger",
		Genre:           "Coming-of-age Fiction",
		ISBN:            "978-0-316-76948-0",
		Description:     "A story about teenage rebellion and alienation.",
		PublicationYear: &year,
	})
	require.NoError(suite.T(), err)

	found, err := suite.books.GetByID(suite.ctx, saved.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)

	assert.Equal(suite.T(), saved.ID, found.ID)
	assert.Equal(suite.T(), saved.Title, found.Title)
	assert.Equal(suite.T(), saved.Author, found.Author)
	assert.Equal(suite.T(), saved.Genre, found.Genre)
	assert.Equal(suite.T(), saved.ISBN, found.ISBN)
	assert.Equal(suite.T(), saved.Description, found.Description)
	assert.Equal(suite.T(), year, *found.PublicationYear)
	assert.True(suite.T(), saved.CreatedAt.Equal(found.CreatedAt))
}

func (suite *ServicesTestSuite) TestBookUpdateKeepsCreationTime() {
	book := suite.createBook("Emma", "Jane Austen", "", 1815)
	created := book.CreatedAt

	update := &models.Book{Title: "Emma", Author: "Jane Austen", Genre: "Romance"}
	update.ID = book.ID
	update.CreatedAt = created.AddDate(-3, 0, 0)

	_, err := suite.books.Save(suite.ctx, update)
	require.NoError(suite.T(), err)

	found, err := suite.books.GetByID(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Romance", found.Genre)
	assert.Nil(suite.T(), found.PublicationYear)
	assert.True(suite.T(), created.Equal(found.CreatedAt))
}

func (suite *ServicesTestSuite) TestUpdateMissingFails() {
	book := &models.Book{Title: "Ghost", Author: "Nobody"}
	book.ID = uuid.New()
	_, err := suite.books.Save(suite.ctx, book)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	review := &models.Review{ReviewerName: "Ann", Rating: 3, Comment: "Hmm"}
	review.ID = uuid.New()
	_, err = suite.reviews.Save(suite.ctx, review)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *ServicesTestSuite) TestReviewUpdateKeepsBookAndTimestamp() {
	original := suite.createBook("1984", "George Orwell", "", 1949)
	other := suite.createBook("Emma", "Jane Austen", "", 1815)
	review := suite.createReview(original.ID, "Henry Taylor", 4)
	created := review.CreatedAt

	update := &models.Review{
		ReviewerName: "Henry Taylor",
		Rating:       2,
		Comment:      "Less good on a second read.",
		BookID:       other.ID,
	}
	update.ID = review.ID
	update.CreatedAt = created.Add(48 * time.Hour)

	_, err := suite.reviews.Save(suite.ctx, update)
	require.NoError(suite.T(), err)

	found, err := suite.reviews.GetByID(suite.ctx, review.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Less good on a second read.", found.Comment)
	assert.Equal(suite.T(), 2, found.Rating)
	assert.Equal(suite.T(), original.ID, found.BookID)
	assert.True(suite.T(), created.Equal(found.CreatedAt))
}

func (suite *ServicesTestSuite) TestReviewNeedsExistingBook() {
	for _, bookID := range []uuid.UUID{uuid.Nil, uuid.New()} {
		_, err := suite.reviews.Save(suite.ctx, &models.Review{
			ReviewerName: "Ann", Rating: 3, Comment: "Hmm", BookID: bookID,
		})
		assert.ErrorIs(suite.T(), err, ErrInvalidReference)
	}
}

func (suite *ServicesTestSuite) TestDeleteBookRemovesReviews() {
	book := suite.createBook("1984", "George Orwell", "", 1949)
	r1 := suite.createReview(book.ID, "David", 5)
	r2 := suite.createReview(book.ID, "Emma", 4)

	require.NoError(suite.T(), suite.books.Delete(suite.ctx, book.ID))

	for _, id := range []uuid.UUID{r1.ID, r2.ID} {
		found, err := suite.reviews.GetByID(suite.ctx, id)
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), found)
	}
}

func (suite *ServicesTestSuite) TestDeleteReviewKeepsBook() {
	book := suite.createBook("1984", "George Orwell", "", 1949)
	review := suite.createReview(book.ID, "David", 5)

	require.NoError(suite.T(), suite.reviews.Delete(suite.ctx, review.ID))

	found, err := suite.books.GetByID(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)
	assert.Equal(suite.T(), book.Title, found.Title)
	assert.True(suite.T(), book.CreatedAt.Equal(found.CreatedAt))
}

func (suite *ServicesTestSuite) TestYearQueries() {
	suite.createBook("Pride and Prejudice", "Jane Austen", "", 1813)
	suite.createBook("Emma", "Jane Austen", "", 1815)
	suite.createBook("1984", "George Orwell", "", 1949)

	ranged, err := suite.books.ByYearRange(suite.ctx, 1813, 1815)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), ranged, 2)
	assert.Equal(suite.T(), "Pride and Prejudice", ranged[0].Title)
	assert.Equal(suite.T(), "Emma", ranged[1].Title)

	reversed, err := suite.books.ByYearRange(suite.ctx, 1949, 1813)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), reversed)

	exact, err := suite.books.ByYear(suite.ctx, 1949)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), exact, 1)
	assert.Equal(suite.T(), "1984", exact[0].Title)

	byAuthor, err := suite.books.ByAuthor(suite.ctx, "jane austen")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), byAuthor, 2)
}

func (suite *ServicesTestSuite) TestReviewQueries() {
	book := suite.createBook("1984", "George Orwell", "", 1949)
	suite.createReview(book.ID, "Grace Wilson", 3)
	suite.createReview(book.ID, "Henry Taylor", 5)
	suite.createReview(book.ID, "Ivy Wilson", 4)

	wilsons, err := suite.reviews.ByReviewerName(suite.ctx, "wilson")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), wilsons, 2)
	assert.Equal(suite.T(), "Ivy Wilson", wilsons[0].ReviewerName)
	require.NotNil(suite.T(), wilsons[0].Book)

	fives, err := suite.reviews.ByRating(suite.ctx, 5)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), fives, 1)

	good, err := suite.reviews.ByMinRating(suite.ctx, 4)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), good, 2)

	byBook, err := suite.reviews.ByBook(suite.ctx, book.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ivy Wilson", byBook[0].ReviewerName)
	assert.Equal(suite.T(), "Grace Wilson", byBook[2].ReviewerName)
}

func (suite *ServicesTestSuite) TestRatingSummariesCoverEveryBook() {
	rated := suite.createBook("1984", "George Orwell", "", 1949)
	unrated := suite.createBook("Emma", "Jane Austen", "", 1815)
	suite.createReview(rated.ID, "David", 5)
	suite.createReview(rated.ID, "Emma", 2)

	summaries, err := suite.reviews.RatingSummaries(suite.ctx, []models.Book{*rated, *unrated})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), rating.Summary{Count: 2, Total: 7}, summaries[rated.ID])
	summary, ok := summaries[unrated.ID]
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), rating.Summary{}, summary)
}

func (suite *ServicesTestSuite) TestDashboardStats() {
	first := suite.createBook("1984", "George Orwell", "", 1949)
	second := suite.createBook("Emma", "Jane Austen", "", 1815)
	third := suite.createBook("Animal Farm", "George Orwell", "", 1945)
	suite.createReview(first.ID, "David", 5)
	latest := suite.createReview(second.ID, "Emma", 4)

	stats, err := suite.dashboard.Stats(suite.ctx, 2)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), stats.TotalBooks)
	assert.Equal(suite.T(), int64(2), stats.TotalReviews)
	require.Len(suite.T(), stats.RecentBooks, 2)
	assert.Equal(suite.T(), third.ID, stats.RecentBooks[0].ID)
	assert.Equal(suite.T(), second.ID, stats.RecentBooks[1].ID)
	require.Len(suite.T(), stats.RecentReviews, 2)
	assert.Equal(suite.T(), latest.ID, stats.RecentReviews[0].ID)
}

func TestServicesSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}
