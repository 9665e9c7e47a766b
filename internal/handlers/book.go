// internal/handlers/book.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/bookreview/internal/i18n"
	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/rating"
	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/utils"
)

type BookHandler struct {
	bookService   *services.BookService
	reviewService *services.ReviewService
}

type BookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	ISBN            string `json:"isbn"`
	Description     string `json:"description"`
	PublicationYear *int   `json:"publication_year"`
}

func (r *BookRequest) toModel(id uuid.UUID) *models.Book {
	book := &models.Book{
		Title:           strings.TrimSpace(r.Title),
		Author:          strings.TrimSpace(r.Author),
		Genre:           strings.TrimSpace(r.Genre),
		ISBN:            strings.TrimSpace(r.ISBN),
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
	}
	book.ID = id
	return book
}

// BookListItem is a book decorated with its rating aggregates.
type BookListItem struct {
	models.Book
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func NewBookHandler(bookService *services.BookService, reviewService *services.ReviewService) *BookHandler {
	return &BookHandler{
		bookService:   bookService,
		reviewService: reviewService,
	}
}

// GET /books?search=
func (h *BookHandler) GetBooks(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	keyword := strings.TrimSpace(c.Query("search"))

	books, err := h.bookService.Search(c.Request.Context(), keyword)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	items, err := h.decorate(c, books)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	if keyword == "" {
		utils.SuccessResponse(c, gin.H{"books": items})
		return
	}

	message := i18n.T(lang, i18n.KeySearchResultsFound, len(items), keyword)
	if len(items) == 0 {
		message = i18n.T(lang, i18n.KeySearchNoResults, keyword)
	}
	utils.SuccessResponseWithMeta(c, gin.H{"books": items}, gin.H{
		"search":  keyword,
		"message": message,
	})
}

// GET /books/genre/:genre
func (h *BookHandler) GetBooksByGenre(c *gin.Context) {
	books, err := h.bookService.ByGenre(c.Request.Context(), c.Param("genre"))
	h.respondList(c, books, err)
}

// GET /books/author/:author
func (h *BookHandler) GetBooksByAuthor(c *gin.Context) {
	books, err := h.bookService.ByAuthor(c.Request.Context(), c.Param("author"))
	h.respondList(c, books, err)
}

// GET /books/year/:year
func (h *BookHandler) GetBooksByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationYear), nil)
		return
	}

	books, err := h.bookService.ByYear(c.Request.Context(), year)
	h.respondList(c, books, err)
}

// GET /books/years?start=&end=
func (h *BookHandler) GetBooksByYearRange(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	start, errStart := strconv.Atoi(c.Query("start"))
	end, errEnd := strconv.Atoi(c.Query("end"))
	if errStart != nil || errEnd != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationYear), nil)
		return
	}

	books, err := h.bookService.ByYearRange(c.Request.Context(), start, end)
	h.respondList(c, books, err)
}

// POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookService.Save(c.Request.Context(), req.toModel(uuid.Nil))
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookCreated),
		"book":    book,
	})
}

// GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c, "id", i18n.KeyBookInvalid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := h.bookService.GetWithReviews(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	if book == nil {
		utils.NotFoundResponse(c, i18n.KeyBookNotFound)
		return
	}

	summary, err := h.reviewService.RatingSummaryByBook(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"book":           book,
		"average_rating": summary.Average(),
		"review_count":   summary.Count,
	})
}

// PUT /books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "id", i18n.KeyBookInvalid)
	if !ok {
		return
	}

	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookService.Save(c.Request.Context(), req.toModel(id))
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookUpdated),
		"book":    book,
	})
}

// DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "id", i18n.KeyBookInvalid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	found, err := h.bookService.ExistsByID(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	if !found {
		utils.NotFoundResponse(c, i18n.KeyBookNotFound)
		return
	}

	if err := h.bookService.Delete(ctx, id); err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookDeleted),
		"id":      id,
	})
}

// GET /books/:id/reviews
func (h *BookHandler) GetBookReviews(c *gin.Context) {
	id, ok := parseID(c, "id", i18n.KeyBookInvalid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := h.bookService.GetByID(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	if book == nil {
		utils.NotFoundResponse(c, i18n.KeyBookNotFound)
		return
	}

	reviews, err := h.reviewService.ByBook(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"book":    book,
		"reviews": reviews,
	})
}

func (h *BookHandler) respondList(c *gin.Context, books []models.Book, err error) {
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}

	items, err := h.decorate(c, books)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	utils.SuccessResponse(c, gin.H{"books": items})
}

func (h *BookHandler) decorate(c *gin.Context, books []models.Book) ([]BookListItem, error) {
	summaries, err := h.reviewService.RatingSummaries(c.Request.Context(), books)
	if err != nil {
		return nil, err
	}

	items := make([]BookListItem, 0, len(books))
	for _, b := range books {
		items = append(items, newBookListItem(b, summaries[b.ID]))
	}
	return items, nil
}

func newBookListItem(book models.Book, summary rating.Summary) BookListItem {
	return BookListItem{
		Book:          book,
		AverageRating: summary.Average(),
		ReviewCount:   summary.Count,
	}
}
