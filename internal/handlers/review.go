// internal/handlers/review.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/bookreview/internal/i18n"
	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
	bookService   *services.BookService
}

// ReviewRequest is the body of review writes. BookID is ignored on update.
type ReviewRequest struct {
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	BookID       uuid.UUID `json:"book_id"`
}

func (r *ReviewRequest) toModel(id uuid.UUID) *models.Review {
	review := &models.Review{
		ReviewerName: strings.TrimSpace(r.ReviewerName),
		Rating:       r.Rating,
		Comment:      strings.TrimSpace(r.Comment),
		BookID:       r.BookID,
	}
	review.ID = id
	return review
}

func NewReviewHandler(reviewService *services.ReviewService, bookService *services.BookService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		bookService:   bookService,
	}
}

// GET /reviews?reviewer=&rating=&min_rating=
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ctx := c.Request.Context()

	var (
		reviews []models.Review
		err     error
	)
	switch {
	case c.Query("rating") != "":
		stars, convErr := strconv.Atoi(c.Query("rating"))
		if convErr != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRating), nil)
			return
		}
		reviews, err = h.reviewService.ByRating(ctx, stars)
	case c.Query("min_rating") != "":
		minRating, convErr := strconv.Atoi(c.Query("min_rating"))
		if convErr != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRating), nil)
			return
		}
		reviews, err = h.reviewService.ByMinRating(ctx, minRating)
	case strings.TrimSpace(c.Query("reviewer")) != "":
		reviews, err = h.reviewService.ByReviewerName(ctx, strings.TrimSpace(c.Query("reviewer")))
	default:
		reviews, err = h.reviewService.ListAll(ctx)
	}
	if err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	found, err := h.bookService.ExistsByID(ctx, req.BookID)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	if !found {
		utils.NotFoundResponse(c, i18n.KeyBookNotFound)
		return
	}

	review, err := h.reviewService.Save(ctx, req.toModel(uuid.Nil))
	if err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id", i18n.KeyReviewInvalid)
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}
	if review == nil {
		utils.NotFoundResponse(c, i18n.KeyReviewNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"review": review})
}

// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "id", i18n.KeyReviewInvalid)
	if !ok {
		return
	}

	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Save(c.Request.Context(), req.toModel(id))
	if err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewUpdated),
		"review":  review,
	})
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "id", i18n.KeyReviewInvalid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	review, err := h.reviewService.GetByID(ctx, id)
	if err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}
	if review == nil {
		utils.NotFoundResponse(c, i18n.KeyReviewNotFound)
		return
	}

	if err := h.reviewService.Delete(ctx, id); err != nil {
		respondError(c, err, i18n.KeyReviewNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewDeleted),
		"id":      id,
		"book_id": review.BookID,
	})
}
