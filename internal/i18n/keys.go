// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Books
	KeyBookCreated  = "book.created"
	KeyBookUpdated  = "book.updated"
	KeyBookDeleted  = "book.deleted"
	KeyBookNotFound = "book.not_found"
	KeyBookInvalid  = "book.invalid_id"

	// Reviews
	KeyReviewCreated          = "review.created"
	KeyReviewUpdated          = "review.updated"
	KeyReviewDeleted          = "review.deleted"
	KeyReviewNotFound         = "review.not_found"
	KeyReviewInvalid          = "review.invalid_id"
	KeyReviewInvalidReference = "review.invalid_reference"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationYear    = "validation.invalid_year"
	KeyValidationRating  = "validation.invalid_rating"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"

	// Server
	KeyInternalError     = "server.internal_error"
	KeyRateLimitExceeded = "server.rate_limit_exceeded"
)
