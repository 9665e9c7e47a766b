// internal/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/bookreview/internal/i18n"
	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/utils"
)

// respondError maps a service error onto the API envelope. notFoundKey
// names the message used for ErrNotFound.
func respondError(c *gin.Context, err error, notFoundKey string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, validationErr.Violations)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, services.ErrInvalidReference):
		utils.InvalidReferenceResponse(c)
	default:
		_ = c.Error(err)
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes the request body and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		message := i18n.T(lang, i18n.KeyValidationInvalid, "input")

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			switch typeErr.Field {
			case "publication_year":
				message = i18n.T(lang, i18n.KeyValidationYear)
			case "rating":
				message = i18n.T(lang, i18n.KeyValidationRating)
			}
		}

		utils.BadRequestResponse(c, message, err.Error())
		return false
	}
	return true
}

// parseID reads the :name path parameter as a UUID and answers 400 with
// invalidKey when it is malformed.
func parseID(c *gin.Context, name, invalidKey string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), invalidKey), nil)
		return uuid.Nil, false
	}
	return id, true
}
