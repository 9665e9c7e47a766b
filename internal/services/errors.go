package services

import (
	"fmt"
	"strings"

	"github.com/javajoker/bookreview/internal/store"
	"github.com/javajoker/bookreview/internal/utils"
)

var (
	ErrNotFound         = store.ErrNotFound
	ErrInvalidReference = store.ErrInvalidReference
)

// ValidationError reports every constraint a record failed. It is returned
// before the store is touched.
type ValidationError struct {
	Violations []utils.ValidationError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}
