package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Cordxll/Resume-Builder/internal/ingestion"
	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		input       *segmentation.InputError
		tooLarge    *http.MaxBytesError
		shape       *reconcile.ShapeMismatchError
		empty       *reconcile.EmptyOverrideError
		unknown     *reconcile.UnknownSectionError
		unsupported *ingestion.UnsupportedFormatError
		extraction  *ingestion.ExtractionError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &input):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &shape), errors.As(err, &empty), errors.As(err, &unknown),
		errors.As(err, &unsupported), errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
