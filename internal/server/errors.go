package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/placement-prep/internal/db"
	"github.com/jonathan/placement-prep/internal/engine"
	"github.com/jonathan/placement-prep/internal/ingestion"
	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		unknownDomain *rules.UnknownDomainError
		fetchErr      *ingestion.FetchError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs),
		errors.Is(err, engine.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.As(err, &unknownDomain), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrEmptyPosting):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr), errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
