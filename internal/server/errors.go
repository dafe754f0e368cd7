// Package server provides the HTTP API for job matching and skill-gap analysis.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillmatch/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRoleNotFound indicates a gap request named a role the corpus does not contain
type ErrRoleNotFound struct {
	Role string
}

func (e *ErrRoleNotFound) Error() string {
	return fmt.Sprintf("role not found in corpus: %s", e.Role)
}

// ErrCorpusUnavailable indicates no corpus snapshot could be served
type ErrCorpusUnavailable struct {
	Reason string
	Cause  error
}

func (e *ErrCorpusUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corpus unavailable: %s: %v", e.Reason, e.Cause)
	}
	return "corpus unavailable: " + e.Reason
}

func (e *ErrCorpusUnavailable) Unwrap() error { return e.Cause }

// ErrBodyTooLarge indicates the request body exceeded server.max_body_bytes
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrRoleNotFound
		unavailable *ErrCorpusUnavailable
		tooLarge    *ErrBodyTooLarge
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts request validation failures into *ErrValidation.
// Field names use the JSON spelling in snake case.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: jsonField(fe.Namespace()), Message: describeTag(fe)}
	}
	var rangeErr *types.RangeError
	if errors.As(err, &rangeErr) {
		return &ErrValidation{Field: rangeErr.Field, Message: rangeErr.Message}
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("validator misuse: %w", err)
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// jsonField turns "MatchRequest.Candidates[0].Skills" into "candidates[0].skills".
func jsonField(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + snake(fe.Param()) + " is not set"
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
