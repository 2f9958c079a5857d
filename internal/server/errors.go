package server

import (
	"errors"
	"net/http"

	"github.com/hiredesk/hiredesk/internal/assessment"
	"github.com/hiredesk/hiredesk/internal/hiring"
	"github.com/hiredesk/hiredesk/internal/llm"
)

// ErrValidation wraps request validation failures so they map to 400.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	var (
		validationErr     *ErrValidation
		invalidStatusErr  *hiring.ErrInvalidStatus
		appNotFoundErr    *hiring.ErrApplicationNotFound
		jobNotFoundErr    *hiring.ErrJobNotFound
		forbiddenErr      *hiring.ErrForbidden
		malformedErr      *assessment.ErrMalformedGeneration
		existsErr         *assessment.ErrAssessmentExists
		assessNotFoundErr *assessment.ErrAssessmentNotFound
		tokenNotFoundErr  *assessment.ErrTokenNotFound
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &invalidStatusErr),
		errors.As(err, &existsErr),
		errors.Is(err, assessment.ErrEmptyQuestions),
		errors.Is(err, assessment.ErrMissingReference):
		return http.StatusBadRequest
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &appNotFoundErr),
		errors.As(err, &jobNotFoundErr),
		errors.As(err, &assessNotFoundErr),
		errors.As(err, &tokenNotFoundErr):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &malformedErr),
		errors.Is(err, assessment.ErrSchemaMismatch):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns a short machine-checkable reason for the response body.
func errorCode(err error) string {
	var (
		validationErr     *ErrValidation
		invalidStatusErr  *hiring.ErrInvalidStatus
		appNotFoundErr    *hiring.ErrApplicationNotFound
		jobNotFoundErr    *hiring.ErrJobNotFound
		forbiddenErr      *hiring.ErrForbidden
		malformedErr      *assessment.ErrMalformedGeneration
		existsErr         *assessment.ErrAssessmentExists
		assessNotFoundErr *assessment.ErrAssessmentNotFound
		tokenNotFoundErr  *assessment.ErrTokenNotFound
	)

	switch {
	case errors.As(err, &validationErr):
		return "invalid_request"
	case errors.As(err, &invalidStatusErr):
		return "invalid_status"
	case errors.As(err, &existsErr):
		return "assessment_exists"
	case errors.Is(err, assessment.ErrEmptyQuestions):
		return "empty_questions"
	case errors.Is(err, assessment.ErrMissingReference):
		return "missing_reference"
	case errors.As(err, &forbiddenErr):
		return "forbidden"
	case errors.As(err, &appNotFoundErr):
		return "application_not_found"
	case errors.As(err, &jobNotFoundErr):
		return "job_not_found"
	case errors.As(err, &assessNotFoundErr):
		return "assessment_not_found"
	case errors.As(err, &tokenNotFoundErr):
		return "token_not_found"
	case errors.Is(err, llm.ErrUnavailable):
		return "llm_unavailable"
	case errors.As(err, &malformedErr):
		return "malformed_generation"
	case errors.Is(err, assessment.ErrSchemaMismatch):
		return "schema_mismatch"
	default:
		return "internal_error"
	}
}
