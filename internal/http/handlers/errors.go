package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tikkun/tikkun-api/internal/llm"
	"github.com/tikkun/tikkun-api/internal/resolver"
)

// MsgInternal is returned when a failure carries no caller-facing message.
const MsgInternal = "שגיאה פנימית בשרת"

// APIError is the single error body shape of the API: {"error": "..."}.
// It implements huma.StatusError so it can be returned from handlers.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human-readable error message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.Status
}

// NewAPIError creates an APIError with the given status and message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// InstallErrorFormat replaces huma's problem+json errors with APIError so
// framework failures (malformed JSON, schema violations, oversized bodies)
// share the handlers' body shape. Schema violations are reported as 400.
func InstallErrorFormat() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			msg = msg + ": " + strings.Join(details, "; ")
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return NewAPIError(status, msg)
	}
}

// ToAPIError maps domain errors to their HTTP representation.
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if resolver.IsValidation(err) {
		return NewAPIError(http.StatusBadRequest, err.Error())
	}

	if errors.Is(err, llm.ErrMissingCredential) {
		return NewAPIError(http.StatusInternalServerError, err.Error())
	}

	if llm.IsUpstream(err) {
		return NewAPIError(http.StatusInternalServerError, err.Error())
	}

	return NewAPIError(http.StatusInternalServerError, MsgInternal)
}
