// Package llm calls the Anthropic Messages API on behalf of a resolved request.
package llm

import (
	"errors"
	"fmt"

	"github.com/tikkun/tikkun-api/internal/metrics"
)

// Error categories for upstream calls.
var (
	// ErrMissingCredential indicates no API key is configured. Reported before
	// any network I/O.
	ErrMissingCredential = errors.New("מפתח API חסר - הוסף ANTHROPIC_API_KEY לקובץ .env")

	// ErrUpstreamUnreachable indicates the request never produced an HTTP response.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")

	// ErrUpstreamRejected indicates the upstream answered with a non-2xx status
	// or a body without a text block.
	ErrUpstreamRejected = errors.New("upstream rejected request")
)

// UpstreamError carries the caller-facing message of a failed upstream call.
type UpstreamError struct {
	// Err is ErrUpstreamUnreachable or ErrUpstreamRejected.
	Err error

	// HTTP status code returned upstream, zero when unreachable.
	StatusCode int

	// Message is surfaced to the caller verbatim.
	Message string

	// Cause is the transport error for unreachable upstreams.
	Cause error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "upstream error"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Outcome is a short classification for logs and metrics.
func (e *UpstreamError) Outcome() string {
	if errors.Is(e.Err, ErrUpstreamUnreachable) {
		return metrics.OutcomeUnreachable
	}
	return metrics.OutcomeRejected
}

func unreachable(cause error) *UpstreamError {
	return &UpstreamError{
		Err:     ErrUpstreamUnreachable,
		Message: cause.Error(),
		Cause:   cause,
	}
}

func rejected(status int, message string) *UpstreamError {
	if message == "" {
		message = fmt.Sprintf("API Error: %d", status)
	}
	return &UpstreamError{
		Err:        ErrUpstreamRejected,
		StatusCode: status,
		Message:    message,
	}
}

// IsUpstream reports whether err came from the upstream call itself.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
