// Package resolver turns a chat request and the profile registry into the
// effective parameters of one upstream call. It performs no I/O.
package resolver

import (
	"strings"

	"github.com/tikkun/tikkun-api/internal/profiles"
)

// Defaults applied when neither the request nor the profile supplies a value.
const (
	DefaultModel        = profiles.DefaultModel
	DefaultMaxTokens    = 2000
	DefaultTemperature  = 0.3
	DefaultSystemPrompt = "עבד את הטקסט הבא:"
)

// CustomLabel is reported as the function name when a request is driven by
// a caller-supplied prompt rather than a registered profile.
const CustomLabel = "מותאם אישית"

// Request is the caller input. Nil or blank fields are absent.
type Request struct {
	Action       string
	CustomPrompt string
	Message      string
	Model        *string
	MaxTokens    *int
	Temperature  *float64
}

// Resolved is the effective configuration for one upstream call.
type Resolved struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
	Message      string

	// Profile is the registered profile the request matched, nil for
	// custom-prompt requests without a known action.
	Profile *profiles.Profile
}

// FunctionName is the label reported back to the caller.
func (r Resolved) FunctionName() string {
	if r.Profile != nil {
		return r.Profile.Name
	}
	return CustomLabel
}

// FunctionID is the profile id, or "custom".
func (r Resolved) FunctionID() string {
	if r.Profile != nil {
		return r.Profile.ID
	}
	return "custom"
}

// Coalesce returns the first present value, falling back to def.
func Coalesce[T any](def T, candidates ...*T) T {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return def
}

// Resolve applies override > profile > default per field. A custom prompt
// always wins for the system prompt. Requests naming an unknown action
// without a custom prompt fail with ErrUnknownFunction.
func Resolve(reg *profiles.Registry, req Request) (Resolved, error) {
	customPrompt := nonBlank(req.CustomPrompt)

	var profile *profiles.Profile
	if p, ok := reg.Get(req.Action); ok {
		profile = &p
	} else if customPrompt == nil {
		return Resolved{}, &ValidationError{Err: ErrUnknownFunction, Field: "action", Value: req.Action}
	}

	if strings.TrimSpace(req.Message) == "" {
		return Resolved{}, &ValidationError{Err: ErrMissingMessage, Field: "message"}
	}

	var (
		profModel  *string
		profTokens *int
		profTemp   *float64
		profPrompt *string
	)
	if profile != nil {
		profModel = nonBlank(profile.Model)
		profTokens = &profile.MaxTokens
		profTemp = &profile.Temperature
		profPrompt = nonBlank(profile.SystemPrompt)
	}

	var override *string
	if req.Model != nil {
		override = nonBlank(*req.Model)
	}

	return Resolved{
		Model:        Coalesce(DefaultModel, override, profModel),
		MaxTokens:    Coalesce(DefaultMaxTokens, positive(req.MaxTokens), profTokens),
		Temperature:  Coalesce(DefaultTemperature, req.Temperature, profTemp),
		SystemPrompt: Coalesce(DefaultSystemPrompt, customPrompt, profPrompt),
		Message:      req.Message,
		Profile:      profile,
	}, nil
}

// positive treats a zero or negative token limit as not given.
func positive(n *int) *int {
	if n == nil || *n <= 0 {
		return nil
	}
	return n
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
