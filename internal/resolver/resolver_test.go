package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikkun/tikkun-api/internal/profiles"
)

func ptr[T any](v T) *T { return &v }

func registry() *profiles.Registry {
	return profiles.New(profiles.Builtin()...)
}

func TestResolve_ProfileValues(t *testing.T) {
	for _, p := range profiles.Builtin() {
		t.Run(p.ID, func(t *testing.T) {
			r, err := Resolve(registry(), Request{Action: p.ID, Message: "שלום עולם"})
			require.NoError(t, err)

			assert.Equal(t, p.Model, r.Model)
			assert.Equal(t, p.MaxTokens, r.MaxTokens)
			assert.Equal(t, p.Temperature, r.Temperature)
			assert.Equal(t, p.SystemPrompt, r.SystemPrompt)
			assert.Equal(t, "שלום עולם", r.Message)
			assert.Equal(t, p.Name, r.FunctionName())
			assert.Equal(t, p.ID, r.FunctionID())
		})
	}
}

func TestResolve_OverridesWin(t *testing.T) {
	r, err := Resolve(registry(), Request{
		Action:      "nikud",
		Message:     "text",
		Model:       ptr("claude-3-5-sonnet-20241022"),
		MaxTokens:   ptr(100),
		Temperature: ptr(0.9),
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-3-5-sonnet-20241022", r.Model)
	assert.Equal(t, 100, r.MaxTokens)
	assert.InDelta(t, 0.9, r.Temperature, 1e-9)
	assert.Equal(t, "הוספת ניקוד", r.FunctionName())
}

func TestResolve_ExplicitZeroTemperatureHonoured(t *testing.T) {
	r, err := Resolve(registry(), Request{Action: "sources", Message: "x", Temperature: ptr(0.0)})
	require.NoError(t, err)
	assert.Zero(t, r.Temperature)
}

func TestResolve_NonPositiveMaxTokensIgnored(t *testing.T) {
	for _, n := range []int{0, -5} {
		r, err := Resolve(registry(), Request{Action: "nikud", Message: "x", MaxTokens: ptr(n)})
		require.NoError(t, err)
		assert.Equal(t, 3000, r.MaxTokens, "max_tokens=%d falls through to the profile", n)

		r, err = Resolve(registry(), Request{CustomPrompt: "סכם", Message: "x", MaxTokens: ptr(n)})
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxTokens, r.MaxTokens, "max_tokens=%d falls through to the default", n)
	}
}

func TestResolve_BlankModelOverrideIgnored(t *testing.T) {
	r, err := Resolve(registry(), Request{Action: "sources", Message: "x", Model: ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, r.Model)
}

func TestResolve_CustomPromptWinsOverProfile(t *testing.T) {
	r, err := Resolve(registry(), Request{Action: "punctuation", CustomPrompt: "תקן שגיאות כתיב", Message: "x"})
	require.NoError(t, err)

	assert.Equal(t, "תקן שגיאות כתיב", r.SystemPrompt)
	assert.Equal(t, 4000, r.MaxTokens, "profile values still apply to other fields")
	assert.Equal(t, "פיסוק מלא", r.FunctionName())
}

func TestResolve_CustomPromptWithoutProfile(t *testing.T) {
	r, err := Resolve(registry(), Request{Action: "custom", CustomPrompt: "סכם", Message: "x"})
	require.NoError(t, err)

	assert.Nil(t, r.Profile)
	assert.Equal(t, DefaultModel, r.Model)
	assert.Equal(t, DefaultMaxTokens, r.MaxTokens)
	assert.InDelta(t, DefaultTemperature, r.Temperature, 1e-9)
	assert.Equal(t, "סכם", r.SystemPrompt)
	assert.Equal(t, CustomLabel, r.FunctionName())
	assert.Equal(t, "custom", r.FunctionID())
}

func TestResolve_UnknownAction(t *testing.T) {
	_, err := Resolve(registry(), Request{Action: "unknown_id", Message: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFunction))
	assert.True(t, IsValidation(err))
	assert.Equal(t, "פונקציה לא קיימת", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "action", ve.Field)
	assert.Contains(t, ve.Detail(), "unknown_id")
}

func TestResolve_BlankCustomPromptIsAbsent(t *testing.T) {
	_, err := Resolve(registry(), Request{Action: "nope", CustomPrompt: "   ", Message: "x"})
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestResolve_MissingMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := Resolve(registry(), Request{Action: "punctuation", Message: msg})
		assert.ErrorIs(t, err, ErrMissingMessage)
		assert.True(t, IsValidation(err))
	}
}

func TestResolve_NilRegistry(t *testing.T) {
	_, err := Resolve(nil, Request{Action: "punctuation", Message: "x"})
	assert.ErrorIs(t, err, ErrUnknownFunction)

	r, err := Resolve(nil, Request{CustomPrompt: "p", Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, "p", r.SystemPrompt)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(3))
	assert.Equal(t, 3, Coalesce(3, nil, nil))
	assert.Equal(t, 1, Coalesce(3, ptr(1), ptr(2)))
	assert.Equal(t, 2, Coalesce(3, nil, ptr(2)))
	assert.Equal(t, 0.0, Coalesce(0.3, ptr(0.0)))
	assert.Equal(t, "b", Coalesce("c", nil, ptr("b")))
}

func TestIsValidation(t *testing.T) {
	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(errors.New("other")))
	assert.True(t, IsValidation(&ValidationError{Err: ErrMissingMessage}))
}

func TestResolve_UnknownActionCheckedBeforeMessage(t *testing.T) {
	_, err := Resolve(registry(), Request{Action: "unknown_id"})
	assert.ErrorIs(t, err, ErrUnknownFunction)
}
