// Package handlers contains the HTTP operations of the relay.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/tikkun/tikkun-api/internal/llm"
	"github.com/tikkun/tikkun-api/internal/profiles"
	"github.com/tikkun/tikkun-api/internal/resolver"
)

// Completer performs one upstream completion.
type Completer interface {
	Complete(ctx context.Context, r resolver.Resolved) (*llm.Completion, error)
}

// Handlers holds the dependencies shared by all operations.
type Handlers struct {
	profiles *profiles.Registry
	llm      Completer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source used for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		h.now = now
	}
}

// New creates the handler set.
func New(reg *profiles.Registry, completer Completer, logger *slog.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		profiles: reg,
		llm:      completer,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
