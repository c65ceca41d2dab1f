package handlers

import (
	"context"

	"github.com/tikkun/tikkun-api/internal/llm"
	"github.com/tikkun/tikkun-api/internal/profiles"
)

// ListFunctionsOutput lists the registered profiles.
type ListFunctionsOutput struct {
	Body struct {
		Functions []profiles.Profile `json:"functions"`
	}
}

// ListFunctions returns every profile in registration order.
func (h *Handlers) ListFunctions(ctx context.Context, input *struct{}) (*ListFunctionsOutput, error) {
	out := &ListFunctionsOutput{}
	out.Body.Functions = h.profiles.List()
	if out.Body.Functions == nil {
		out.Body.Functions = []profiles.Profile{}
	}
	return out, nil
}

// ListModelsOutput lists the selectable models.
type ListModelsOutput struct {
	Body struct {
		Models []llm.Model `json:"models"`
	}
}

// ListModels returns the static model catalog.
func (h *Handlers) ListModels(ctx context.Context, input *struct{}) (*ListModelsOutput, error) {
	out := &ListModelsOutput{}
	out.Body.Models = llm.Models()
	return out, nil
}
