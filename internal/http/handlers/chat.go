package handlers

import (
	"context"
	"errors"

	"github.com/tikkun/tikkun-api/internal/logging"
	"github.com/tikkun/tikkun-api/internal/resolver"
)

// ChatInput is the relay request. Every field is optional at the schema
// level; message and action/customPrompt presence is checked by the resolver
// so that the error body carries a domain message.
type ChatInput struct {
	Body struct {
		Message      string   `json:"message,omitempty" doc:"Text to process"`
		Action       string   `json:"action,omitempty" doc:"Function id" example:"punctuation"`
		CustomPrompt string   `json:"customPrompt,omitempty" doc:"System instruction replacing the function's prompt"`
		Model        *string  `json:"model,omitempty" doc:"Model override"`
		MaxTokens    *int     `json:"max_tokens,omitempty" doc:"Generated token limit override; 0 or less uses the function's limit"`
		Temperature  *float64 `json:"temperature,omitempty" minimum:"0" maximum:"1" doc:"Sampling temperature override; 0 is honoured"`
	}
}

// ChatBody is the relayed completion.
type ChatBody struct {
	Response string `json:"response" doc:"Generated text"`
	Usage    any    `json:"usage" doc:"Upstream usage object, passed through unchanged"`
	Model    string `json:"model" doc:"Model reported by the upstream"`
	Function string `json:"function" doc:"Function display name, or the custom label"`
}

// ChatOutput is the chat response.
type ChatOutput struct {
	Body ChatBody
}

// Chat resolves the request against the function registry and relays it upstream.
func (h *Handlers) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	logger := logging.FromContext(ctx, h.logger)

	resolved, err := resolver.Resolve(h.profiles, resolver.Request{
		Action:       input.Body.Action,
		CustomPrompt: input.Body.CustomPrompt,
		Message:      input.Body.Message,
		Model:        input.Body.Model,
		MaxTokens:    input.Body.MaxTokens,
		Temperature:  input.Body.Temperature,
	})
	if err != nil {
		detail := err.Error()
		var ve *resolver.ValidationError
		if errors.As(err, &ve) {
			detail = ve.Detail()
		}
		logger.Info("chat request rejected", "error", detail)
		return nil, ToAPIError(err)
	}

	comp, err := h.llm.Complete(ctx, resolved)
	if err != nil {
		logger.Error("chat request failed", "function", resolved.FunctionID(), "error", err)
		return nil, ToAPIError(err)
	}

	return &ChatOutput{
		Body: ChatBody{
			Response: comp.Text,
			Usage:    comp.Usage,
			Model:    comp.Model,
			Function: resolved.FunctionName(),
		},
	}, nil
}
