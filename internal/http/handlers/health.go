package handlers

import (
	"context"
)

// TimestampLayout is ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HealthMessage is the fixed liveness message.
const HealthMessage = "השרת פועל תקין"

// HealthBody is the health check payload.
type HealthBody struct {
	Status         string `json:"status" example:"ok"`
	Timestamp      string `json:"timestamp" doc:"Server time, ISO-8601 UTC with milliseconds"`
	Message        string `json:"message"`
	FunctionsCount int    `json:"functionsCount" doc:"Number of registered functions"`
}

// HealthOutput represents health check response.
type HealthOutput struct {
	Body HealthBody
}

// Health reports liveness and the size of the function registry.
func (h *Handlers) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthBody{
			Status:         "ok",
			Timestamp:      h.now().UTC().Format(TimestampLayout),
			Message:        HealthMessage,
			FunctionsCount: h.profiles.Len(),
		},
	}, nil
}

// LivezOutput is the hidden probe response.
type LivezOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// Livez is a minimal liveness probe for orchestrators.
func (h *Handlers) Livez(ctx context.Context, input *struct{}) (*LivezOutput, error) {
	out := &LivezOutput{}
	out.Body.Status = "ok"
	return out, nil
}
