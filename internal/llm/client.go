package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tidwall/gjson"

	"github.com/tikkun/tikkun-api/internal/logging"
	"github.com/tikkun/tikkun-api/internal/metrics"
	"github.com/tikkun/tikkun-api/internal/resolver"
)

const (
	// DefaultBaseURL is the public Anthropic API.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultVersion is sent as the anthropic-version header.
	DefaultVersion = "2023-06-01"

	messagesPath = "/v1/messages"
)

// Config configures the upstream client.
type Config struct {
	APIKey  string
	BaseURL string
	Version string

	// HTTPClient is used for the upstream call. It should carry no Timeout;
	// the request context bounds each call.
	HTTPClient *http.Client
}

// Client relays one resolved request to the Messages API per call.
// It is safe for concurrent use.
type Client struct {
	apiKey     string
	endpoint   string
	version    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a client. A nil logger uses slog.Default; nil metrics
// disables recording.
func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   baseURL + messagesPath,
		version:    version,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Completion is the relayed upstream result.
type Completion struct {
	// Text is the first content block's text.
	Text string

	// Usage is the upstream usage object, passed through unchanged.
	Usage any

	// Model is the model the upstream reports having used.
	Model string

	// Function is the profile display name or the custom label.
	Function string

	// CallID correlates log lines for this call.
	CallID string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

// Complete performs a single Messages call. There are no retries; the
// context carries cancellation from the inbound request.
func (c *Client) Complete(ctx context.Context, r resolver.Resolved) (*Completion, error) {
	function := r.FunctionID()
	if !c.HasCredential() {
		c.metrics.ObserveCall(function, metrics.OutcomeNoKey, 0)
		return nil, ErrMissingCredential
	}

	callID := ulid.Make().String()
	logger := logging.FromContext(ctx, c.logger).With(
		"call_id", callID,
		"function", function,
		"model", r.Model,
	)

	payload, err := json.Marshal(messagesRequest{
		Model:       r.Model,
		MaxTokens:   r.MaxTokens,
		Temperature: r.Temperature,
		System:      r.SystemPrompt,
		Messages:    []message{{Role: "user", Content: r.Message}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", c.version)

	logger.Debug("sending upstream request",
		"message_length", len(r.Message),
		"max_tokens", r.MaxTokens,
		"temperature", r.Temperature,
	)

	start := time.Now()
	comp, err := c.do(req, logger)
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeRejected
		var ue *UpstreamError
		if errors.As(err, &ue) {
			outcome = ue.Outcome()
		}
		c.metrics.ObserveCall(function, outcome, elapsed)
		logger.Error("upstream call failed", "outcome", outcome, "duration", elapsed, "error", err)
		return nil, err
	}

	c.metrics.ObserveCall(function, metrics.OutcomeOK, elapsed)
	comp.Function = r.FunctionName()
	comp.CallID = callID

	logger.Info("upstream call completed",
		"upstream_model", comp.Model,
		"duration", elapsed,
		"response_length", len(comp.Text),
	)
	return comp, nil
}

func (c *Client) do(req *http.Request, logger *slog.Logger) (*Completion, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unreachable(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("upstream returned error status",
			"status_code", resp.StatusCode,
			"response_length", len(body),
		)
		return nil, rejected(resp.StatusCode, errorMessage(body))
	}

	if !gjson.ValidBytes(body) {
		return nil, rejected(resp.StatusCode, "invalid response from upstream")
	}

	text := gjson.GetBytes(body, "content.0.text")
	if !text.Exists() {
		return nil, rejected(resp.StatusCode, "upstream response contained no text content")
	}

	usage := gjson.GetBytes(body, "usage")
	c.metrics.AddTokens(usage.Get("input_tokens").Int(), usage.Get("output_tokens").Int())

	return &Completion{
		Text:  text.String(),
		Usage: usage.Value(),
		Model: gjson.GetBytes(body, "model").String(),
	}, nil
}

// errorMessage extracts error.message from an Anthropic error envelope.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	msg := gjson.GetBytes(body, "error.message")
	if msg.Type != gjson.String {
		return ""
	}
	return msg.String()
}
