package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/metrics"
)

// DefaultBaseURL points at Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "llama3-70b-8192"

// Inferer is a chat completion provider using the OpenAI-compatible API (Groq, OpenAI, vLLM...).
type Inferer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	user        string
	provider    string
	logger      *zap.Logger
}

// Config holds the inference provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Temperature 0 leaves the provider default in place.
	Temperature float32
	MaxTokens   int
	User        string
	Provider    string
	Logger      *zap.Logger
}

// NewInferer creates an OpenAI-compatible chat inferer.
// Returns domain.ErrMissingCredential when no API key is configured.
func NewInferer(cfg *Config) (*Inferer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai inferer: %w", domain.ErrMissingCredential)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL

	return &Inferer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		user:        cfg.User,
		provider:    cfg.Provider,
		logger:      logger,
	}, nil
}

// Model returns the configured model name.
func (e *Inferer) Model() string { return e.model }

// Infer implements domain.Inferer. Returns the first choice verbatim with transport-level metrics.
func (e *Inferer) Infer(ctx context.Context, system, user string) (domain.InferenceResult, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		User:        e.user,
	}

	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.InferenceErrorsTotal.WithLabelValues(e.provider, e.model, "api_error").Inc()
		e.logger.Debug("chat completion failed", zap.Duration("duration", duration), zap.Error(err))
		return domain.InferenceResult{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.InferenceRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.InferenceErrorsTotal.WithLabelValues(e.provider, e.model, "empty_response").Inc()
		return domain.InferenceResult{}, fmt.Errorf("empty chat completion response: %w", domain.ErrInferenceProvider)
	}

	metrics.InferenceRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.InferenceRequestDuration.WithLabelValues(e.provider, e.model).Observe(duration.Seconds())

	usage := resp.Usage
	if usage.TotalTokens > 0 {
		metrics.InferenceTokensTotal.WithLabelValues(e.provider, e.model, "prompt").Add(float64(usage.PromptTokens))
		metrics.InferenceTokensTotal.WithLabelValues(e.provider, e.model, "completion").Add(float64(usage.CompletionTokens))
		metrics.InferenceTokensTotal.WithLabelValues(e.provider, e.model, "total").Add(float64(usage.TotalTokens))
	}

	return domain.InferenceResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Inferer) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrInferenceProvider for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrInferenceProvider

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("chat request: %w: %w", wrap, err)
	}

	return fmt.Errorf("chat request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (FastAPI-style providers).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
