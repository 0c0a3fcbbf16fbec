package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ratonica/internal/domain"
)

// DefaultPrompt asks the model for a short marketplace search phrase.
const DefaultPrompt = "Describe the clothing item in this image as a short marketplace search phrase " +
	"(era, brand if visible, garment, notable details). Reply with the phrase only."

const defaultMaxTokens = 64

// VisionAnalyzer describes images through an OpenAI-compatible chat completions API.
type VisionAnalyzer struct {
	client *openai.Client
	model  string
	prompt string
	logger *zap.Logger
}

// Config holds the vision provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Prompt  string
	Logger  *zap.Logger
}

// NewVisionAnalyzer creates an OpenAI-compatible vision analyzer.
func NewVisionAnalyzer(cfg *Config) *VisionAnalyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &VisionAnalyzer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		prompt: prompt,
		logger: logger,
	}
}

// Analyze implements domain.Analyzer. The payload is passed through as the image URL,
// so both https URLs and base64 data URLs work.
func (v *VisionAnalyzer) Analyze(ctx context.Context, payload string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     v.model,
		MaxTokens: defaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: v.prompt},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    payload,
						Detail: openai.ImageURLDetailLow,
					},
				},
			},
		}},
	}

	resp, err := v.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty vision response: %w", domain.ErrVisionProviderError)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("blank vision response: %w", domain.ErrVisionProviderError)
	}

	v.logger.Debug("Vision completion",
		zap.String("model", v.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return text, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (v *VisionAnalyzer) HealthCheck(ctx context.Context) error {
	if _, err := v.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrVisionProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrVisionProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("vision API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("vision API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("vision API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("vision request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
