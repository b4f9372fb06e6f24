package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
)

// HTTPLLMRepository implements the LLMRepository interface against any
// OpenAI-compatible chat completion endpoint.
type HTTPLLMRepository struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPLLMRepository creates a new HTTP LLM repository
func NewHTTPLLMRepository(baseURL, apiKey, model string, logger logger.Logger) repository.LLMRepository {
	return &HTTPLLMRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []entity.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the message list to the model and returns the first choice.
func (r *HTTPLLMRepository) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64, maxTokens int) (string, error) {
	payload := chatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", entity.ErrLLM, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", entity.ErrLLM, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrLLM, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", entity.ErrLLM, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("LLM request failed", "status", resp.StatusCode, "body", truncateForLog(raw))
		return "", fmt.Errorf("%w: status %d", entity.ErrLLM, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", entity.ErrLLM, err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrLLM, completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", entity.ErrLLM)
	}

	return completion.Choices[0].Message.Content, nil
}

func truncateForLog(raw []byte) string {
	const max = 256
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
