// Package llm provides the text-generation client used for assessment
// question generation.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when no generation credential was configured.
// Callers must treat this as a hard precondition failure and not retry.
var ErrUnavailable = errors.New("text generation is not configured: missing API key")

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateJSON generates JSON content from a prompt.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a generation client. An empty API key yields an
// explicitly unconfigured client whose calls fail with ErrUnavailable,
// so call sites never need their own credential checks.
func NewClient(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return Unconfigured{}, nil
	}
	return NewGeminiClient(ctx, apiKey, model)
}

// Unconfigured is the disabled variant of Client.
type Unconfigured struct{}

// GenerateJSON always fails with ErrUnavailable.
func (Unconfigured) GenerateJSON(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Close is a no-op.
func (Unconfigured) Close() error { return nil }

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateJSON generates JSON content from a prompt.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.2) // low temperature for consistent question shape
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return cleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
