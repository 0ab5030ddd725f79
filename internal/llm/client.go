package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"smartpantry/internal/metrics"
)

// Client is the text-generation collaborator. Errors are returned as-is:
// every caller owns its own degrade path, so nothing is swallowed here.
type Client struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

func New(apiKey, model string, timeout time.Duration) (*Client, error) {
	m, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing openai client: %w", err)
	}

	return &Client{
		model:       m,
		temperature: 0.7,
		timeout:     timeout,
	}, nil
}

// Generate sends a system persona plus user prompt and returns the trimmed
// completion text. Each call is bounded by the configured timeout so a slow
// collaborator cannot stall the caller indefinitely.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("generate_text", "error").Inc()
		return "", fmt.Errorf("generating completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		metrics.CollaboratorCalls.WithLabelValues("generate_text", "error").Inc()
		return "", fmt.Errorf("empty completion response")
	}

	metrics.CollaboratorCalls.WithLabelValues("generate_text", "ok").Inc()

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
