// Package openai wraps the OpenAI SDK behind the single completion shape
// the extraction pipeline needs: one prompt in, one text response out.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// Extraction calls favor determinism over creativity, so they run at
	// a lower temperature than conversational replies, with a
	// conservative output ceiling per parameter.
	extractionTemperature = 0.2
	extractionMaxTokens   = 150
)

type Client struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: extractionTemperature,
		maxTokens:   extractionMaxTokens,
	}
}

// SetTestBaseURL points the underlying SDK at a test server. Test use only.
func (c *Client) SetTestBaseURL(url string) {
	c.client = openai.NewClient(option.WithAPIKey("test-key"), option.WithBaseURL(url), option.WithMaxRetries(0))
}

// Complete sends a single-prompt completion request and returns the text
// of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}
	return resp.Choices[0].Message.Content, nil
}
