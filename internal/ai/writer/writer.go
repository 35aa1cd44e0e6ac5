// Package writer drafts long-form copy with a hosted model. It backs the
// ai-writer tool when an API key is configured; the dispatcher falls back to
// the local template writer otherwise.
package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Writer wraps the OpenAI chat completion API.
type Writer struct {
	client *openai.Client
	model  openai.ChatModel
}

// New creates a writer authenticated with the given API key.
func New(apiKey string) *Writer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Writer{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

const systemPrompt = `You are a professional copywriter. Write a clear, well-structured draft on the topic the user provides.
Use a short title, two to three paragraphs, and a concluding sentence. Return plain text only, no markdown.`

// Draft generates a structured draft for the topic.
func (w *Writer) Draft(ctx context.Context, topic string) (string, error) {
	resp, err := w.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: w.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Write a draft about: %s", topic)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
