package caption

import (
	"context"
	"fmt"
	"strings"

	"github.com/conneroisu/groq-go"
)

const (
	defaultModel = "llama-3.3-70b-versatile"

	captionSystem = "You write short, punchy Instagram captions for videos. Reply with the caption text only, no surrounding quotes. At most two sentences, up to three hashtags."
	titleSystem   = "You write concise YouTube video titles under 70 characters. Reply with the title only, no surrounding quotes."
)

// Generator produces captions and titles for videos that are published
// without caller-supplied metadata.
type Generator struct {
	client *groq.Client
	model  groq.ChatModel
}

func NewGenerator(apiKey, model string) (*Generator, error) {
	if model == "" {
		model = defaultModel
	}

	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &Generator{
		client: client,
		model:  groq.ChatModel(model),
	}, nil
}

func (g *Generator) Caption(ctx context.Context, topic string) (string, error) {
	return g.generate(ctx, captionSystem, topic)
}

func (g *Generator) Title(ctx context.Context, topic string) (string, error) {
	return g.generate(ctx, titleSystem, topic)
}

func (g *Generator) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: g.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: systemPrompt},
			{Role: groq.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return strings.Trim(content, `"`), nil
}
