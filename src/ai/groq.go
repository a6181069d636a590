package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultGroqModel   = "llama3-70b-8192"
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1/"
	groqTemperature    = 0.3
	groqMaxTokens      = 1024
)

// GroqProvider uses Groq's OpenAI-compatible chat completions endpoint.
type GroqProvider struct {
	client openai.Client
	model  string
}

type GroqOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewGroqProvider(opts GroqOptions) (*GroqProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}
	model := opts.Model
	if model == "" {
		model = DefaultGroqModel
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &GroqProvider{client: client, model: model}, nil
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Complete(ctx context.Context, req Request) (string, error) {
	pr := groqPrompt(req)
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(pr.System),
			openai.UserMessage(pr.User),
		},
		// Low temperature keeps edits deterministic.
		Temperature: openai.Float(groqTemperature),
		MaxTokens:   openai.Int(groqMaxTokens),
		TopP:        openai.Float(1),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in Groq response")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
