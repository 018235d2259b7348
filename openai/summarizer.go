// Package openai implements pagegist.Summarizer on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"

	"github.com/fwojciec/pagegist"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4.1-mini"

	maxTokens   = 200
	temperature = 0.3
)

// Ensure Summarizer implements pagegist.Summarizer at compile time.
var _ pagegist.Summarizer = (*Summarizer)(nil)

// Summarizer calls OpenAI with the API key carried by each request.
type Summarizer struct {
	model   string
	baseURL string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// WithBaseURL points the Summarizer at an OpenAI-compatible API.
func WithBaseURL(baseURL string) Option {
	return func(s *Summarizer) {
		s.baseURL = baseURL
	}
}

// NewSummarizer creates a Summarizer using DefaultModel unless overridden.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize sends the joined block text to the chat completions endpoint
// with the system prompt for req.Mode.
func (s *Summarizer) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.APIKey == "" {
		return nil, pagegist.Errorf(pagegist.ECONFIG, "API key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		opts = append(opts, option.WithBaseURL(s.baseURL))
	}
	client := openai.NewClient(opts...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(pagegist.SystemPrompt(req.Mode)),
			openai.UserMessage(pagegist.JoinText(req.Content)),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return nil, providerError(err)
	}
	if len(completion.Choices) == 0 {
		return &pagegist.SummarizeResponse{}, nil
	}
	return &pagegist.SummarizeResponse{Summary: completion.Choices[0].Message.Content}, nil
}

func providerError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return pagegist.Errorf(pagegist.EBACKEND, "%s", apiErr.Message)
		}
		return pagegist.Errorf(pagegist.EBACKEND, "provider error (HTTP %d)", apiErr.StatusCode)
	}
	return pagegist.Errorf(pagegist.EBACKEND, "failed to reach provider: %v", err)
}
