// Package langchaingo implements pagegist.Summarizer on any langchaingo
// model, typically a local Ollama server.
package langchaingo

import (
	"context"
	"errors"

	"github.com/fwojciec/pagegist"
	"github.com/tmc/langchaingo/llms"
)

// Ensure Summarizer implements pagegist.Summarizer at compile time.
var _ pagegist.Summarizer = (*Summarizer)(nil)

// Summarizer summarizes with a langchaingo model.
type Summarizer struct {
	llm llms.Model
}

// NewSummarizer creates a Summarizer backed by llm.
func NewSummarizer(llm llms.Model) *Summarizer {
	return &Summarizer{llm: llm}
}

// Summarize sends the mode's system prompt and the joined block text.
func (s *Summarizer) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, pagegist.SystemPrompt(req.Mode)),
		llms.TextParts(llms.ChatMessageTypeHuman, pagegist.JoinText(req.Content)),
	}
	resp, err := s.llm.GenerateContent(ctx, msgs,
		llms.WithMaxTokens(200),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, pagegist.Errorf(pagegist.EBACKEND, "failed to generate content: %v", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return &pagegist.SummarizeResponse{}, nil
	}
	return &pagegist.SummarizeResponse{Summary: resp.Choices[0].Content}, nil
}
