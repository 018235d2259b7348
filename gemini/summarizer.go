// Package gemini implements pagegist.Summarizer on Google Gemini.
package gemini

import (
	"context"
	"errors"

	"github.com/fwojciec/pagegist"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements pagegist.Summarizer at compile time.
var _ pagegist.Summarizer = (*Summarizer)(nil)

// Summarizer implements pagegist.Summarizer using Google Gemini.
// The client carries the server's own key; per-request keys are ignored.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects
// DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize asks Gemini to summarize the joined block text.
func (s *Summarizer) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: pagegist.JoinText(req.Content)}},
		}},
		BuildConfig(req.Mode),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, pagegist.Errorf(pagegist.EBACKEND, "%s", apiErr.Message)
		}
		return nil, pagegist.Errorf(pagegist.EBACKEND, "gemini: %v", err)
	}
	if result == nil {
		return nil, pagegist.Errorf(pagegist.EBACKEND, "gemini returned nil result")
	}

	return &pagegist.SummarizeResponse{Summary: result.Text()}, nil
}

// BuildConfig returns the GenerateContentConfig for a summary in mode.
func BuildConfig(mode pagegist.Mode) *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: pagegist.SystemPrompt(mode)}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 200,
	}
}
