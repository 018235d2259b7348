// Package slog provides logging decorators for pagegist services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagegist"
)

// Ensure LoggingSummarizer implements pagegist.Summarizer.
var _ pagegist.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   pagegist.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next pagegist.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
// The API key is never logged.
func (s *LoggingSummarizer) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (resp *pagegist.SummarizeResponse, err error) {
	defer func(begin time.Time) {
		chars := 0
		if resp != nil {
			chars = len(resp.Summary)
		}
		s.logger.Info("summarize",
			"mode", req.Mode,
			"blocks", len(req.Content),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, req)
}
