package mock

import (
	"context"

	"github.com/fwojciec/pagegist"
)

var _ pagegist.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of pagegist.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error)
}

func (s *Summarizer) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
	return s.SummarizeFn(ctx, req)
}
