package pagegist

import "context"

// SummarizeRequest is the payload sent to the summarization backend.
type SummarizeRequest struct {
	Content []Block `json:"content"`
	APIKey  string  `json:"apiKey"`
	Mode    Mode    `json:"mode"`
}

// Validate returns an error if the request cannot be summarized.
func (r *SummarizeRequest) Validate() error {
	if JoinText(r.Content) == "" {
		return Errorf(EINVALID, "content required")
	}
	return nil
}

// SummarizeResponse is the backend's success payload.
// An empty Summary means the backend returned none.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the backend's error payload.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}

// Summarizer turns extracted content into a summary.
// The HTTP client and every backend provider implement it.
type Summarizer interface {
	// Summarize returns the summary for req.
	// Returns EBACKEND for backend failures and ETRANSPORT when the
	// backend cannot be reached.
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error)
}
