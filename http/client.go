package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/jsonapi"
	"github.com/fwojciec/pagegist"
)

// DefaultBackendURL is the local summarization backend.
const DefaultBackendURL = "http://127.0.0.1:8000"

// Ensure Client implements pagegist.Summarizer at compile time.
var _ pagegist.Summarizer = (*Client)(nil)

// Client sends extracted content to the summarization backend.
type Client struct {
	baseURL string
}

// NewClient returns a Client for the backend at baseURL.
// An empty baseURL selects DefaultBackendURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	return &Client{baseURL: baseURL}
}

// Summarize posts req to the backend's /summarize endpoint.
// Non-success statuses return EBACKEND carrying the server's detail
// message when present; network failures return ETRANSPORT.
func (c *Client) Summarize(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
	url, err := jsonapi.URL(c.baseURL).Path("summarize").String()
	if err != nil {
		return nil, pagegist.Errorf(pagegist.EINVALID, "invalid backend URL: %v", err)
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Content-Type", "application/json"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "error contacting backend: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "error reading backend response: %v", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, backendError(jsonapi.InvalidStatusError{Status: res.StatusCode, Body: string(body)})
	}

	var resp pagegist.SummarizeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, pagegist.Errorf(pagegist.EBACKEND, "invalid backend response")
	}
	return &resp, nil
}

// backendError converts a non-success response into EBACKEND, preferring
// the detail field of the body.
func backendError(e jsonapi.InvalidStatusError) error {
	var er pagegist.ErrorResponse
	if err := json.Unmarshal([]byte(e.Body), &er); err == nil && er.Detail != "" {
		return pagegist.Errorf(pagegist.EBACKEND, "%s", er.Detail)
	}
	return pagegist.Errorf(pagegist.EBACKEND, "backend error (HTTP %d)", e.Status)
}
