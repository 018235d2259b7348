package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/mock"
	pgslog "github.com/fwojciec/pagegist/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	req := &pagegist.SummarizeRequest{
		Content: []pagegist.Block{{Kind: pagegist.BlockHeading, Level: 1, Text: "Title"}},
		APIKey:  "sk-secret-value",
		Mode:    pagegist.ModeConcise,
	}

	t.Run("logs mode, block count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				return &pagegist.SummarizeResponse{Summary: "done"}, nil
			},
		}

		resp, err := pgslog.NewLoggingSummarizer(inner, logger).Summarize(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "done", resp.Summary)
		output := buf.String()
		assert.Contains(t, output, "summarize")
		assert.Contains(t, output, "mode=concise")
		assert.Contains(t, output, "blocks=1")
		assert.Contains(t, output, "chars=4")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "sk-secret-value")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				return nil, errors.New("backend down")
			},
		}

		_, err := pgslog.NewLoggingSummarizer(inner, logger).Summarize(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"backend down\"")
	})
}
