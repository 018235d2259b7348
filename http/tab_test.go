package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/pagegist"
	pghttp "github.com/fwojciec/pagegist/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><style>.promo { display: none }</style></head><body>
<nav><p>Navigation links that should never show up in the extracted output at all.</p></nav>
<h1>Article Title</h1>
<p>This paragraph is clearly long enough to pass the minimum length filter.</p>
<p>Too short.</p>
<p class="promo">A hidden promotional paragraph that is long enough but never rendered.</p>
</body></html>`

func TestTab(t *testing.T) {
	t.Parallel()

	t.Run("extracts readable blocks after injection", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(articleHTML))
		}))
		defer server.Close()

		tab := pghttp.NewTab(pghttp.NewFetcher(), server.URL)
		require.NoError(t, tab.Inject(context.Background()))

		resp, err := tab.Send(context.Background(), pagegist.Message{Type: pagegist.MessageExtractPage})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, []pagegist.Block{
			{Kind: pagegist.BlockHeading, Level: 1, Text: "Article Title"},
			{Kind: pagegist.BlockParagraph, Text: "This paragraph is clearly long enough to pass the minimum length filter."},
		}, resp.Extracted)
	})

	t.Run("send before inject has no receiver", func(t *testing.T) {
		t.Parallel()

		tab := pghttp.NewTab(pghttp.NewFetcher(), "https://example.com")

		_, err := tab.Send(context.Background(), pagegist.Message{Type: pagegist.MessageExtractPage})

		assert.Equal(t, pagegist.ETRANSPORT, pagegist.ErrorCode(err))
	})

	t.Run("inject refuses non-web schemes", func(t *testing.T) {
		t.Parallel()

		tab := pghttp.NewTab(pghttp.NewFetcher(), "chrome://settings")

		err := tab.Inject(context.Background())

		assert.Equal(t, pagegist.EENVIRONMENT, pagegist.ErrorCode(err))
	})

	t.Run("inject reports pages that fail to load", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		err := pghttp.NewTab(pghttp.NewFetcher(), server.URL).Inject(context.Background())

		assert.Equal(t, pagegist.EENVIRONMENT, pagegist.ErrorCode(err))
	})

	t.Run("repeated injection fetches once", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(articleHTML))
		}))
		defer server.Close()

		tab := pghttp.NewTab(pghttp.NewFetcher(), server.URL)
		require.NoError(t, tab.Inject(context.Background()))
		require.NoError(t, tab.Inject(context.Background()))

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("unknown messages get no reply", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(articleHTML))
		}))
		defer server.Close()

		tab := pghttp.NewTab(pghttp.NewFetcher(), server.URL)
		require.NoError(t, tab.Inject(context.Background()))

		resp, err := tab.Send(context.Background(), pagegist.Message{Type: "PING"})

		require.NoError(t, err)
		assert.Nil(t, resp)
	})
}

func TestTabLocator_ActiveTab(t *testing.T) {
	t.Parallel()

	t.Run("returns the tab for the URL", func(t *testing.T) {
		t.Parallel()

		tab, err := pghttp.NewTabLocator(pghttp.NewFetcher(), "https://example.com/a").ActiveTab(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", tab.URL())
		assert.NotEmpty(t, tab.ID())
	})

	t.Run("empty URL means no active tab", func(t *testing.T) {
		t.Parallel()

		_, err := pghttp.NewTabLocator(pghttp.NewFetcher(), "").ActiveTab(context.Background())

		assert.Equal(t, pagegist.ENOTFOUND, pagegist.ErrorCode(err))
	})
}
