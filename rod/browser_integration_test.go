//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html><html><head><style>.ad { display: none }</style></head><body>
<header><h1>Site banner</h1></header>
<main>
<h2>Rendered heading</h2>
<p>This paragraph is rendered by the browser and is long enough to keep.</p>
<p class="ad">This advertisement is hidden by a stylesheet and must be skipped.</p>
<p id="late"></p>
</main>
<script>document.getElementById("late").textContent = "Script-written paragraph that only exists after JavaScript runs.";</script>
</body></html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBrowser_Integration_ExtractsRenderedPage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)
	defer browser.Close()

	srv := newPageServer(t)
	_, err = browser.Open(ctx, srv.URL)
	require.NoError(t, err)

	tab, err := browser.ActiveTab(ctx)
	require.NoError(t, err)
	require.NoError(t, tab.Inject(ctx))

	resp, err := tab.Send(ctx, pagegist.Message{Type: pagegist.MessageExtractPage})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, []pagegist.Block{
		{Kind: pagegist.BlockHeading, Level: 2, Text: "Rendered heading"},
		{Kind: pagegist.BlockParagraph, Text: "This paragraph is rendered by the browser and is long enough to keep."},
		{Kind: pagegist.BlockParagraph, Text: "Script-written paragraph that only exists after JavaScript runs."},
	}, resp.Extracted)
}

func TestBrowser_Integration_SendBeforeInject(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)
	defer browser.Close()

	tab, err := browser.Open(ctx, newPageServer(t).URL)
	require.NoError(t, err)

	_, err = tab.Send(ctx, pagegist.Message{Type: pagegist.MessageExtractPage})

	assert.Equal(t, pagegist.ETRANSPORT, pagegist.ErrorCode(err))
}

func TestBrowser_Integration_RefusesBrowserPages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)
	defer browser.Close()

	tab, err := browser.Open(ctx, "about:blank")
	require.NoError(t, err)

	err = tab.Inject(ctx)

	assert.Equal(t, pagegist.EENVIRONMENT, pagegist.ErrorCode(err))
}

func TestBrowser_Integration_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)
	assert.NotZero(t, browser.LauncherPID())

	require.NoError(t, browser.Close())
	require.NoError(t, browser.Close())
}
