package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagegist"
	main "github.com/fwojciec/pagegist/cmd/pagegist"
	"github.com/fwojciec/pagegist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main whose databases live in a temporary directory.
func newMain(t *testing.T) *main.Main {
	t.Helper()
	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "pagegist.db")
	m.SessionDBPath = filepath.Join(dir, "session.db")
	return m
}

func run(t *testing.T, m *main.Main, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = m.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

// articleTab returns a TabSource whose active tab yields a fixed article.
func articleTab() main.TabSource {
	tab := &mock.Tab{
		IDValue:  "tab-1",
		URLValue: "https://example.com/article",
		InjectFn: func(ctx context.Context) error { return nil },
		SendFn: func(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
			return &pagegist.ExtractResponse{Extracted: []pagegist.Block{
				{Kind: pagegist.BlockHeading, Level: 1, Text: "Volcanoes"},
				{Kind: pagegist.BlockParagraph, Text: "Volcanoes form where magma from deep underground reaches the surface."},
			}}, nil
		},
	}
	return func(ctx context.Context, opts main.TabOptions) (pagegist.TabLocator, func() error, error) {
		locator := &mock.TabLocator{
			ActiveTabFn: func(ctx context.Context) (pagegist.Tab, error) { return tab, nil },
		}
		return locator, func() error { return nil }, nil
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newMain(t), "--help")

	require.NoError(t, err)
	for _, cmd := range []string{"key", "modes", "extract", "summarize"} {
		assert.Contains(t, stdout, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, stdout, "Usage:")
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, newMain(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Modes(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newMain(t), "modes")

	require.NoError(t, err)
	assert.Contains(t, stdout, "like_i_am_5 (default)")
	assert.Contains(t, stdout, "bullet_points")
}

func TestMain_Run_Key(t *testing.T) {
	t.Parallel()

	t.Run("remembered key survives across runs", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		stdout, _, err := run(t, m, "key", "save", "sk-remember-me", "--remember")
		require.NoError(t, err)
		assert.Contains(t, stdout, "API key saved")

		stdout, _, err = run(t, m, "key", "status")
		require.NoError(t, err)
		assert.Contains(t, stdout, "remembered")
	})

	t.Run("unremembered key is session only", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		stdout, _, err := run(t, m, "key", "save", "sk-session")
		require.NoError(t, err)
		assert.Contains(t, stdout, "this session")

		stdout, _, err = run(t, m, "key", "status")
		require.NoError(t, err)
		assert.Contains(t, stdout, "this session only")
	})

	t.Run("rejects keys without the sk- prefix", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		_, stderr, err := run(t, m, "key", "save", "not-a-key")

		require.Error(t, err)
		assert.Equal(t, pagegist.ECONFIG, pagegist.ErrorCode(err))
		assert.Contains(t, stderr, "invalid API key")
	})

	t.Run("clear forgets the key", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		_, _, err := run(t, m, "key", "save", "sk-forget-me", "--remember")
		require.NoError(t, err)

		_, _, err = run(t, m, "key", "clear")
		require.NoError(t, err)

		stdout, _, err := run(t, m, "key", "status")
		require.NoError(t, err)
		assert.Contains(t, stdout, "not set")
	})
}

func TestMain_Run_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("prints the summary using the saved key", func(t *testing.T) {
		t.Parallel()

		var got *pagegist.SummarizeRequest
		m := newMain(t)
		m.Tabs = articleTab()
		m.Summarizer = &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				got = req
				return &pagegist.SummarizeResponse{Summary: "Mountains that let hot rock out."}, nil
			},
		}
		_, _, err := run(t, m, "key", "save", "sk-saved", "--remember")
		require.NoError(t, err)

		stdout, stderr, err := run(t, m, "summarize", "https://example.com/article")

		require.NoError(t, err)
		assert.Equal(t, "Mountains that let hot rock out.\n", stdout)
		assert.Contains(t, stderr, "[extracting]")
		assert.Contains(t, stderr, "[done]")
		require.NotNil(t, got)
		assert.Equal(t, "sk-saved", got.APIKey)
		assert.Equal(t, pagegist.ModeLikeIAm5, got.Mode)
	})

	t.Run("key flag and mode flag override defaults", func(t *testing.T) {
		t.Parallel()

		var got *pagegist.SummarizeRequest
		m := newMain(t)
		m.Tabs = articleTab()
		m.Summarizer = &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				got = req
				return &pagegist.SummarizeResponse{Summary: "- magma\n- surface"}, nil
			},
		}

		_, _, err := run(t, m, "summarize", "https://example.com/article", "--key", "sk-typed", "--mode", "bullet_points")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sk-typed", got.APIKey)
		assert.Equal(t, pagegist.ModeBulletPoints, got.Mode)
	})

	t.Run("fails without a key and never calls the backend", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Tabs = articleTab()
		m.Summarizer = &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				t.Fatal("backend must not be called")
				return nil, nil
			},
		}

		stdout, _, err := run(t, m, "summarize", "https://example.com/article")

		require.Error(t, err)
		assert.Equal(t, pagegist.ECONFIG, pagegist.ErrorCode(err))
		assert.Equal(t, "no credential\n", stdout)
	})

	t.Run("rejects unknown modes", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Tabs = articleTab()
		m.Summarizer = &mock.Summarizer{}

		_, _, err := run(t, m, "summarize", "https://example.com/article", "--key", "sk-typed", "--mode", "haiku")

		assert.Equal(t, pagegist.EINVALID, pagegist.ErrorCode(err))
	})

	t.Run("shows the backend detail on failure", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Tabs = articleTab()
		m.Summarizer = &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, req *pagegist.SummarizeRequest) (*pagegist.SummarizeResponse, error) {
				return nil, pagegist.Errorf(pagegist.EBACKEND, "rate limited")
			},
		}

		stdout, stderr, err := run(t, m, "summarize", "https://example.com/article", "--key", "sk-typed")

		require.Error(t, err)
		assert.Equal(t, "rate limited\n", stdout)
		assert.Contains(t, stderr, "[failed] rate limited")
	})
}

func TestMain_Run_Extract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><footer><p>Footer text that is certainly longer than forty characters.</p></footer>
<h3>Recipe</h3><p>Mix the flour and water together until a smooth dough forms.</p></body></html>`))
	}))
	defer server.Close()

	stdout, _, err := run(t, newMain(t), "extract", server.URL)

	require.NoError(t, err)
	var blocks []pagegist.Block
	require.NoError(t, json.Unmarshal([]byte(stdout), &blocks))
	assert.Equal(t, []pagegist.Block{
		{Kind: pagegist.BlockHeading, Level: 3, Text: "Recipe"},
		{Kind: pagegist.BlockParagraph, Text: "Mix the flour and water together until a smooth dough forms."},
	}, blocks)
}
