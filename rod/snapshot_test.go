package rod_test

import (
	"testing"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/extract"
	"github.com/fwojciec/pagegist/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `{
  "tag": "BODY", "display": "block", "visibility": "visible", "rendered": false,
  "children": [
    {"tag": "H1", "display": "block", "visibility": "visible", "rendered": true, "text": "Welcome", "children": []},
    {"tag": "NAV", "display": "block", "visibility": "visible", "rendered": true, "children": [
      {"tag": "P", "display": "block", "visibility": "visible", "rendered": true, "text": "Navigation paragraph that is long enough to be kept if not ignored.", "children": []}
    ]},
    {"tag": "DIV", "display": "block", "visibility": "visible", "rendered": true, "children": [
      {"tag": "P", "display": "block", "visibility": "visible", "rendered": true, "text": "A visible paragraph inside a div with more than forty characters.", "children": []},
      {"tag": "P", "display": "block", "visibility": "hidden", "rendered": true, "text": "A hidden paragraph inside a div with more than forty characters.", "children": []}
    ]},
    {"tag": "SECTION", "display": "block", "visibility": "visible", "rendered": false, "children": [
      {"tag": "P", "display": "block", "visibility": "visible", "rendered": true, "text": "Inside an unrendered section, long enough to pass the filter.", "children": []}
    ]}
  ]
}`

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("builds the element tree", func(t *testing.T) {
		t.Parallel()

		doc, err := rod.ParseSnapshot(snapshot)
		require.NoError(t, err)

		body := doc.Body()
		require.NotNil(t, body)
		assert.Equal(t, "BODY", body.TagName())
		assert.True(t, body.HasLayoutBox())
		require.Len(t, body.Children(), 4)

		h1 := body.Children()[0]
		assert.Equal(t, "H1", h1.TagName())
		assert.Equal(t, "Welcome", h1.InnerText())
		assert.Equal(t, pagegist.Style{Display: "block", Visibility: "visible"}, h1.Style())
	})

	t.Run("descendants of unrendered elements have no layout box", func(t *testing.T) {
		t.Parallel()

		doc, err := rod.ParseSnapshot(snapshot)
		require.NoError(t, err)

		section := doc.Body().Children()[3]
		assert.False(t, section.HasLayoutBox())
		assert.False(t, section.Children()[0].HasLayoutBox())
	})

	t.Run("extracts readable blocks", func(t *testing.T) {
		t.Parallel()

		doc, err := rod.ParseSnapshot(snapshot)
		require.NoError(t, err)

		assert.Equal(t, []pagegist.Block{
			{Kind: pagegist.BlockHeading, Level: 1, Text: "Welcome"},
			{Kind: pagegist.BlockParagraph, Text: "A visible paragraph inside a div with more than forty characters."},
		}, extract.Readable(doc))
	})

	t.Run("null is a page without a body", func(t *testing.T) {
		t.Parallel()

		doc, err := rod.ParseSnapshot("null")
		require.NoError(t, err)

		assert.Nil(t, doc.Body())
		assert.Empty(t, extract.Readable(doc))
	})

	t.Run("rejects malformed snapshots", func(t *testing.T) {
		t.Parallel()

		_, err := rod.ParseSnapshot("{")

		assert.Equal(t, pagegist.ETRANSPORT, pagegist.ErrorCode(err))
	})
}
