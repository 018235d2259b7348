// Package extract walks a rendered document snapshot and produces the
// ordered list of readable blocks a page contributes to a summary.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagegist"
)

// ignoredTags are rejected together with their whole subtree.
var ignoredTags = map[string]bool{
	"SCRIPT":   true,
	"STYLE":    true,
	"NOSCRIPT": true,
	"NAV":      true,
	"FOOTER":   true,
	"HEADER":   true,
	"ASIDE":    true,
	"FORM":     true,
}

// Readable walks doc's body in document order and returns its headings and
// paragraphs. Ignored or invisible elements are skipped along with their
// descendants. The body itself is never filtered.
func Readable(doc pagegist.Document) []pagegist.Block {
	blocks := []pagegist.Block{}
	if doc == nil {
		return blocks
	}
	body := doc.Body()
	if body == nil {
		return blocks
	}
	for _, child := range body.Children() {
		blocks = walk(child, blocks)
	}
	return blocks
}

func walk(el pagegist.Element, blocks []pagegist.Block) []pagegist.Block {
	if !accept(el) {
		return blocks
	}

	tag := el.TagName()
	if level := headingLevel(tag); level > 0 {
		blocks = append(blocks, pagegist.Block{
			Kind:  pagegist.BlockHeading,
			Level: level,
			Text:  strings.TrimSpace(el.InnerText()),
		})
	} else if tag == "P" {
		text := strings.TrimSpace(el.InnerText())
		if utf8.RuneCountInString(text) > pagegist.MinParagraphLength {
			blocks = append(blocks, pagegist.Block{
				Kind: pagegist.BlockParagraph,
				Text: text,
			})
		}
	}

	for _, child := range el.Children() {
		blocks = walk(child, blocks)
	}
	return blocks
}

// accept applies the tag-block and visibility filters.
func accept(el pagegist.Element) bool {
	if ignoredTags[el.TagName()] {
		return false
	}
	if el.Style().Hidden() {
		return false
	}
	return el.HasLayoutBox()
}

// headingLevel returns 1-6 for H1-H6 and 0 for anything else.
func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'H' {
		return 0
	}
	if tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

// Ensure ContentScript implements pagegist.MessageHandler at compile time.
var _ pagegist.MessageHandler = (*ContentScript)(nil)

// ContentScript answers extraction requests for a single page.
type ContentScript struct {
	// Snapshot returns the current state of the page.
	Snapshot func(ctx context.Context) (pagegist.Document, error)
}

// NewContentScript returns a ContentScript over a fixed document.
func NewContentScript(doc pagegist.Document) *ContentScript {
	return &ContentScript{
		Snapshot: func(context.Context) (pagegist.Document, error) { return doc, nil },
	}
}

// HandleMessage runs the extraction for MessageExtractPage. Other message
// types get no response.
func (c *ContentScript) HandleMessage(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
	if msg.Type != pagegist.MessageExtractPage {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &pagegist.ExtractResponse{Extracted: Readable(doc)}, nil
}
