package pagegist

import "strings"

// MinParagraphLength is the trimmed length a paragraph must exceed to be
// kept. Headings have no minimum.
const MinParagraphLength = 40

// BlockKind identifies the kind of a content block.
type BlockKind string

// BlockKind constants.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// Block is a single readable unit extracted from a page.
// Level is set only for headings (1-6).
type Block struct {
	Kind  BlockKind `json:"type"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text"`
}

// JoinText concatenates the text of every block, separated by spaces.
func JoinText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Text == "" {
			continue
		}
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}
