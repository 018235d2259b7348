package rod

import (
	"encoding/json"

	"github.com/fwojciec/pagegist"
)

var (
	_ pagegist.Element  = (*node)(nil)
	_ pagegist.Document = (*document)(nil)
)

// node is one element of a page snapshot as serialized by installJS.
type node struct {
	Tag        string  `json:"tag"`
	Display    string  `json:"display"`
	Visibility string  `json:"visibility"`
	Rendered   bool    `json:"rendered"`
	Text       string  `json:"text"`
	Kids       []*node `json:"children"`

	// parentRendered is false when an ancestor has no layout box.
	parentRendered bool
}

func (n *node) TagName() string { return n.Tag }

func (n *node) Style() pagegist.Style {
	return pagegist.Style{Display: n.Display, Visibility: n.Visibility}
}

func (n *node) HasLayoutBox() bool { return n.Rendered && n.parentRendered }

// InnerText returns the text captured by the snapshot. Only headings and
// paragraphs carry text.
func (n *node) InnerText() string { return n.Text }

func (n *node) Children() []pagegist.Element {
	out := make([]pagegist.Element, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

type document struct {
	body *node
}

func (d *document) Body() pagegist.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

// ParseSnapshot decodes a page snapshot. The literal "null" is a page
// without a body.
func ParseSnapshot(data string) (pagegist.Document, error) {
	var body *node
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "invalid page snapshot: %v", err)
	}
	if body != nil {
		// body has no offset parent by definition.
		body.Rendered = true
		body.propagate(true)
	}
	return &document{body: body}, nil
}

func (n *node) propagate(parentRendered bool) {
	n.parentRendered = parentRendered
	for _, k := range n.Kids {
		k.propagate(parentRendered && n.Rendered)
	}
}
