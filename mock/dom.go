package mock

import (
	"strings"

	"github.com/fwojciec/pagegist"
)

var (
	_ pagegist.Element  = (*Element)(nil)
	_ pagegist.Document = (*Document)(nil)
)

// Element is an in-memory pagegist.Element for building DOM fixtures.
// A zero Style is visible; NoLayout marks an element without a layout box.
type Element struct {
	Tag      string
	Computed pagegist.Style
	NoLayout bool
	Text     string
	Kids     []*Element
}

// El builds an Element with the given tag, text and children.
func El(tag, text string, kids ...*Element) *Element {
	return &Element{Tag: strings.ToUpper(tag), Text: text, Kids: kids}
}

func (e *Element) TagName() string { return e.Tag }

func (e *Element) Style() pagegist.Style { return e.Computed }

func (e *Element) HasLayoutBox() bool { return !e.NoLayout }

func (e *Element) InnerText() string { return e.Text }

func (e *Element) Children() []pagegist.Element {
	out := make([]pagegist.Element, len(e.Kids))
	for i, k := range e.Kids {
		out[i] = k
	}
	return out
}

// Document is a pagegist.Document wrapping a body fixture.
type Document struct {
	BodyElement *Element
}

func (d *Document) Body() pagegist.Element {
	if d.BodyElement == nil {
		return nil
	}
	return d.BodyElement
}
