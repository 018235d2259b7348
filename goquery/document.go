// Package goquery builds rendered document snapshots from static HTML.
//
// Styles are resolved from a small user-agent sheet, every <style> element
// and inline style attributes. Scripts are not executed, so pages that
// render their content client-side need the rod package instead.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagegist"
	"golang.org/x/net/html"
)

// Ensure types implement the snapshot interfaces at compile time.
var (
	_ pagegist.Document = (*Document)(nil)
	_ pagegist.Element  = (*Element)(nil)
)

// Document is a rendered snapshot of a static HTML page.
type Document struct {
	body  *Element
	nodes map[*html.Node]*Element
}

// NewDocument parses rawHTML and resolves the style of every element.
func NewDocument(rawHTML string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagegist.Errorf(pagegist.EINVALID, "failed to parse HTML: %v", err)
	}

	var sheets []string
	gq.Find("style").Each(func(_ int, sel *goquery.Selection) {
		if media, ok := sel.Attr("media"); ok && !appliesToScreen(media) {
			return
		}
		sheets = append(sheets, sel.Text())
	})

	d := &Document{nodes: make(map[*html.Node]*Element)}
	r := newResolver(sheets)
	for n := gq.Get(0).FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			d.build(r, n, nil)
		}
	}
	return d, nil
}

// Body returns the body element, or nil if the page has none.
func (d *Document) Body() pagegist.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *Document) build(r *resolver, n *html.Node, parent *Element) *Element {
	el := &Element{node: n, doc: d}
	el.style = r.compute(n, parent)
	parentRendered := parent == nil || parent.rendered
	el.rendered = parentRendered && el.style.Display != "none"
	d.nodes[n] = el

	if n.Data == "body" && d.body == nil {
		d.body = el
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			el.children = append(el.children, d.build(r, c, el))
		}
	}
	return el
}

// Element is an element of a Document.
type Element struct {
	node     *html.Node
	doc      *Document
	style    pagegist.Style
	rendered bool
	children []*Element
}

// TagName returns the upper-case tag name.
func (e *Element) TagName() string {
	return strings.ToUpper(e.node.Data)
}

// Style returns the resolved display and visibility.
func (e *Element) Style() pagegist.Style {
	return e.style
}

// HasLayoutBox reports whether the element generates a box. Elements with
// display:contents are rendered but have no box of their own.
func (e *Element) HasLayoutBox() bool {
	return e.rendered && e.style.Display != "contents"
}

// Children returns the element children in document order.
func (e *Element) Children() []pagegist.Element {
	out := make([]pagegist.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

var (
	spaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	spaceAtEOL = regexp.MustCompile(` *\n *`)
	newlineRun = regexp.MustCompile(`\n+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// InnerText approximates the rendered text of the element. Text inside
// non-rendered or visibility:hidden elements is left out, whitespace is
// collapsed, <br> becomes a newline and block boxes start on a new line.
func (e *Element) InnerText() string {
	if !e.rendered {
		return ""
	}
	var sb strings.Builder
	e.appendText(&sb)
	s := spaceRun.ReplaceAllString(sb.String(), " ")
	s = spaceAtEOL.ReplaceAllString(s, "\n")
	return newlineRun.ReplaceAllString(s, "\n")
}

func (e *Element) appendText(sb *strings.Builder) {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if e.style.Visibility != "hidden" {
				sb.WriteString(whitespace.ReplaceAllString(c.Data, " "))
			}
		case html.ElementNode:
			child := e.doc.nodes[c]
			if child == nil || !child.rendered {
				continue
			}
			if c.Data == "br" {
				sb.WriteString("\n")
				continue
			}
			if isBlock(child.style.Display) {
				sb.WriteString("\n")
				child.appendText(sb)
				sb.WriteString("\n")
				continue
			}
			child.appendText(sb)
		}
	}
}

func isBlock(display string) bool {
	switch display {
	case "block", "list-item", "table", "table-row", "flex", "grid", "flow-root":
		return true
	}
	return false
}

// appliesToScreen reports whether a media query list includes screens.
// Feature queries without a media type, such as "(min-width: 768px)",
// apply to all media and are treated as matching regardless of width.
func appliesToScreen(media string) bool {
	media = strings.ToLower(strings.TrimSpace(media))
	if media == "" {
		return true
	}
	for _, q := range strings.Split(media, ",") {
		q = strings.TrimSpace(q)
		if q == "all" || q == "screen" || strings.HasPrefix(q, "screen ") || strings.HasPrefix(q, "all ") ||
			strings.HasPrefix(q, "only screen") || strings.HasPrefix(q, "(") {
			return true
		}
	}
	return false
}
