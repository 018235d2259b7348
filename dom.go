package pagegist

// Style holds the resolved (post-cascade) properties the extractor needs.
type Style struct {
	Display    string
	Visibility string
}

// Hidden reports whether the style hides the element.
func (s Style) Hidden() bool {
	return s.Display == "none" || s.Visibility == "hidden"
}

// Element is a node of a rendered document snapshot.
type Element interface {
	// TagName returns the upper-case tag name (e.g. "P", "H2").
	TagName() string

	// Style returns the computed display and visibility.
	Style() Style

	// HasLayoutBox reports whether the element is rendered. It is false
	// when the element or any ancestor is not rendered.
	HasLayoutBox() bool

	// InnerText returns the rendered text of the element, not its markup.
	InnerText() string

	// Children returns the element children in document order.
	Children() []Element
}

// Document is a snapshot of a rendered page.
type Document interface {
	// Body returns the body element, or nil if the page has none.
	Body() Element
}
