package goquery

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/fwojciec/pagegist"
	"golang.org/x/net/html"
)

// Style origins, lowest precedence first.
const (
	originUserAgent = iota
	originAuthor
	originInline
)

// userAgentSheet holds the default styles that matter for visibility.
const userAgentSheet = `
head, script, style, template, title, meta, link, base, noscript,
datalist, param, rp, area, [hidden] { display: none }
input[type=hidden] { display: none }
html, body, address, article, aside, blockquote, details, dialog, dd, div,
dl, dt, fieldset, figcaption, figure, footer, form, h1, h2, h3, h4, h5, h6,
header, hgroup, hr, main, nav, ol, p, pre, section, summary, ul { display: block }
li { display: list-item }
table { display: table }
tr { display: table-row }
td, th { display: table-cell }
`

// rule is a single selector from a style sheet with its declarations.
type rule struct {
	sel    cascadia.Sel
	spec   cascadia.Specificity
	origin int
	order  int
	decls  []*css.Declaration
}

// resolver computes display and visibility for elements.
type resolver struct {
	rules []rule
}

func newResolver(sheets []string) *resolver {
	r := &resolver{}
	r.addSheet(userAgentSheet, originUserAgent)
	for _, s := range sheets {
		r.addSheet(s, originAuthor)
	}
	return r
}

// addSheet parses a style sheet and records every rule that touches
// display or visibility. Unparseable sheets and selectors are skipped the
// way a browser drops invalid rules.
func (r *resolver) addSheet(text string, origin int) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return
	}
	r.addRules(sheet.Rules, origin)
}

func (r *resolver) addRules(rules []*css.Rule, origin int) {
	for _, cr := range rules {
		if cr.Kind == css.AtRule {
			if strings.TrimPrefix(cr.Name, "@") == "media" && appliesToScreen(cr.Prelude) {
				r.addRules(cr.Rules, origin)
			}
			continue
		}

		decls := relevant(cr.Declarations)
		if len(decls) == 0 {
			continue
		}
		for _, selText := range cr.Selectors {
			group, err := cascadia.ParseGroup(selText)
			if err != nil {
				continue
			}
			for _, sel := range group {
				if sel.PseudoElement() != "" {
					continue
				}
				r.rules = append(r.rules, rule{
					sel:    sel,
					spec:   sel.Specificity(),
					origin: origin,
					order:  len(r.rules),
					decls:  decls,
				})
			}
		}
	}
}

// relevant keeps only the declarations the extractor reads.
func relevant(decls []*css.Declaration) []*css.Declaration {
	var out []*css.Declaration
	for _, d := range decls {
		if strings.TrimSpace(d.Value) == "" {
			continue
		}
		switch strings.ToLower(d.Property) {
		case "display", "visibility":
			out = append(out, d)
		}
	}
	return out
}

// candidate is a declaration competing in the cascade.
type candidate struct {
	decl   *css.Declaration
	origin int
	spec   cascadia.Specificity
	order  int
}

// less orders candidates by importance, origin, specificity and then
// source order. The last candidate wins. Important declarations reverse
// the origin order, and inline styles rank as author declarations that
// outrank any selector.
func (c candidate) less(o candidate) bool {
	if c.decl.Important != o.decl.Important {
		return !c.decl.Important
	}
	if co, oo := c.level(), o.level(); co != oo {
		if c.decl.Important {
			return co > oo
		}
		return co < oo
	}
	if ci, oi := c.origin == originInline, o.origin == originInline; ci != oi {
		return oi
	}
	if c.spec != o.spec {
		return c.spec.Less(o.spec)
	}
	return c.order < o.order
}

// level is the cascade origin of c with inline styles folded into author.
func (c candidate) level() int {
	if c.origin == originInline {
		return originAuthor
	}
	return c.origin
}

// compute resolves the style of n given its parent's resolved style.
func (r *resolver) compute(n *html.Node, parent *Element) pagegist.Style {
	var cands []candidate
	for _, rl := range r.rules {
		if !rl.sel.Match(n) {
			continue
		}
		for _, d := range rl.decls {
			cands = append(cands, candidate{decl: d, origin: rl.origin, spec: rl.spec, order: rl.order})
		}
	}
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		// The declaration parser loses the value of an unterminated last
		// declaration, which is how most inline styles are written.
		decls, err := parser.ParseDeclarations(strings.TrimSuffix(strings.TrimSpace(a.Val), ";") + ";")
		if err != nil {
			break
		}
		for i, d := range relevant(decls) {
			cands = append(cands, candidate{decl: d, origin: originInline, order: len(r.rules) + i})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].less(cands[j]) })

	parentStyle := pagegist.Style{Display: "block", Visibility: "visible"}
	if parent != nil {
		parentStyle = parent.style
	}

	style := pagegist.Style{Display: "inline", Visibility: parentStyle.Visibility}
	for _, c := range cands {
		value := strings.ToLower(strings.TrimSpace(c.decl.Value))
		switch strings.ToLower(c.decl.Property) {
		case "display":
			switch value {
			case "inherit":
				style.Display = parentStyle.Display
			case "initial", "unset", "revert":
				style.Display = "inline"
			default:
				style.Display = value
			}
		case "visibility":
			switch value {
			case "inherit", "unset", "revert":
				style.Visibility = parentStyle.Visibility
			case "initial":
				style.Visibility = "visible"
			default:
				style.Visibility = value
			}
		}
	}
	return style
}
