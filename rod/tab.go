package rod

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/extract"
	"github.com/go-rod/rod"
)

// Ensure Tab implements pagegist.Tab at compile time.
var _ pagegist.Tab = (*Tab)(nil)

// installJS defines the page-side snapshot function. It records the
// computed display and visibility of every element under body, whether it
// has an offset parent, and the rendered text of headings and paragraphs.
const installJS = `() => {
	const textTags = /^(H[1-6]|P)$/;
	const walk = (el) => {
		const cs = getComputedStyle(el);
		const node = {
			tag: el.tagName,
			display: cs.display,
			visibility: cs.visibility,
			rendered: el.offsetParent !== null,
			children: [],
		};
		if (textTags.test(el.tagName)) node.text = el.innerText;
		for (const child of el.children) node.children.push(walk(child));
		return node;
	};
	window.__pagegistSnapshot = () => document.body ? JSON.stringify(walk(document.body)) : "null";
}`

// snapshotJS returns the snapshot, or an empty string when the page has
// navigated away from the injected script.
const snapshotJS = `() => typeof window.__pagegistSnapshot === "function" ? window.__pagegistSnapshot() : ""`

// webSchemes are the schemes a content script may run on.
var webSchemes = map[string]bool{"http": true, "https": true, "file": true}

// Tab is a live browser page.
type Tab struct {
	page *rod.Page

	mu       sync.Mutex
	injected bool
}

func newTab(page *rod.Page) *Tab {
	return &Tab{page: page}
}

// ID returns the DevTools target ID.
func (t *Tab) ID() string { return string(t.page.TargetID) }

// URL returns the page's current URL, or an empty string if it cannot be
// read.
func (t *Tab) URL() string {
	info, err := t.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Inject installs the snapshot script. Browser-internal pages such as
// chrome:// and about: refuse injection with EENVIRONMENT.
func (t *Tab) Inject(ctx context.Context) error {
	raw := t.URL()
	u, err := url.Parse(raw)
	if err != nil || !webSchemes[u.Scheme] {
		return pagegist.Errorf(pagegist.EENVIRONMENT, "cannot access contents of %q", raw)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.page.Context(ctx).Eval(installJS); err != nil {
		return pagegist.Errorf(pagegist.EENVIRONMENT, "injecting script: %v", err)
	}
	t.injected = true
	return nil
}

// Send delivers msg to the injected script.
func (t *Tab) Send(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
	t.mu.Lock()
	injected := t.injected
	t.mu.Unlock()
	if !injected {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "receiving end does not exist")
	}

	script := &extract.ContentScript{Snapshot: t.snapshot}
	return script.HandleMessage(ctx, msg)
}

func (t *Tab) snapshot(ctx context.Context) (pagegist.Document, error) {
	res, err := t.page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "reading page: %v", err)
	}
	data := res.Value.Str()
	if data == "" {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "receiving end does not exist")
	}
	return ParseSnapshot(data)
}
