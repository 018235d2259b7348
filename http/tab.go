package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/extract"
	"github.com/fwojciec/pagegist/goquery"
	"github.com/google/uuid"
)

// Ensure types implement the tab interfaces at compile time.
var (
	_ pagegist.Tab        = (*Tab)(nil)
	_ pagegist.TabLocator = (*TabLocator)(nil)
)

// TabLocator exposes a single static tab for a URL.
type TabLocator struct {
	tab *Tab
}

// NewTabLocator returns a locator whose active tab shows rawURL.
// An empty rawURL means there is no active tab.
func NewTabLocator(fetcher *Fetcher, rawURL string) *TabLocator {
	if rawURL == "" {
		return &TabLocator{}
	}
	return &TabLocator{tab: NewTab(fetcher, rawURL)}
}

// ActiveTab returns the static tab.
func (l *TabLocator) ActiveTab(ctx context.Context) (pagegist.Tab, error) {
	if l.tab == nil {
		return nil, pagegist.Errorf(pagegist.ENOTFOUND, "no active tab")
	}
	return l.tab, nil
}

// Tab is a page loaded over plain HTTP.
type Tab struct {
	id      string
	url     string
	fetcher *Fetcher

	mu     sync.Mutex
	script pagegist.MessageHandler
}

// NewTab returns a Tab for rawURL. Nothing is fetched until Inject.
func NewTab(fetcher *Fetcher, rawURL string) *Tab {
	return &Tab{id: uuid.NewString(), url: rawURL, fetcher: fetcher}
}

// ID returns the tab's identifier.
func (t *Tab) ID() string { return t.id }

// URL returns the page URL.
func (t *Tab) URL() string { return t.url }

// Inject loads the page and prepares the content script. Only http and
// https pages can be loaded; later calls reuse the loaded page.
func (t *Tab) Inject(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.script != nil {
		return nil
	}

	u, err := url.Parse(t.url)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return pagegist.Errorf(pagegist.EENVIRONMENT, "cannot load %q into a static tab", t.url)
	}

	html, err := t.fetcher.Fetch(ctx, t.url)
	if err != nil {
		return pagegist.Errorf(pagegist.EENVIRONMENT, "failed to load page: %v", err)
	}
	doc, err := goquery.NewDocument(html)
	if err != nil {
		return err
	}
	t.script = extract.NewContentScript(doc)
	return nil
}

// Send delivers msg to the content script. Before Inject there is nobody
// listening and Send returns ETRANSPORT.
func (t *Tab) Send(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
	t.mu.Lock()
	script := t.script
	t.mu.Unlock()

	if script == nil {
		return nil, pagegist.Errorf(pagegist.ETRANSPORT, "receiving end does not exist")
	}
	return script.HandleMessage(ctx, msg)
}
