// Package rod provides live browser tabs driven over the Chrome DevTools
// protocol. Unlike the http package, pages run their JavaScript and styles
// are computed by the browser itself.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/pagegist"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Browser implements pagegist.TabLocator at compile time.
var _ pagegist.TabLocator = (*Browser)(nil)

// Browser is a Chrome instance, either launched headless or attached to an
// already running browser through its remote debugging endpoint.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool

	mu     sync.Mutex
	active *Tab
	opened []*rod.Page
}

// BrowserOption configures a Browser.
type BrowserOption func(*browserConfig)

type browserConfig struct {
	controlURL string
}

// WithControlURL attaches to a running Chrome instead of launching one.
// Accepts anything launcher.ResolveURL understands, such as "9222" or
// "http://127.0.0.1:9222".
func WithControlURL(u string) BrowserOption {
	return func(c *browserConfig) {
		c.controlURL = u
	}
}

// NewBrowser launches a headless Chrome, or attaches to one when
// WithControlURL is given. Close must be called when the Browser is no
// longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	var cfg browserConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.controlURL != "" {
		u, err := launcher.ResolveURL(cfg.controlURL)
		if err != nil {
			return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "resolving control URL: %v", err)
		}
		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "connecting to browser: %v", err)
		}
		return &Browser{browser: browser}, nil
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "connecting to browser: %v", err)
	}

	return &Browser{browser: browser, launcher: lnchr}, nil
}

// Open loads rawURL in a new page and makes it the active tab.
func (b *Browser) Open(ctx context.Context, rawURL string) (*Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	b.mu.Lock()
	b.opened = append(b.opened, page)
	b.mu.Unlock()

	p := page.Context(ctx)
	if err := p.Navigate(rawURL); err != nil {
		return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "navigating to %s: %v", rawURL, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "loading %s: %v", rawURL, err)
	}

	tab := newTab(page)
	b.mu.Lock()
	b.active = tab
	b.mu.Unlock()
	return tab, nil
}

// ActiveTab returns the tab opened last, or else the page the user is
// looking at: visible and focused, falling back to the first visible page.
func (b *Browser) ActiveTab(ctx context.Context) (pagegist.Tab, error) {
	b.mu.Lock()
	active := b.active
	b.mu.Unlock()
	if active != nil {
		return active, nil
	}

	pages, err := b.browser.Context(ctx).Pages()
	if err != nil {
		return nil, pagegist.Errorf(pagegist.EENVIRONMENT, "listing pages: %v", err)
	}

	var visible *rod.Page
	for _, page := range pages {
		res, err := page.Context(ctx).Eval(`() => [document.visibilityState === "visible", document.hasFocus()]`)
		if err != nil {
			continue
		}
		flags := res.Value.Arr()
		if len(flags) != 2 || !flags[0].Bool() {
			continue
		}
		if flags[1].Bool() {
			return newTab(page), nil
		}
		if visible == nil {
			visible = page
		}
	}
	if visible != nil {
		return newTab(visible), nil
	}
	return nil, pagegist.Errorf(pagegist.ENOTFOUND, "no active tab")
}

// Close releases browser resources. A launched browser is shut down; an
// attached one only loses the pages Open created. Close is safe to call
// multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.launcher == nil {
		for _, page := range b.opened {
			_ = page.Close()
		}
		return nil
	}

	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the launched browser, or 0 when
// attached. It exists for tests that verify cleanup.
func (b *Browser) LauncherPID() int {
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
