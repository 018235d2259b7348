// Package popup drives a summarization attempt from credential lookup to
// the rendered summary.
package popup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/pagegist"
	"github.com/google/uuid"
)

// Failure reasons shown to the user.
const (
	ReasonNoCredential     = "no credential"
	ReasonNoActiveTab      = "no active tab"
	ReasonInjectionRefused = "injection refused"
	ReasonExtractionFailed = "extraction failed"
	ReasonBackendError     = "backend error"
	ReasonBackendContact   = "error contacting backend"
	PlaceholderNoSummary   = "no summary returned"
)

// Outcome is the terminal result of one attempt.
type Outcome struct {
	ID      string
	State   pagegist.State
	Summary string
	Err     error
}

// Controller runs summarization attempts. Starting a new attempt cancels
// the one in flight; a superseded attempt never updates the View.
type Controller struct {
	Keys       *Keyring
	Tabs       pagegist.TabLocator
	Summarizer pagegist.Summarizer
	View       pagegist.View
	Logger     *slog.Logger

	mu      sync.Mutex
	mode    pagegist.Mode
	current string
	cancel  context.CancelFunc
}

// NewController returns a Controller with the default mode selected.
func NewController(keys *Keyring, tabs pagegist.TabLocator, summarizer pagegist.Summarizer, view pagegist.View) *Controller {
	return &Controller{
		Keys:       keys,
		Tabs:       tabs,
		Summarizer: summarizer,
		View:       view,
		Logger:     slog.New(slog.DiscardHandler),
		mode:       pagegist.DefaultMode,
	}
}

// Mode returns the selected mode.
func (c *Controller) Mode() pagegist.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SelectMode replaces the selected mode. Returns EINVALID for unknown modes
// and leaves the previous selection in place.
func (c *Controller) SelectMode(name string) error {
	m, err := pagegist.ParseMode(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	return nil
}

// attempt is the state of a single run through the lifecycle.
type attempt struct {
	c     *Controller
	id    string
	mode  pagegist.Mode
	state pagegist.State
}

// Summarize runs one attempt to completion. typedKey is the unsaved key
// from the UI, if any. The returned error is non-nil only when the attempt
// failed; the Outcome describes the terminal state either way.
func (c *Controller) Summarize(ctx context.Context, typedKey string) (*Outcome, error) {
	ctx, a := c.begin(ctx)
	defer c.end(a)

	out := a.run(ctx, typedKey)
	return out, out.Err
}

// begin registers a new attempt and cancels the previous one.
func (c *Controller) begin(ctx context.Context) (context.Context, *attempt) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	a := &attempt{c: c, id: uuid.NewString(), mode: c.mode, state: pagegist.StateIdle}
	c.current = a.id
	c.cancel = cancel
	return ctx, a
}

func (c *Controller) end(a *attempt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == a.id {
		c.cancel()
		c.cancel = nil
	}
}

// render runs fn while a is still the latest attempt and reports whether
// it ran. The View is only written to under c.mu, so a newer attempt
// cannot interleave with an older attempt's final render.
func (c *Controller) render(a *attempt, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != a.id {
		return false
	}
	fn()
	return true
}

func (a *attempt) transition(state pagegist.State, message string) {
	a.state = state
	a.c.Logger.Debug("transition", "attempt", a.id, "state", string(state), "message", message)
	a.c.render(a, func() { a.c.View.SetStatus(state, message) })
}

func (a *attempt) fail(code, reason string) *Outcome {
	err := pagegist.Errorf(code, "%s", reason)
	return a.finish(pagegist.StateFailed, reason, err)
}

func (a *attempt) finish(state pagegist.State, text string, err error) *Outcome {
	out := &Outcome{ID: a.id, State: state, Summary: text, Err: err}
	a.state = state
	rendered := a.c.render(a, func() {
		a.c.View.SetStatus(state, text)
		a.c.View.SetSummary(text)
	})
	if !rendered {
		out.State = pagegist.StateFailed
		out.Summary = ""
		out.Err = pagegist.Errorf(pagegist.ECANCELED, "superseded by a newer request")
		return out
	}
	a.c.Logger.Debug("transition", "attempt", a.id, "state", string(state), "message", text)
	return out
}

func (a *attempt) run(ctx context.Context, typedKey string) *Outcome {
	a.transition(pagegist.StateResolvingCredential, "Checking API key...")
	key, err := a.c.Keys.Effective(ctx, typedKey)
	if err != nil || pagegist.ValidateAPIKey(key) != nil {
		return a.fail(pagegist.ECONFIG, ReasonNoCredential)
	}

	a.transition(pagegist.StateLocatingTab, "Finding active tab...")
	tab, err := a.c.Tabs.ActiveTab(ctx)
	if err != nil || tab == nil {
		return a.fail(pagegist.EENVIRONMENT, ReasonNoActiveTab)
	}

	a.transition(pagegist.StateInjecting, "Preparing page...")
	if err := tab.Inject(ctx); err != nil {
		return a.fail(pagegist.EENVIRONMENT, ReasonInjectionRefused)
	}

	a.transition(pagegist.StateExtracting, "Extracting page content...")
	resp, err := tab.Send(ctx, pagegist.Message{Type: pagegist.MessageExtractPage})
	if err != nil || resp == nil || resp.Extracted == nil {
		return a.fail(pagegist.ETRANSPORT, ReasonExtractionFailed)
	}

	a.transition(pagegist.StateSummarizing, "Summarizing...")
	summary, err := a.c.Summarizer.Summarize(ctx, &pagegist.SummarizeRequest{
		Content: resp.Extracted,
		APIKey:  key,
		Mode:    a.mode,
	})
	switch {
	case err == nil:
	case pagegist.ErrorCode(err) == pagegist.EBACKEND:
		reason := pagegist.ErrorMessage(err)
		if reason == "" {
			reason = ReasonBackendError
		}
		return a.fail(pagegist.EBACKEND, reason)
	default:
		return a.fail(pagegist.ETRANSPORT, ReasonBackendContact)
	}

	if summary == nil || summary.Summary == "" {
		return a.finish(pagegist.StateDone, PlaceholderNoSummary, nil)
	}
	return a.finish(pagegist.StateDone, summary.Summary, nil)
}
