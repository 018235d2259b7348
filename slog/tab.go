package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagegist"
)

var (
	_ pagegist.TabLocator = (*LoggingTabLocator)(nil)
	_ pagegist.Tab        = (*LoggingTab)(nil)
)

// LoggingTabLocator wraps a TabLocator so that located tabs log their
// injection and messaging.
type LoggingTabLocator struct {
	next   pagegist.TabLocator
	logger *slog.Logger
}

// NewLoggingTabLocator creates a new LoggingTabLocator.
func NewLoggingTabLocator(next pagegist.TabLocator, logger *slog.Logger) *LoggingTabLocator {
	return &LoggingTabLocator{next: next, logger: logger}
}

// ActiveTab delegates to the wrapped locator and wraps the result.
func (l *LoggingTabLocator) ActiveTab(ctx context.Context) (pagegist.Tab, error) {
	tab, err := l.next.ActiveTab(ctx)
	if err != nil {
		l.logger.Info("active tab", "err", err)
		return nil, err
	}
	if tab == nil {
		l.logger.Info("active tab", "id", nil)
		return nil, nil
	}
	l.logger.Info("active tab", "id", tab.ID(), "url", tab.URL())
	return NewLoggingTab(tab, l.logger), nil
}

// LoggingTab wraps a Tab with logging.
type LoggingTab struct {
	next   pagegist.Tab
	logger *slog.Logger
}

// NewLoggingTab creates a new LoggingTab.
func NewLoggingTab(next pagegist.Tab, logger *slog.Logger) *LoggingTab {
	return &LoggingTab{next: next, logger: logger}
}

func (t *LoggingTab) ID() string { return t.next.ID() }

func (t *LoggingTab) URL() string { return t.next.URL() }

// Inject delegates to the wrapped tab and logs the operation.
func (t *LoggingTab) Inject(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		t.logger.Info("inject",
			"url", t.next.URL(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Inject(ctx)
}

// Send delegates to the wrapped tab and logs the number of blocks returned.
func (t *LoggingTab) Send(ctx context.Context, msg pagegist.Message) (resp *pagegist.ExtractResponse, err error) {
	defer func(begin time.Time) {
		blocks := 0
		if resp != nil {
			blocks = len(resp.Extracted)
		}
		t.logger.Info("send",
			"type", msg.Type,
			"blocks", blocks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Send(ctx, msg)
}
