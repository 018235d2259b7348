package mock

import (
	"context"

	"github.com/fwojciec/pagegist"
)

var (
	_ pagegist.Tab            = (*Tab)(nil)
	_ pagegist.TabLocator     = (*TabLocator)(nil)
	_ pagegist.MessageHandler = (*MessageHandler)(nil)
)

// Tab is a mock implementation of pagegist.Tab.
type Tab struct {
	IDValue  string
	URLValue string
	InjectFn func(ctx context.Context) error
	SendFn   func(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error)
}

func (t *Tab) ID() string { return t.IDValue }

func (t *Tab) URL() string { return t.URLValue }

func (t *Tab) Inject(ctx context.Context) error {
	return t.InjectFn(ctx)
}

func (t *Tab) Send(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
	return t.SendFn(ctx, msg)
}

// TabLocator is a mock implementation of pagegist.TabLocator.
type TabLocator struct {
	ActiveTabFn func(ctx context.Context) (pagegist.Tab, error)
}

func (l *TabLocator) ActiveTab(ctx context.Context) (pagegist.Tab, error) {
	return l.ActiveTabFn(ctx)
}

// MessageHandler is a mock implementation of pagegist.MessageHandler.
type MessageHandler struct {
	HandleMessageFn func(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error)
}

func (h *MessageHandler) HandleMessage(ctx context.Context, msg pagegist.Message) (*pagegist.ExtractResponse, error) {
	return h.HandleMessageFn(ctx, msg)
}
