package pagegist

import "context"

// Tab is a browser tab the extractor can be loaded into.
type Tab interface {
	ID() string
	URL() string

	// Inject loads the extractor into the tab. Repeated calls are no-ops.
	// Returns EENVIRONMENT if the page refuses injection.
	Inject(ctx context.Context) error

	// Send delivers msg to the extractor in the tab and returns its reply.
	// A nil response means the tab did not answer.
	Send(ctx context.Context, msg Message) (*ExtractResponse, error)
}

// TabLocator finds the tab the user is looking at.
type TabLocator interface {
	// ActiveTab returns the single active tab in the current window.
	// Returns ENOTFOUND if there is none.
	ActiveTab(ctx context.Context) (Tab, error)
}
