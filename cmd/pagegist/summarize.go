package main

import (
	"fmt"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/popup"
	pgslog "github.com/fwojciec/pagegist/slog"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	locator, release, err := deps.Tabs(deps.Ctx, TabOptions{URL: c.URL, Browser: c.Browser, ControlURL: c.ControlURL})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	defer func() { _ = release() }()

	view := NewTerminalView(deps.Stdout, deps.Stderr)
	ctrl := popup.NewController(deps.Keys, pgslog.NewLoggingTabLocator(locator, deps.Logger), deps.Summarizer, view)
	ctrl.Logger = deps.Logger

	if c.Mode != "" {
		if err := ctrl.SelectMode(c.Mode); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
			return err
		}
	}

	_, err = ctrl.Summarize(deps.Ctx, c.Key)
	return err
}
