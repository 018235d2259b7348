package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagegist"
	pgslog "github.com/fwojciec/pagegist/slog"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	locator, release, err := deps.Tabs(deps.Ctx, TabOptions{URL: c.URL, Browser: c.Browser, ControlURL: c.ControlURL})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	defer func() { _ = release() }()

	tab, err := pgslog.NewLoggingTabLocator(locator, deps.Logger).ActiveTab(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	if err := tab.Inject(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	resp, err := tab.Send(deps.Ctx, pagegist.Message{Type: pagegist.MessageExtractPage})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	if resp == nil {
		return pagegist.Errorf(pagegist.ETRANSPORT, "no response from page")
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Extracted)
}
