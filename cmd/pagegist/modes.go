package main

import (
	"fmt"

	"github.com/fwojciec/pagegist"
)

// Run executes the modes command.
func (c *ModesCmd) Run(deps *Dependencies) error {
	for _, m := range pagegist.Modes() {
		if m == pagegist.DefaultMode {
			fmt.Fprintf(deps.Stdout, "%s (default)\n", m)
			continue
		}
		fmt.Fprintln(deps.Stdout, m)
	}
	return nil
}
