package main

import (
	"fmt"

	"github.com/fwojciec/pagegist"
)

// Run executes the key save command.
func (c *KeySaveCmd) Run(deps *Dependencies) error {
	if err := deps.Keys.Save(deps.Ctx, c.Key, c.Remember); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	if c.Remember {
		fmt.Fprintln(deps.Stdout, "API key saved")
	} else {
		fmt.Fprintln(deps.Stdout, "API key saved for this session")
	}
	return nil
}

// Run executes the key clear command.
func (c *KeyClearCmd) Run(deps *Dependencies) error {
	if err := deps.Keys.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegist.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "API key cleared")
	return nil
}

// Run executes the key status command.
func (c *KeyStatusCmd) Run(deps *Dependencies) error {
	remembered, err := deps.Keys.Remembered(deps.Ctx)
	if err != nil {
		return err
	}
	if remembered {
		fmt.Fprintln(deps.Stdout, "API key: remembered")
		return nil
	}

	key, err := deps.Keys.Effective(deps.Ctx, "")
	if err != nil {
		return err
	}
	if key != "" {
		fmt.Fprintln(deps.Stdout, "API key: this session only")
		return nil
	}
	fmt.Fprintln(deps.Stdout, "API key: not set")
	return nil
}
