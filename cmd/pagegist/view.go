package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/pagegist"
)

// Ensure TerminalView implements pagegist.View at compile time.
var _ pagegist.View = (*TerminalView)(nil)

// TerminalView renders status lines to stderr and the summary to stdout.
type TerminalView struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// NewTerminalView returns a TerminalView writing to stdout and stderr.
func NewTerminalView(stdout, stderr io.Writer) *TerminalView {
	return &TerminalView{stdout: stdout, stderr: stderr}
}

// SetStatus prints the state and message on one line. The summary itself
// is left to SetSummary.
func (v *TerminalView) SetStatus(state pagegist.State, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if state == pagegist.StateDone {
		fmt.Fprintf(v.stderr, "[%s]\n", state)
		return
	}
	fmt.Fprintf(v.stderr, "[%s] %s\n", state, message)
}

// SetSummary prints text followed by a newline.
func (v *TerminalView) SetSummary(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.stdout, text)
}
