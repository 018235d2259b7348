package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/popup"
)

// TabOptions selects the tab a command works on.
type TabOptions struct {
	URL        string
	Browser    bool
	ControlURL string
}

// TabSource opens a tab locator for opts. The returned func releases it.
type TabSource func(ctx context.Context, opts TabOptions) (pagegist.TabLocator, func() error, error)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Keys       *popup.Keyring
	Summarizer pagegist.Summarizer
	Tabs       TabSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Endpoint string `help:"Summarization backend URL" env:"PAGEGIST_ENDPOINT" default:"http://127.0.0.1:8000"`
	Verbose  bool   `short:"v" help:"Log every step to stderr"`

	Key       KeyCmd       `cmd:"" help:"Manage the stored API key"`
	Modes     ModesCmd     `cmd:"" help:"List summarization modes"`
	Extract   ExtractCmd   `cmd:"" help:"Print the readable blocks of a page as JSON"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize a page"`
}

// KeyCmd groups the API key subcommands.
type KeyCmd struct {
	Save   KeySaveCmd   `cmd:"" help:"Save an API key"`
	Clear  KeyClearCmd  `cmd:"" help:"Forget the saved API key"`
	Status KeyStatusCmd `cmd:"" help:"Show where the API key comes from"`
}

// KeySaveCmd is the "key save" subcommand.
type KeySaveCmd struct {
	Key      string `arg:"" help:"API key (starts with sk-)"`
	Remember bool   `short:"r" help:"Keep the key across sessions"`
}

// KeyClearCmd is the "key clear" subcommand.
type KeyClearCmd struct{}

// KeyStatusCmd is the "key status" subcommand.
type KeyStatusCmd struct{}

// ModesCmd is the "modes" subcommand.
type ModesCmd struct{}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL        string `arg:"" help:"Page URL"`
	Browser    bool   `short:"b" help:"Render the page in headless Chrome"`
	ControlURL string `help:"Attach to a running Chrome (e.g. 9222)" env:"PAGEGIST_CONTROL_URL"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL        string `arg:"" optional:"" help:"Page URL (defaults to the browser's active tab)"`
	Mode       string `short:"m" help:"Summary mode (see 'pagegist modes')"`
	Key        string `short:"k" help:"API key for this request only" env:"PAGEGIST_API_KEY"`
	Browser    bool   `short:"b" help:"Render the page in headless Chrome"`
	ControlURL string `help:"Attach to a running Chrome (e.g. 9222)" env:"PAGEGIST_CONTROL_URL"`
}
