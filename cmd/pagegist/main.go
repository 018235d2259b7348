package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagegist"
	pghttp "github.com/fwojciec/pagegist/http"
	"github.com/fwojciec/pagegist/popup"
	"github.com/fwojciec/pagegist/rod"
	pgslog "github.com/fwojciec/pagegist/slog"
	"github.com/fwojciec/pagegist/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database paths. Set before calling Run().
	DBPath        string
	SessionDBPath string

	// SQLite databases backing the durable and session credential stores.
	DB        *sqlite.DB
	SessionDB *sqlite.DB

	// Overrides for end-to-end testing. Nil values select the real
	// implementations.
	Summarizer pagegist.Summarizer
	Tabs       TabSource
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:        defaultDBPath(),
		SessionDBPath: defaultSessionDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.SessionDB != nil {
		err = m.SessionDB.Close()
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagegist"),
		kong.Description("Summarize the readable content of web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagegist --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	command := kongCtx.Command()
	if strings.HasPrefix(command, "key") || strings.HasPrefix(command, "summarize") {
		if err := m.openStores(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Keys = popup.NewKeyring(sqlite.NewCredentialStore(m.DB), sqlite.NewCredentialStore(m.SessionDB))
	}

	deps.Summarizer = m.Summarizer
	if deps.Summarizer == nil {
		deps.Summarizer = pghttp.NewClient(cli.Endpoint)
	}
	deps.Summarizer = pgslog.NewLoggingSummarizer(deps.Summarizer, deps.Logger)

	deps.Tabs = m.Tabs
	if deps.Tabs == nil {
		deps.Tabs = openTabs
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStores(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEGIST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.SessionDB = sqlite.NewDB(m.SessionDBPath)
	if err := m.SessionDB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEGIST_SESSION_DB to use a different session path\n")
		return fmt.Errorf("failed to open session database at %q: %w", m.SessionDBPath, err)
	}
	return nil
}

// openTabs selects a live browser when asked for one and a static HTTP
// tab otherwise.
func openTabs(ctx context.Context, opts TabOptions) (pagegist.TabLocator, func() error, error) {
	if !opts.Browser && opts.ControlURL == "" {
		return pghttp.NewTabLocator(pghttp.NewFetcher(), opts.URL), func() error { return nil }, nil
	}

	var browserOpts []rod.BrowserOption
	if opts.ControlURL != "" {
		browserOpts = append(browserOpts, rod.WithControlURL(opts.ControlURL))
	}
	browser, err := rod.NewBrowser(browserOpts...)
	if err != nil {
		return nil, nil, err
	}
	if opts.URL != "" {
		if _, err := browser.Open(ctx, opts.URL); err != nil {
			_ = browser.Close()
			return nil, nil, err
		}
	}
	return browser, browser.Close, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEGIST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagegist.db"
	}
	dir := filepath.Join(home, ".pagegist")
	_ = os.MkdirAll(dir, 0700)
	return filepath.Join(dir, "pagegist.db")
}

func defaultSessionDBPath() string {
	if path := os.Getenv("PAGEGIST_SESSION_DB"); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("pagegist-session-%d.db", os.Getuid()))
}
