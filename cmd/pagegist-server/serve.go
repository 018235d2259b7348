package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagegist"
	"github.com/fwojciec/pagegist/gemini"
	pghttp "github.com/fwojciec/pagegist/http"
	"github.com/fwojciec/pagegist/langchaingo"
	"github.com/fwojciec/pagegist/openai"
	pgslog "github.com/fwojciec/pagegist/slog"
	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// Provider names accepted by --provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

type ServeCommand struct {
	ListenAddr    string  `help:"The address to listen on." env:"LISTEN_ADDR" default:"127.0.0.1:8000"`
	Provider      string  `help:"The LLM provider." env:"PROVIDER" enum:"openai,gemini,ollama" default:"openai"`
	Model         string  `help:"The model to summarize with. Empty selects the provider default." env:"MODEL" default:""`
	OpenAIBaseURL string  `help:"Base URL of an OpenAI-compatible API." env:"OPENAI_BASE_URL" default:""`
	GeminiAPIKey  string  `help:"The Gemini API key." env:"GEMINI_API_KEY" default:""`
	OllamaURL     string  `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	RateLimit     float64 `help:"Requests per second allowed per API key. Zero disables limiting." env:"RATE_LIMIT" default:"1"`
	RateBurst     int     `help:"Burst size for the per-key rate limit." env:"RATE_BURST" default:"5"`
	LogLevel      string  `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

const defaultOllamaModel = "llama3.2"

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	summarizer, err := c.newSummarizer(ctx)
	if err != nil {
		return err
	}

	log.Info("Listening", slog.String("addr", c.ListenAddr), slog.String("provider", c.Provider))
	ln, err := net.Listen("tcp", c.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.ListenAddr, err)
	}
	return c.serve(ctx, ln, log, summarizer)
}

// serve runs the backend on ln until ctx is done, then shuts down.
func (c ServeCommand) serve(ctx context.Context, ln net.Listener, log *slog.Logger, summarizer pagegist.Summarizer) error {
	limiter := pghttp.NewKeyLimiter(c.RateLimit, c.RateBurst)
	handler := pghttp.NewServer(log, pgslog.NewLoggingSummarizer(summarizer, log), limiter)
	s := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newSummarizer builds the summarizer for the configured provider.
func (c ServeCommand) newSummarizer(ctx context.Context) (pagegist.Summarizer, error) {
	switch c.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(c.Model)}
		if c.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(c.OpenAIBaseURL))
		}
		return openai.NewSummarizer(opts...), nil
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return nil, pagegist.Errorf(pagegist.ECONFIG, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.NewSummarizer(client, c.Model), nil
	case ProviderOllama:
		model := c.Model
		if model == "" {
			model = defaultOllamaModel
		}
		llm, err := ollama.New(
			ollama.WithModel(model),
			ollama.WithHTTPClient(&http.Client{}),
			ollama.WithServerURL(c.OllamaURL))
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM: %w", err)
		}
		return langchaingo.NewSummarizer(llm), nil
	default:
		return nil, pagegist.Errorf(pagegist.ECONFIG, "unknown provider %q", c.Provider)
	}
}
