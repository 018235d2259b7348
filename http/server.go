package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/fwojciec/pagegist"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Server is the summarization backend.
type Server struct {
	summarizer pagegist.Summarizer
	limiter    *KeyLimiter
	log        *slog.Logger
	mux        *http.ServeMux
	handler    http.Handler
}

// NewServer returns a Server that summarizes with summarizer. A nil
// limiter disables rate limiting.
func NewServer(log *slog.Logger, summarizer pagegist.Summarizer, limiter *KeyLimiter) *Server {
	s := &Server{
		summarizer: summarizer,
		limiter:    limiter,
		log:        log,
		mux:        http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("POST /summarize", s.handleSummarize)
	s.handler = cors.AllowAll().Handler(s.mux)
	return s
}

// Handler returns the server's handler. Any origin may call it since
// extension origins are not known ahead of time.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, map[string]string{"message": "Backend is running!"}, http.StatusOK)
}

// summarizeBody mirrors pagegist.SummarizeRequest but lets mode default.
type summarizeBody struct {
	Content []pagegist.Block `json:"content"`
	APIKey  string           `json:"apiKey"`
	Mode    *string          `json:"mode"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("requestID", uuid.NewString()))

	var body summarizeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to decode body", slog.Any("error", err))
		writeError(w, "failed to decode body", http.StatusBadRequest)
		return
	}

	req := &pagegist.SummarizeRequest{
		Content: body.Content,
		APIKey:  body.APIKey,
		Mode:    pagegist.ModeDefault,
	}
	if body.Mode != nil {
		req.Mode = pagegist.Mode(*body.Mode)
	}
	if err := req.Validate(); err != nil {
		writeError(w, pagegist.ErrorMessage(err), http.StatusBadRequest)
		return
	}

	if !s.limiter.Allow(req.APIKey) {
		log.Info("rate limited")
		writeError(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	log.Info("summarizing", slog.Int("blocks", len(req.Content)), slog.String("mode", string(req.Mode)))
	resp, err := s.summarizer.Summarize(r.Context(), req)
	if err != nil {
		log.Error("failed to summarize", slog.Any("error", err))
		switch pagegist.ErrorCode(err) {
		case pagegist.EINVALID, pagegist.ECONFIG:
			writeError(w, pagegist.ErrorMessage(err), http.StatusBadRequest)
		case pagegist.EBACKEND:
			writeError(w, pagegist.ErrorMessage(err), http.StatusBadGateway)
		default:
			writeError(w, "failed to generate summary", http.StatusInternalServerError)
		}
		return
	}

	respond.WithJSON(w, resp, http.StatusOK)
}

func writeError(w http.ResponseWriter, detail string, status int) {
	respond.WithJSON(w, pagegist.ErrorResponse{Detail: detail}, status)
}
