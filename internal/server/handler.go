package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// Analyzer grades a repository given its URL.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*domain.AnalysisResult, error)
}

// Handler serves the analysis API.
type Handler struct {
	analyzer       Analyzer
	requestTimeout time.Duration
	logger         *log.Logger
}

// NewHandler creates a Handler. A zero requestTimeout disables the per-request deadline.
func NewHandler(analyzer Analyzer, requestTimeout time.Duration, logger *log.Logger) *Handler {
	return &Handler{
		analyzer:       analyzer,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Routes returns the API mux wrapped in CORS and access logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	return AccessLog(h.logger, CORS(mux))
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleAnalyze serves GET /api/analyze?url=<repository URL>.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url query parameter"})
		return
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	result, err := h.analyzer.AnalyzeURL(ctx, rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentifier) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Printf("Analysis of %q failed: %v", rawURL, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
