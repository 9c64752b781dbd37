// Package http exposes the folio assistant over a JSON HTTP API.
//
// The wire contract is fixed: GET /api/portfolio returns the static site
// content, POST /api/chat runs one chat turn, and every error surfaces as a
// {"message": ...} body with the appropriate status code.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// TurnProcessor defines the interface for the chat-turn core.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
	Ready() bool
}

// Server holds the handlers' collaborators.
type Server struct {
	Processor TurnProcessor
	Portfolio ports.PortfolioSource
	Version   string
}

// NewHandler creates the HTTP handler for the assistant API.
func NewHandler(processor TurnProcessor, portfolio ports.PortfolioSource, version string) http.Handler {
	server := &Server{
		Processor: processor,
		Portfolio: portfolio,
		Version:   version,
	}

	r := chi.NewRouter()
	r.Use(instrument)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Message: "Method not allowed"})
	})

	r.Get("/api/portfolio", server.GetPortfolio)
	r.Post("/api/chat", server.PostChat)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Message string `json:"message"`
}

// GetPortfolio handles the GET /api/portfolio request.
func (s *Server) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	content, err := s.Portfolio.Portfolio(r.Context())
	if err != nil {
		slog.Error("Portfolio read failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// PostChat handles the POST /api/chat request: one full chat turn.
func (s *Server) PostChat(w http.ResponseWriter, r *http.Request) {
	if !s.Processor.Ready() {
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: domain.ErrNotConfigured.Error()})
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Chat: invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Message: missingFieldsMessage})
		return
	}

	resp, err := s.Processor.ProcessTurn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			writeJSON(w, http.StatusBadRequest, errorBody{Message: missingFieldsMessage})
		case errors.Is(err, domain.ErrNotConfigured):
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: domain.ErrNotConfigured.Error()})
		default:
			slog.Error("Chat turn failed", "session_id", req.SessionID, "err", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

const missingFieldsMessage = "Missing required fields: message, context, sessionId"

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "folio-http",
		"version": s.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}
