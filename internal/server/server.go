// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/markandeyay/rugpullcheck/internal/analyzer"
	"github.com/markandeyay/rugpullcheck/internal/cache"
	"github.com/markandeyay/rugpullcheck/internal/chains"
	"github.com/markandeyay/rugpullcheck/internal/models"
)

const defaultChain = "ethereum"

// TokenAnalyzer runs one full token analysis.
type TokenAnalyzer interface {
	Analyze(ctx context.Context, chain, tokenAddress string) (*models.Report, error)
}

type Server struct {
	analyzer TokenAnalyzer
	cache    cache.Cache
	logger   *slog.Logger
	router   chi.Router
}

func New(tokenAnalyzer TokenAnalyzer, reportCache cache.Cache, frontendURL string, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: tokenAnalyzer,
		cache:    reportCache,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", frontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/report/{chain}/{tokenAddress}", s.handleReport)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Chain == "" {
		req.Chain = defaultChain
	}

	s.analyze(w, r, req.Chain, req.TokenAddress)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	chain := chi.URLParam(r, "chain")
	tokenAddress := chi.URLParam(r, "tokenAddress")

	s.analyze(w, r, chain, tokenAddress)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, chain, tokenAddress string) {
	key := cache.Key(chain, analyzer.NormalizeAddress(tokenAddress))
	if report, ok := s.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), chain, tokenAddress)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		} else {
			s.logger.Error("analysis failed", "chain", chain, "address", tokenAddress, "err", err)
		}
		writeError(w, status, err.Error())
		return
	}

	s.cache.Set(key, report)
	writeJSON(w, http.StatusOK, report)
}

func isClientError(err error) bool {
	var unsupported *chains.ErrUnsupportedChain
	return errors.Is(err, analyzer.ErrInvalidAddress) || errors.As(err, &unsupported)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
