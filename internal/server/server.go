// Package server exposes the research service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/news"
	"stock-research-agent/internal/research"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/types"
)

// Server routes research requests to the research service.
type Server struct {
	httpServer *http.Server
	cfg        *store.Config
	research   *research.Service
}

func New(cfg *store.Config, researchSvc *research.Service) *Server {
	s := &Server{
		cfg:      cfg,
		research: researchSvc,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/stock-research/research", s.handleResearch)
	mux.HandleFunc("GET /api/stock-research/stock-data/{ticker}", s.handleStockData)
	mux.HandleFunc("GET /api/stock-research/news/{ticker}", s.handleNews)
	mux.HandleFunc("GET /api/stock-research/correlation/{ticker}", s.handleCorrelation)

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	logger.Info(ctx, "HTTP server listening", "addr", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "HTTP server stopped", "error", err.Error())
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(context.Background(), "Failed to encode response", "error", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "error": msg})
}

// GET / — welcome payload.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Stock Research API"})
}

// POST /api/stock-research/research — full research run. Core failures are
// reported in the response body with status "error"; only malformed request
// JSON and unknown tickers map to non-200 codes.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req types.ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if req.Ticker == "" {
		s.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	resp, err := s.research.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, research.ErrNoData) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.ErrorWithErr(r.Context(), "Research run failed", err, "ticker", req.Ticker)
		s.writeJSON(w, http.StatusOK, types.ResearchResponse{
			Ticker: req.Ticker,
			Status: "error",
			Error:  err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GET /api/stock-research/stock-data/{ticker}?period=1wk
func (s *Server) handleStockData(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))
	period := r.URL.Query().Get("period")
	if period == "" {
		period = s.cfg.Stock.Period
	}

	stockData, err := s.research.Prices().FetchStockData(r.Context(), ticker, period)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stockData == nil || len(stockData.DailyChanges) == 0 {
		s.writeError(w, http.StatusNotFound, "stock data not found for ticker "+ticker)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ticker": ticker, "stock_data": stockData})
}

// GET /api/stock-research/news/{ticker}?days=7
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))
	days := s.cfg.News.Days
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	stockData, err := s.research.Prices().FetchStockData(r.Context(), ticker, s.cfg.Stock.Period)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stockData == nil || len(stockData.DailyChanges) == 0 {
		s.writeError(w, http.StatusNotFound, "stock data not found for ticker "+ticker)
		return
	}

	articles, err := s.research.News().FetchNews(r.Context(), stockData.Name, ticker, days)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ticker":        ticker,
		"company_name":  stockData.Name,
		"news_articles": articles,
		"news_summary":  news.ExtractKeyPoints(articles),
	})
}

// GET /api/stock-research/correlation/{ticker}?period=1wk
func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))
	period := r.URL.Query().Get("period")

	stockData, correlation, err := s.research.CorrelationFor(r.Context(), ticker, period)
	if err != nil {
		if errors.Is(err, research.ErrNoData) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ticker":               ticker,
		"company_name":         stockData.Name,
		"correlation_analysis": correlation,
	})
}
