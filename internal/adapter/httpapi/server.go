// Package httpapi exposes the parsed and aggregated model output as JSON
// for the dashboard renderer, alongside health, readiness, and metrics
// endpoints and the pre-existing PDF validation report.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kokihydro/swatmf-dashboard-service/internal/config"
	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
	"github.com/kokihydro/swatmf-dashboard-service/internal/stats"
	"github.com/kokihydro/swatmf-dashboard-service/internal/store"
)

// DatasetSource hands out the current dataset, reloading when the input
// files change. Implemented by *store.Store.
type DatasetSource interface {
	Get(ctx context.Context) (*store.Dataset, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard data API.
type Server struct {
	httpServer *http.Server
	source     DatasetSource
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, health, readiness, and
// metrics routes.
func NewServer(cfg *config.Config, source DatasetSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source: source,
		cfg:    cfg,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/gwsw/months", s.handleGwswMonths)
	mux.HandleFunc("GET /api/gwsw/{month}", s.handleGwswGrid)
	mux.HandleFunc("GET /api/recharge/{month}", s.handleRechargeGrid)
	mux.HandleFunc("GET /report", s.handleReport)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.source.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// monthsResponse lists the months either dataset can render.
type monthsResponse struct {
	Months []int `json:"months"`
}

func (s *Server) handleGwswMonths(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, monthsResponse{Months: ds.Flow.Months})
}

// gridResponse carries one month's grid plus the color-scale range the
// renderer normalizes against.
type gridResponse struct {
	Month int                `json:"month"`
	Stat  string             `json:"stat,omitempty"`
	Units string             `json:"units,omitempty"`
	Grid  *domain.Grid       `json:"grid"`
	Range stats.DisplayRange `json:"range,omitzero"`
}

func (s *Server) handleGwswGrid(w http.ResponseWriter, r *http.Request) {
	month, ok := monthPathValue(w, r)
	if !ok {
		return
	}
	statName := r.URL.Query().Get("stat")
	if statName == "" {
		statName = "mean"
	}
	if statName != "mean" && statName != "std" {
		writeError(w, http.StatusBadRequest, "stat must be \"mean\" or \"std\"")
		return
	}

	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	grid := stats.StatGrid(ds.Flow, month, s.cfg.GridRows, s.cfg.GridCols, statName == "std")

	// Standard deviation is non-negative, so its scale floors at zero;
	// the shared maximum keeps the colorbar comparable across both stats.
	rng := ds.Flow.Range
	if statName == "std" {
		rng.Min = 0
	}

	writeJSON(w, http.StatusOK, gridResponse{
		Month: month,
		Stat:  statName,
		Units: "m3/day",
		Grid:  grid,
		Range: rng,
	})
}

func (s *Server) handleRechargeGrid(w http.ResponseWriter, r *http.Request) {
	month, ok := monthPathValue(w, r)
	if !ok {
		return
	}
	units := r.URL.Query().Get("units")
	if units == "" {
		units = "mm/month"
	}
	if units != "mm/month" && units != "m3/day" {
		writeError(w, http.StatusBadRequest, "units must be \"mm/month\" or \"m3/day\"")
		return
	}

	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	grid, found := ds.RechargeMean[month]
	if !found {
		writeError(w, http.StatusNotFound, "no recharge data for that month")
		return
	}
	if units == "mm/month" {
		area := s.cfg.CellAreaM2
		grid = grid.Map(func(v float64) float64 {
			return domain.RechargeDepthMM(v, month, area)
		})
	}

	writeJSON(w, http.StatusOK, gridResponse{
		Month: month,
		Units: units,
		Grid:  grid,
	})
}

// handleReport streams the pre-existing PDF validation report. The report
// is produced by the modeling team, never generated here.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ReportFile == "" {
		writeError(w, http.StatusNotFound, "no report configured")
		return
	}
	f, err := os.Open(s.cfg.ReportFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "report file not found")
			return
		}
		s.logger.Error("open report file", "path", s.cfg.ReportFile, "error", err)
		writeError(w, http.StatusInternalServerError, "report unavailable")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, "validation-report.pdf", time.Time{}, f)
}

// dataset fetches the current dataset, writing a 503 on load failure.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*store.Dataset, bool) {
	ds, err := s.source.Get(r.Context())
	if err != nil {
		s.logger.Error("dataset load failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return ds, true
}

func monthPathValue(w http.ResponseWriter, r *http.Request) (int, bool) {
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be an integer 1-12")
		return 0, false
	}
	return month, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
