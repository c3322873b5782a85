package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"txdash/internal/models"
	"txdash/web"
)

// defaultDisplayAccounts is the dashboard's bar-chart window. The
// aggregation itself keeps up to the configured top-N (100 by
// default); clients may only narrow that, never widen it.
const defaultDisplayAccounts = 20

// Server renders the dashboard and serves the summary tables as JSON.
// The report is the read-only output of one pipeline run.
type Server struct {
	report *models.Report
	tmpl   *template.Template
	logger *zap.Logger
}

func NewServer(report *models.Report, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Server{report: report, tmpl: tmpl, logger: logger}, nil
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.DashboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.SummaryHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/hourly", s.HourlyHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/accounts", s.AccountsHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.HealthHandler).Methods(http.MethodGet)
	return r
}

// HTTPServer wraps the router in an http.Server with sane timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Summary is the summary-panel payload: global stats plus the derived
// success-rate percentage.
type Summary struct {
	models.GlobalStats
	SuccessRate float64 `json:"success_rate"`
}

func (s *Server) summary() Summary {
	return Summary{
		GlobalStats: s.report.Global,
		SuccessRate: s.report.Global.SuccessRate(),
	}
}

// DashboardHandler serves the single-page dashboard. The summary panel
// is rendered server-side; charts fetch the JSON endpoints.
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, struct{ Summary Summary }{s.summary()}); err != nil {
		s.logger.Error("render dashboard", zap.Error(err))
	}
}

func (s *Server) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.summary())
}

func (s *Server) HourlyHandler(w http.ResponseWriter, r *http.Request) {
	hourly := s.report.Hourly
	if hourly == nil {
		hourly = []models.HourlyStats{}
	}
	s.writeJSON(w, hourly)
}

// AccountsHandler returns the ranked accounts, truncated to the
// display window. ?limit=N narrows the window; it is clamped to the
// aggregated ranking and never widens it.
func (s *Server) AccountsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultDisplayAccounts
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Invalid 'limit' query parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	accounts := s.report.Accounts
	if limit > len(accounts) {
		limit = len(accounts)
	}
	if accounts == nil {
		accounts = []models.AccountStats{}
	}
	s.writeJSON(w, accounts[:limit])
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}
