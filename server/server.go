// Package server serves the dashboard over HTTP: an HTML page with the filter
// sidebar and the dispatch button, and the same operations as a JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/metrics"
	"github.com/etnz/cartera/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Server holds one session shared by every request.
type Server struct {
	mu      sync.Mutex
	session *cartera.Session
	last    *cartera.Batch // last dispatch, shown once on the page

	metrics *metrics.Collector
	logger  *slog.Logger
	md      goldmark.Markdown
}

// New creates a server on session s. A nil collector disables metrics, a nil logger means slog.Default().
func New(s *cartera.Session, m *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		session: s,
		metrics: m,
		logger:  logger,
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	srv.observe(0)
	return srv
}

// Handler returns the routes of the dashboard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/filter", s.handleFilterForm)
	r.Post("/dispatch", s.handleDispatchForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/accounts", s.handleAccounts)
		r.Get("/filter", s.handleGetFilter)
		r.Put("/filter", s.handlePutFilter)
		r.Post("/dispatch", s.handleDispatch)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.sendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	return r
}

// today is the day of the report: the creation day of the table.
func (s *Server) today() date.Date { return date.Of(s.session.Table().Created()) }

// update applies fn to the session and records the new report.
func (s *Server) update(fn func(*cartera.Session)) {
	start := time.Now()
	fn(s.session)
	s.observe(time.Since(start))
	s.logger.Info("filter changed",
		slog.String("filter", s.session.Filter().String()),
		slog.Int("visible", s.session.View().Len()))
}

func (s *Server) observe(took time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveReport(s.session.Report(), took)
	}
}

func (s *Server) dispatch() cartera.Batch {
	b := s.session.Dispatch()
	s.last = &b
	if s.metrics != nil {
		s.metrics.ObserveDispatch(b)
		s.metrics.ObserveReport(s.session.Report(), 0)
	}
	s.logger.Info("notice dispatched",
		slog.String("batch", b.ID.String()),
		slog.Int("count", b.Count))
	return b
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d := renderer.NewDashboard(s.today(), s.session, s.last)
	s.last = nil
	f := s.session.Filter()
	s.mu.Unlock()

	var body bytes.Buffer
	if err := s.md.Convert([]byte(renderer.RenderDashboard(d, renderer.DashboardRenderOptions{})), &body); err != nil {
		s.sendError(w, err.Error(), http.StatusInternalServerError, "RENDER_ERROR")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, f, body.String()); err != nil {
		s.logger.Error("page rendering failed", slog.String("error", err.Error()))
	}
}

func (s *Server) handleFilterForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest, "INVALID_FORM")
		return
	}
	f, err := parseFilter(r.PostForm["exclude"], r.PostForm["include"], r.PostForm.Get("where"))
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest, "INVALID_FILTER")
		return
	}
	s.mu.Lock()
	s.update(func(session *cartera.Session) { session.SetFilter(f) })
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDispatchForm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.dispatch()
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rep := renderer.NewReport(s.today(), s.session.Filter(), s.session.Report())
	s.mu.Unlock()
	s.sendJSON(w, rep, http.StatusOK)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := renderer.NewAccounts(s.session.View())
	s.mu.Unlock()
	s.sendJSON(w, a, http.StatusOK)
}

// FilterRequest is the JSON form of a filter. An empty Include selects nothing.
type FilterRequest struct {
	Exclude []string `json:"exclude"`
	Include []string `json:"include"`
	Where   string   `json:"where,omitempty"`
}

func newFilterRequest(f cartera.Filter) FilterRequest {
	return FilterRequest{Exclude: f.Exclude.Strings(), Include: f.Include.Strings(), Where: f.Where.String()}
}

func (s *Server) handleGetFilter(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := s.session.Filter()
	s.mu.Unlock()
	s.sendJSON(w, newFilterRequest(f), http.StatusOK)
}

func (s *Server) handlePutFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	f, err := parseFilter(req.Exclude, req.Include, req.Where)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest, "INVALID_FILTER")
		return
	}
	s.mu.Lock()
	s.update(func(session *cartera.Session) { session.SetFilter(f) })
	rep := renderer.NewReport(s.today(), s.session.Filter(), s.session.Report())
	s.mu.Unlock()
	s.sendJSON(w, rep, http.StatusOK)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b := s.dispatch()
	s.last = nil
	s.mu.Unlock()
	s.sendJSON(w, renderer.NewDispatch(b), http.StatusOK)
}

// parseFilter reads the sidebar selections, where no portfolio checked means none.
func parseFilter(exclude, include []string, where string) (cartera.Filter, error) {
	var (
		f   cartera.Filter
		err error
	)
	if f.Exclude, err = cartera.ParseStatuses(exclude...); err != nil {
		return f, err
	}
	if f.Include, err = cartera.ParsePortfolios(include...); err != nil {
		return f, err
	}
	if f.Where, err = cartera.CompilePredicate(where); err != nil {
		return f, err
	}
	return f, nil
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int, code string) {
	s.sendJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
	s.logger.Warn("API error response",
		slog.String("message", message),
		slog.String("code", code),
		slog.Int("status", statusCode))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// ListenAndServe serves the dashboard on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", slog.String("addr", addr))
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
