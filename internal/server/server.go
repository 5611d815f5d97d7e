// Package server exposes the dashboard service over HTTP.
package server

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/dashboard"
	"TickerBoard/internal/model"
	"TickerBoard/internal/ticker"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// Server serves the chart, series and ticker list endpoints.
type Server struct {
	svc  *dashboard.Service
	http *http.Server
}

// New creates a Server listening on addr.
func New(addr string, svc *dashboard.Service) *Server {
	s := &Server{svc: svc}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/tickers", s.handleTickers)
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("GET /api/series", s.handleSeries)
	return withRequestLog(mux)
}

// ListenAndServe blocks until the server stops. A clean Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type chartResponse struct {
	Chart   model.ChartSpec `json:"chart"`
	Message string          `json:"message,omitempty"`
	Kind    model.ErrorKind `json:"kind,omitempty"`
}

type barJSON struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume"`
}

type seriesResponse struct {
	Ticker  string              `json:"ticker"`
	Start   string              `json:"start"`
	Bars    []barJSON           `json:"bars"`
	Summary model.SeriesSummary `json:"summary"`
}

type errorResponse struct {
	Error string          `json:"error"`
	Kind  model.ErrorKind `json:"kind,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTickers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tickers": s.svc.Tickers()})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	start, ok := parseStart(w, r)
	if !ok {
		return
	}
	spec, err := s.svc.LoadTickerChart(r.Context(), r.URL.Query().Get("ticker"), start)
	writeJSON(w, http.StatusOK, chartResponse{
		Chart:   spec,
		Message: dashboard.Describe(err),
		Kind:    model.KindOf(err),
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	start, ok := parseStart(w, r)
	if !ok {
		return
	}
	if start.IsZero() {
		start = s.svc.DefaultStartDate()
	}
	series, err := s.svc.GetRawSeries(r.Context(), r.URL.Query().Get("ticker"), start)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: dashboard.Describe(err), Kind: model.KindOf(err)})
		return
	}
	summary, err := calculator.Summarize(series)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := seriesResponse{
		Ticker:  ticker.Normalize(r.URL.Query().Get("ticker")),
		Start:   start.Format(model.DateLayout),
		Bars:    make([]barJSON, len(series)),
		Summary: summary,
	}
	for i, b := range series {
		resp.Bars[i] = barJSON{
			Date:   b.Date.Format(model.DateLayout),
			Open:   finite(b.Open),
			High:   finite(b.High),
			Low:    finite(b.Low),
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseStart reads the optional start query parameter. On a malformed value it
// writes a 400 and returns false.
func parseStart(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("start")
	if raw == "" {
		return time.Time{}, true
	}
	start, err := model.ParseDay(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return start, true
}

func statusFor(err error) int {
	switch model.KindOf(err) {
	case model.KindInvalidTicker:
		return http.StatusBadRequest
	case model.KindNoData:
		return http.StatusNotFound
	case model.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with an ID and writes one access log line.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		begin := time.Now()
		next.ServeHTTP(rec, r)

		log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", rec.status).
			Dur("took", time.Since(begin)).
			Msg("request")
	})
}
