// Package web serves the weather tools as a small REST API with a browser
// front page.
package web

import (
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/protocol"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
	"github.com/wagiedev/weather-mcp-go/internal/tools"
)

//go:embed index.html
var indexHTML []byte

const (
	// DefaultLocation is used when a request omits location.
	DefaultLocation = "London"

	// maxBodySize caps request bodies.
	maxBodySize = 64 * 1024
)

// Config configures a Server.
type Config struct {
	// Registry holds the weather tools. Required.
	Registry *registry.Registry

	// Session opens the provider on first use. If nil, one without a
	// provider lifecycle is created.
	Session *protocol.Session

	// APIKey is reported (by length only) on /api/status.
	APIKey string

	// Logger receives request tracking output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Server is the REST frontend.
type Server struct {
	log      *slog.Logger
	registry *registry.Registry
	session  *protocol.Session
	apiKey   string
	mux      *http.ServeMux
}

// Envelope is the body of every /api/weather response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status is the body of /api/status.
type Status struct {
	APIKeyConfigured bool `json:"api_key_configured"` //nolint:tagliatelle // wire format uses snake_case
	APIKeyLength     int  `json:"api_key_length"`     //nolint:tagliatelle // wire format uses snake_case
}

// weatherRequest is the body accepted by the /api/weather endpoints.
type weatherRequest struct {
	Location string `json:"location"`
	Days     *int   `json:"days,omitempty"`
}

// NewServer creates the REST frontend.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	session := cfg.Session
	if session == nil {
		session = protocol.NewSession(log, nil)
	}

	s := &Server{
		log:      log.With("component", "web"),
		registry: cfg.Registry,
		session:  session,
		apiKey:   cfg.APIKey,
		mux:      http.NewServeMux(),
	}
	s.routes()

	return s
}

// Handler returns the HTTP handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/weather/current", s.handleCurrent)
	s.mux.HandleFunc("POST /api/weather/forecast", s.handleForecast)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
}

// withRequestID tags every request with a ULID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ulid.Make().String()
		start := time.Now()

		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)

		s.log.Debug("Request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// GET /: browser front page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// POST /api/weather/current
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	s.invoke(w, r, tools.CurrentWeatherTool, map[string]any{"location": req.Location})
}

// POST /api/weather/forecast
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	days := tools.DefaultForecastDays
	if req.Days != nil {
		days = *req.Days
	}

	s.invoke(w, r, tools.ForecastTool, map[string]any{"location": req.Location, "days": days})
}

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Status{
		APIKeyConfigured: s.apiKey != "",
		APIKeyLength:     len(s.apiKey),
	})
}

// decode reads the request body. An empty body means all defaults.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (weatherRequest, bool) {
	var req weatherRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "failed to read request body"})

		return req, false
	}

	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.log.Debug("Rejected request body", "path", r.URL.Path, "error", err)
			writeJSON(w, http.StatusBadRequest, Envelope{Error: "invalid JSON body: " + err.Error()})

			return req, false
		}
	}

	if strings.TrimSpace(req.Location) == "" {
		req.Location = DefaultLocation
	}

	return req, true
}

// invoke runs a tool and writes the envelope.
func (s *Server) invoke(w http.ResponseWriter, r *http.Request, tool string, args map[string]any) {
	ctx := r.Context()

	if err := s.session.Initialize(ctx, nil); err != nil {
		s.log.Error("Failed to initialize session", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, Envelope{Error: err.Error()})

		return
	}

	raw, err := json.Marshal(args)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Envelope{Error: err.Error()})

		return
	}

	result, err := s.registry.Invoke(ctx, tool, raw)
	if err != nil {
		status := http.StatusInternalServerError
		if _, ok := stderrors.AsType[*errors.InvalidArgumentsError](err); ok {
			status = http.StatusBadRequest
		}

		writeJSON(w, status, Envelope{Error: err.Error()})

		return
	}

	if miss, ok := result.(tools.DataError); ok {
		writeJSON(w, http.StatusOK, Envelope{Error: miss.Error})

		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
