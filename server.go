package weathermcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	mcpserver "github.com/wagiedev/weather-mcp-go/internal/mcp"
	"github.com/wagiedev/weather-mcp-go/internal/protocol"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
	"github.com/wagiedev/weather-mcp-go/internal/tools"
	"github.com/wagiedev/weather-mcp-go/internal/transport"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
	"github.com/wagiedev/weather-mcp-go/internal/web"
)

// Server serves the weather tools over MCP stdio, MCP streamable HTTP and a
// REST frontend. All frontends share one tool registry and one provider.
//
// Close releases the provider exactly once. Use WithServer for scoped use.
type Server struct {
	log        *slog.Logger
	options    *Options
	provider   weather.Provider
	lifecycle  *sharedLifecycle
	registry   *registry.Registry
	dispatcher *protocol.Dispatcher

	mu       sync.Mutex
	sessions []*protocol.Session
	closed   bool
}

// NewServer creates a server with the weather tools registered.
// No provider resources are acquired until the first request.
func NewServer(opts ...Option) (*Server, error) {
	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	provider := options.Provider
	if provider == nil {
		ow := weather.NewOpenWeather(weather.OpenWeatherConfig{
			APIKey:     options.APIKey,
			BaseURL:    options.BaseURL,
			HTTPClient: options.HTTPClient,
			Logger:     log,
		})
		if !ow.Configured() {
			log.Warn("OpenWeather API key not set; weather lookups will fail", "env", weather.APIKeyEnv)
		}

		provider = ow
	}

	reg := registry.New(log)
	if err := tools.Register(reg, tools.Config{
		Provider: provider,
		Timeout:  options.ProviderTimeout,
		Logger:   log,
	}); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	s := &Server{
		log:      log.With("component", "server"),
		options:  options,
		provider: provider,
		registry: reg,
	}

	if lc, ok := provider.(weather.Lifecycle); ok {
		s.lifecycle = &sharedLifecycle{lc: lc}
	}

	s.dispatcher = protocol.NewDispatcher(protocol.Config{
		Registry:   reg,
		Session:    s.newSession(),
		ServerInfo: options.ServerInfo,
		InitPolicy: options.InitPolicy,
		Logger:     log,
	})

	return s, nil
}

// Options returns the effective options after defaults.
func (s *Server) Options() Options {
	return *s.options
}

// SessionID returns the identifier of the stdio session.
func (s *Server) SessionID() string {
	return s.dispatcher.Session().ID()
}

// Handle processes one JSON-RPC message. ok is false when nothing must be
// written back (notifications).
func (s *Server) Handle(ctx context.Context, line []byte) (resp []byte, ok bool) {
	return s.dispatcher.HandleMessage(ctx, line)
}

// Serve runs the line-delimited JSON-RPC loop over in and out until in
// reaches EOF or ctx is cancelled. EOF returns nil.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.isClosed() {
		return errors.ErrSessionClosed
	}

	s.log.Info("Serving MCP over stdio", "session_id", s.SessionID(), "tools", s.registry.Len())

	return transport.NewStdio(s.log, in, out).Serve(ctx, s.dispatcher)
}

// ServeStdio runs Serve over the process's standard input and output.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// CallTool invokes a tool directly, bypassing JSON-RPC framing. The result
// is a payload such as CurrentWeather, Forecast or DataError.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	if s.isClosed() {
		return nil, errors.ErrSessionClosed
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}

	return s.registry.Invoke(ctx, name, raw)
}

// MCPServer returns an SDK server exposing the weather tools.
func (s *Server) MCPServer() *mcp.Server {
	return mcpserver.NewServer(s.registry, s.options.ServerInfo, s.log)
}

// HTTPHandler serves MCP over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcpserver.NewHTTPHandler(s.MCPServer())
}

// WebHandler serves the REST frontend and its browser page.
func (s *Server) WebHandler() http.Handler {
	return web.NewServer(web.Config{
		Registry: s.registry,
		Session:  s.newSession(),
		APIKey:   s.options.APIKey,
		Logger:   s.log,
	}).Handler()
}

// Close closes every session and releases the provider.
// It's safe to call Close multiple times.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil
	}

	s.closed = true
	sessions := s.sessions
	s.sessions = nil
	s.mu.Unlock()

	var errs []error

	for _, session := range sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if s.lifecycle != nil {
		if err := s.lifecycle.lc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close provider: %w", err))
		}
	}

	s.log.Debug("Server closed")

	return stderrors.Join(errs...)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// newSession creates a session bound to the shared provider lifecycle.
func (s *Server) newSession() *protocol.Session {
	var lc weather.Lifecycle
	if s.lifecycle != nil {
		lc = s.lifecycle
	}

	session := protocol.NewSession(s.log, lc)

	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	s.mu.Unlock()

	return session
}

// sharedLifecycle opens the provider once for every session. Sessions never
// close it; Server.Close does.
type sharedLifecycle struct {
	lc   weather.Lifecycle
	once sync.Once
	err  error
}

func (l *sharedLifecycle) Open(ctx context.Context) error {
	l.once.Do(func() {
		l.err = l.lc.Open(ctx)
	})

	return l.err
}

func (l *sharedLifecycle) Close() error {
	return nil
}
