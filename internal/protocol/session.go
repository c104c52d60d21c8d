package protocol

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Session tracks the initialize handshake and owns the provider lifecycle.
// It is safe for concurrent use.
type Session struct {
	id        string
	log       *slog.Logger
	lifecycle weather.Lifecycle

	mu              sync.Mutex
	initialized     bool
	opened          bool
	closed          bool
	clientInfo      ClientInfo
	protocolVersion string
}

// NewSession creates a Session. lifecycle may be nil when the provider holds
// no resources. If log is nil, logging is disabled.
func NewSession(log *slog.Logger, lifecycle weather.Lifecycle) *Session {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := ulid.Make().String()

	return &Session{
		id:        id,
		log:       log.With("component", "session", "session_id", id),
		lifecycle: lifecycle,
	}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Initialize completes the handshake. The provider is opened on the first
// call only; later calls refresh the client info. params may be nil.
func (s *Session) Initialize(ctx context.Context, params *InitializeParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrSessionClosed
	}

	if !s.opened && s.lifecycle != nil {
		if err := s.lifecycle.Open(ctx); err != nil {
			return fmt.Errorf("open provider: %w", err)
		}
	}

	s.opened = true

	if params != nil {
		s.protocolVersion = params.ProtocolVersion

		if params.ClientInfo != nil {
			s.clientInfo = *params.ClientInfo
		}
	}

	if !s.initialized {
		s.log.Info("Session initialized",
			"client", s.clientInfo.Name,
			"client_version", s.clientInfo.Version,
			"protocol_version", s.protocolVersion,
		)
	}

	s.initialized = true

	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (s *Session) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.initialized
}

// ClientInfo returns the client info sent with initialize.
func (s *Session) ClientInfo() ClientInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clientInfo
}

// Close releases the provider. It is safe to call Close multiple times;
// the provider is closed exactly once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	s.log.Debug("Closing session")

	if s.lifecycle == nil {
		return nil
	}

	if err := s.lifecycle.Close(); err != nil {
		return fmt.Errorf("close provider: %w", err)
	}

	return nil
}
