package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/weather-mcp-go/internal/config"
	"github.com/wagiedev/weather-mcp-go/internal/protocol"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
)

// NewServer creates an SDK server exposing every tool in reg.
// Tools registered after NewServer returns are not exposed.
func NewServer(reg *registry.Registry, info config.ServerInfo, log *slog.Logger) *mcp.Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("component", "mcp")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    info.Name,
		Version: info.Version,
	}, &mcp.ServerOptions{Logger: log})

	for _, tool := range reg.Tools() {
		server.AddTool(tool, ToolHandler(reg, tool.Name, log))
	}

	log.Debug("SDK server ready", "tools", reg.Len())

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// ToolHandler adapts the named registry tool to an SDK tool handler.
//
// Validation and execution failures are tool errors: they are reported in
// the result with IsError set, not as protocol errors.
func ToolHandler(reg *registry.Registry, name string, log *slog.Logger) mcp.ToolHandler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		result, err := reg.Invoke(ctx, name, args)
		if err != nil {
			log.Warn("Tool call failed", "tool", name, "error", err)

			return ErrorResult(err.Error()), nil
		}

		text, err := protocol.EncodeResult(result)
		if err != nil {
			log.Error("Failed to encode tool result", "tool", name, "error", err)

			return ErrorResult("Failed to encode result: " + err.Error()), nil
		}

		return TextResult(text), nil
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// ResultText concatenates the text blocks of a CallToolResult.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var text string

	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}

	return text
}
