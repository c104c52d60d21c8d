package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the text logger used by the commands. level is parsed
// with ParseLogLevel; empty means info.
//
// Commands that speak MCP over stdio must pass os.Stderr.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
