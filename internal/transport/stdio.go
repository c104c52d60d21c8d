package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const (
	// maxScanTokenSize is the maximum size of one input line.
	maxScanTokenSize = 1024 * 1024 // 1MB
)

// Handler processes one message. ok is false when nothing must be written.
type Handler interface {
	HandleMessage(ctx context.Context, line []byte) (resp []byte, ok bool)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, line []byte) ([]byte, bool)

// HandleMessage implements Handler.
func (f HandlerFunc) HandleMessage(ctx context.Context, line []byte) ([]byte, bool) {
	return f(ctx, line)
}

// Stdio serves a Handler over a pair of byte streams, one message per line.
type Stdio struct {
	log *slog.Logger
	in  io.Reader
	out io.Writer
	mu  sync.Mutex // Protects out
}

// NewStdio creates a transport reading from in and writing to out.
// If log is nil, logging is disabled.
func NewStdio(log *slog.Logger, in io.Reader, out io.Writer) *Stdio {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Stdio{
		log: log.With("component", "transport"),
		in:  in,
		out: out,
	}
}

// Serve runs the read-handle-write loop until the input ends, ctx is
// cancelled, or a read or write fails.
//
// EOF returns nil. Cancellation returns ctx.Err(). Blank lines are skipped.
func (t *Stdio) Serve(ctx context.Context, h Handler) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		defer t.log.Debug("Input reader stopped")

		scanner := bufio.NewScanner(t.in)
		// Set large buffer for big messages
		buf := make([]byte, 64*1024)
		scanner.Buffer(buf, maxScanTokenSize)

		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			// The scanner reuses its buffer; hand off a copy.
			msg := make([]byte, len(line))
			copy(msg, line)

			select {
			case lines <- msg:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			t.log.Error("Scanner error while reading input", "error", err)

			readErr <- fmt.Errorf("read input: %w", err)
		}
	}()

	t.log.Info("Transport serving")

	messageCount := 0

	for {
		select {
		case <-ctx.Done():
			t.log.Debug("Context cancelled, stopping transport", "error", ctx.Err())

			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
				}

				t.log.Info("Input closed, stopping transport", "message_count", messageCount)

				return nil
			}

			messageCount++

			resp, ok := h.HandleMessage(ctx, line)
			if !ok {
				continue
			}

			if err := t.WriteMessage(resp); err != nil {
				return err
			}
		}
	}
}

// WriteMessage writes data followed by a newline. It is safe for concurrent use.
func (t *Stdio) WriteMessage(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Use explicit copy to avoid mutating caller's backing array if slice has spare capacity
	if len(data) == 0 || data[len(data)-1] != '\n' {
		newData := make([]byte, len(data)+1)
		copy(newData, data)
		newData[len(data)] = '\n'
		data = newData
	}

	if _, err := t.out.Write(data); err != nil {
		t.log.Error("Failed to write message", "error", err)

		return fmt.Errorf("write output: %w", err)
	}

	t.log.Debug("Message written", "data_len", len(data))

	return nil
}
