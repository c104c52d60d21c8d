// Package protocol implements the JSON-RPC 2.0 message contract of the
// weather MCP server.
//
// The Dispatcher parses one request, routes it by method, and renders one
// response (or none, for notifications). It owns a Session that tracks the
// initialize handshake and the provider lifecycle.
//
// Supported methods:
//   - initialize
//   - notifications/initialized
//   - ping
//   - tools/list
//   - tools/call
//
// Example usage:
//
//	session := protocol.NewSession(log, provider)
//	defer session.Close()
//
//	d := protocol.NewDispatcher(protocol.Config{
//		Registry: reg,
//		Session:  session,
//		Logger:   log,
//	})
//
//	resp, ok := d.HandleMessage(ctx, line)
//	if ok {
//		os.Stdout.Write(append(resp, '\n'))
//	}
package protocol
