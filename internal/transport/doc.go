// Package transport moves newline-delimited JSON-RPC messages between a
// byte stream and a message handler.
//
// Stdio reads one line, hands it to the handler, writes the response line,
// then reads the next. EOF on the input ends the loop without error.
package transport
