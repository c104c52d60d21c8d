// Package cli implements the weather command line tool.
//
// # Usage
//
//	weather <location> [--forecast|-f] [--days|-d N]
//
// Flags may appear before or after the location. The report is decorated
// with emoji only when the output is a terminal.
//
// # Exit codes
//
// Run returns 0 on success, 1 when the provider has no data or fails, and
// 2 on a usage error.
package cli
