// Package logging provides structured logging for the LAN page server.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the server. It provides both general logging
// functions and specialized functions for connection-level logging.
//
// # Log Levels
//
//   - Debug: Detailed debugging info (handshake parameters, raw request lines)
//   - Info: Normal operations (connections, requests, state changes)
//   - Warn: Non-fatal issues (connection drops, address resolution fallback)
//   - Error: Fatal issues (startup failures, identity errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Server running",
//	    zap.String("url", "https://192.168.1.20:8443/"),
//	    zap.Int("port", 8443),
//	)
//
// # Silent Mode
//
// When no level is configured (flag or WEBRTC_LAN_SERVER_LOG_LEVEL), the
// package installs a nop logger. The TUI command relies on this: its event
// stream renders inside the dashboard, and any direct stdout writes would
// tear the display.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
