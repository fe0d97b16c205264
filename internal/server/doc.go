// Package server implements the HTTPS page server core: listener lifecycle,
// per-connection handling, and the state machine observers watch.
//
// # Lifecycle
//
// The Controller moves through stopped -> starting -> running, or to failed
// when the identity cannot be loaded or the port cannot be bound. Start and
// Stop are idempotent: calling either in the wrong state emits a warning
// event and changes nothing. Stop requests cancellation; the transition to
// stopped is confirmed asynchronously once the accept loop has drained.
//
// # Connections
//
// Each accepted connection gets a per-run monotonic identifier and its own
// goroutine: one TLS handshake, one bounded read, the fixed response, close.
// The request line is inspected only for logging. The server never routes:
// every request receives the same document with Connection: close.
//
// Concurrency is capped (config.MaxConns); connections beyond the cap are
// shed immediately so the accept path never stalls. Idle connections are
// closed after config.IdleTimeout. Stop closes all in-flight connections in
// bulk.
//
// # Handshake noise
//
// Browsers probing a self-signed certificate abort the handshake as a matter
// of course. Those failures are classified (typed TLS errors first, keyword
// match as fallback) and suppressed from the warning stream; every other
// connection failure produces exactly one warning tagged with the
// connection identifier.
//
// # Observability
//
// The controller is the single writer of its State. Everything else reads
// Snapshot copies (OnState callbacks or polling) and the events.Hub stream.
package server
