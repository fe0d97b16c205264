// Package events carries the server core's observable output: a stream of
// timestamped, kind-tagged messages that presentation code (the TUI log
// view, the headless serve command) renders however it likes.
//
// The core publishes; it never depends on any particular rendering. Delivery
// is best-effort per subscriber so a stalled observer cannot back-pressure
// the accept loop or a connection handler.
package events
