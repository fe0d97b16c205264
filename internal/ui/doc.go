// Package ui renders the interactive dashboard: current server state, the
// advertised URL, and the capped event log, with keys to start and stop the
// server.
//
// The dashboard is strictly an observer. It subscribes to the event hub and
// state snapshots and issues only the two operations the core exposes,
// Start and Stop. Nothing here is required for headless operation; the
// serve command runs the same core without any of this.
package ui
