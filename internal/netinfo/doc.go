// Package netinfo discovers the local IPv4 address the server should
// advertise to other devices on the same WiFi segment.
//
// Resolution is deterministic given the current interface table, never
// blocks, and degrades to "not found" instead of failing: an absent or
// downed interface simply means the caller advertises a loopback URL. The
// WiFi interface name varies per platform and is configurable; see
// DefaultInterface for the per-OS defaults.
package netinfo
