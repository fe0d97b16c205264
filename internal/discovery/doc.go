// Package discovery advertises the running page server over mDNS.
//
// The whole point of the server is to be reached by a second device on the
// same WiFi segment; advertising as _https._tcp lets that device discover
// the page by browsing for the service instead of typing the URL from the
// first device's screen. Advertisement is best-effort: a registration
// failure degrades to a warning, never a failed start.
package discovery
