// Package config defines the server configuration and its YAML persistence.
//
// Every literal the legacy app hard-coded (listen port 8443, bundle
// passphrase, WiFi interface name, 100-entry log cap) lives here as a
// documented default, overridable via the config file or command-line flags.
// The config file lives in the platform's conventional configuration
// directory; see GetConfigDir.
package config
