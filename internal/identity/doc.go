// Package identity loads the server's TLS identity from a password-protected
// PKCS#12 bundle.
//
// The bundle holds the certificate chain and private key the server presents
// to browsers. It is decoded once per server start and never refreshed while
// the listener is up; restarting the server picks up a replaced bundle.
//
// Failures split into two sentinel errors so callers can report them
// precisely: ErrNotFound when the bundle file is missing, ErrDecode when the
// passphrase is wrong or the bundle is malformed. Both are terminal for the
// current start attempt.
package identity
