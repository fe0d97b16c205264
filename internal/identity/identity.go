package identity

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/wenzhi0209/webrtc-lan-server/internal/logging"
	"go.uber.org/zap"
)

// Sentinel errors for the two ways a start attempt can fail before any
// socket is bound. Both are terminal for the attempt; the controller does
// not retry.
var (
	// ErrNotFound indicates the bundle file is absent.
	ErrNotFound = errors.New("identity bundle not found")
	// ErrDecode indicates a wrong passphrase or a malformed bundle.
	ErrDecode = errors.New("identity bundle could not be decoded")
)

// Identity is the certificate and private key the server presents during the
// TLS handshake. It is immutable after Load and reloaded on every start.
type Identity struct {
	cert tls.Certificate
	leaf *x509.Certificate
}

// Load reads and decrypts a PKCS#12 bundle. The passphrase historically was
// a hard-coded literal; it now arrives from configuration.
func Load(bundlePath, passphrase string) (*Identity, error) {
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, bundlePath)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNotFound, bundlePath, err)
	}

	key, leaf, caCerts, err := pkcs12.DecodeChain(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	cert := tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  key,
		Leaf:        leaf,
	}
	for _, ca := range caCerts {
		cert.Certificate = append(cert.Certificate, ca.Raw)
	}

	logging.Info("TLS identity loaded",
		zap.String("bundle", bundlePath),
		zap.String("subject", leaf.Subject.CommonName),
		zap.Time("not_after", leaf.NotAfter),
	)

	return &Identity{cert: cert, leaf: leaf}, nil
}

// TLSConfig returns a server-side TLS configuration presenting this
// identity. TLS 1.2 is the floor; no client certificate is requested.
func (id *Identity) TLSConfig() *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{id.cert},
		MinVersion:   tls.VersionTLS12,
	}
}

// Leaf returns the server certificate for inspection (subject, validity).
func (id *Identity) Leaf() *x509.Certificate {
	return id.leaf
}
