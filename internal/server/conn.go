package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wenzhi0209/webrtc-lan-server/internal/document"
	"github.com/wenzhi0209/webrtc-lan-server/internal/events"
	"github.com/wenzhi0209/webrtc-lan-server/internal/logging"
	"go.uber.org/zap"
)

const (
	// maxRequestBytes is the single-read ceiling; the server never needs
	// more than the request head since bodies are ignored.
	maxRequestBytes = 65536
	// requestLinePreview caps how much of the request line reaches the
	// event stream.
	requestLinePreview = 40
)

// buildResponse precomputes the fixed HTTP response: the document and its
// byte length never change after load, so the full wire image is immutable.
func buildResponse(doc *document.Document) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 200 OK\r\n")
	fmt.Fprintf(&b, "Content-Type: text/html; charset=utf-8\r\n")
	fmt.Fprintf(&b, "Content-Length: %d\r\n", doc.Len())
	fmt.Fprintf(&b, "Connection: close\r\n")
	fmt.Fprintf(&b, "Access-Control-Allow-Origin: *\r\n")
	fmt.Fprintf(&b, "\r\n")
	b.Write(doc.Bytes())
	return b.Bytes()
}

// handleConn drives one accepted connection through its whole life:
// handshake, a single bounded read, the fixed response, close. It runs on
// its own goroutine and shares nothing mutable with other handlers.
func (c *Controller) handleConn(id uint64, conn net.Conn) {
	defer conn.Close()

	peer := "unknown"
	if addr := conn.RemoteAddr(); addr != nil {
		peer = addr.String()
	}

	c.hub.Publish(events.KindConnection, fmt.Sprintf("#%d accepted from %s", id, peer))
	logging.LogConnection(id, peer, "accepted")

	idle := c.cfg.IdleTimeout
	if idle <= 0 {
		idle = 10 * time.Second
	}

	// Complete the handshake explicitly so its failures are classified
	// before any read. Browsers probing a self-signed certificate abort
	// here routinely; that noise stays out of the warning stream.
	if tlsConn, ok := conn.(*tls.Conn); ok {
		ctx, cancel := context.WithTimeout(context.Background(), idle)
		err := tlsConn.HandshakeContext(ctx)
		cancel()
		if err != nil {
			logging.Debug("TLS handshake aborted",
				zap.Uint64("conn_id", id),
				zap.String("remote_addr", peer),
				zap.Error(err),
			)
			return
		}
		cs := tlsConn.ConnectionState()
		logging.LogTLSHandshake(peer, cs.Version, cs.CipherSuite, cs.ServerName)
	}

	_ = conn.SetReadDeadline(time.Now().Add(idle))
	buf := make([]byte, maxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		// Bulk cancellation during Stop surfaces as net.ErrClosed; that is
		// not a peer failure.
		if !isHandshakeError(err) && !errors.Is(err, net.ErrClosed) {
			c.hub.Publish(events.KindWarning, fmt.Sprintf("#%d closed before request: %v", id, readFailure(err)))
		}
		logging.LogConnection(id, peer, "closed_before_request")
		return
	}

	data := buf[:n]
	if !utf8.Valid(data) {
		c.hub.Publish(events.KindWarning, fmt.Sprintf("#%d request is not valid text", id))
		logging.LogConnection(id, peer, "closed_undecodable_request")
		return
	}

	line := requestLine(data)
	if strings.HasPrefix(line, "GET") || strings.HasPrefix(line, "POST") {
		preview := line
		if len(preview) > requestLinePreview {
			preview = preview[:requestLinePreview]
		}
		c.hub.Publish(events.KindInfo, fmt.Sprintf("#%d %s", id, preview))
		logging.LogRequestLine(id, peer, line)
	}

	// The same document answers every method and path; the request is
	// purely observational.
	_ = conn.SetWriteDeadline(time.Now().Add(idle))
	if _, err := conn.Write(c.response); err != nil {
		if !isHandshakeError(err) {
			c.hub.Publish(events.KindWarning, fmt.Sprintf("#%d send failed: %v", id, err))
		}
		logging.LogConnection(id, peer, "closed_send_failed")
		return
	}

	c.hub.Publish(events.KindConnection, fmt.Sprintf("#%d served document (%d bytes)", id, c.doc.Len()))
	logging.LogConnection(id, peer, "served")
}

// requestLine extracts the first line of the request head, without CRLF.
func requestLine(data []byte) string {
	if i := bytes.Index(data, []byte("\r\n")); i >= 0 {
		return string(data[:i])
	}
	return string(data)
}

func readFailure(err error) string {
	if err == nil {
		return "no data"
	}
	return err.Error()
}

// isHandshakeError reports whether err is TLS or certificate related.
// Typed matches come first; the keyword match remains as a net for errors
// the TLS layer wraps in plain OS-level failures.
func isHandshakeError(err error) bool {
	if err == nil {
		return false
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return true
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, kw := range []string{"certificate", "tls", "ssl"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
