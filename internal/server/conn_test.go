package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wenzhi0209/webrtc-lan-server/internal/document"
)

func loadTestDocument(t *testing.T, content string) *document.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return document.Load(path)
}

func TestBuildResponseFormat(t *testing.T) {
	content := "<html>café</html>" // multi-byte rune: length must count bytes
	doc := loadTestDocument(t, content)
	resp := string(buildResponse(doc))

	head, body, found := strings.Cut(resp, "\r\n\r\n")
	if !found {
		t.Fatal("response has no header/body separator")
	}
	if body != content {
		t.Errorf("body = %q, want document verbatim", body)
	}

	wantHead := strings.Join([]string{
		"HTTP/1.1 200 OK",
		"Content-Type: text/html; charset=utf-8",
		fmt.Sprintf("Content-Length: %d", len(content)),
		"Connection: close",
		"Access-Control-Allow-Origin: *",
	}, "\r\n")
	if head != wantHead {
		t.Errorf("headers:\ngot:  %q\nwant: %q", head, wantHead)
	}
}

func TestRequestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full request", "GET / HTTP/1.1\r\nHost: x\r\n\r\n", "GET / HTTP/1.1"},
		{"no crlf", "GET / HTTP/1.1", "GET / HTTP/1.1"},
		{"empty", "", ""},
		{"leading crlf", "\r\nGET /", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requestLine([]byte(tt.in)); got != tt.want {
				t.Errorf("requestLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsHandshakeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"record header", tls.RecordHeaderError{Msg: "first record does not look like a TLS handshake"}, true},
		{"alert", tls.AlertError(42), true},
		{"cert verification", &tls.CertificateVerificationError{Err: errors.New("x509: certificate signed by unknown authority")}, true},
		{"wrapped record header", fmt.Errorf("read: %w", tls.RecordHeaderError{Msg: "bad"}), true},
		{"certificate keyword", errors.New("remote error: bad Certificate"), true},
		{"ssl keyword", errors.New("SSL routines: wrong version"), true},
		{"plain eof", io.EOF, false},
		{"reset", errors.New("connection reset by peer"), false},
		{"timeout", os.ErrDeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHandshakeError(tt.err); got != tt.want {
				t.Errorf("isHandshakeError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
