package document

import (
	"os"

	"github.com/wenzhi0209/webrtc-lan-server/internal/logging"
	"go.uber.org/zap"
)

// DefaultPath is where the bundled signaling page is expected relative to
// the working directory.
const DefaultPath = "web/index.html"

// fallbackHTML is served when the bundled page cannot be read, so the
// operator sees what went wrong instead of a connection error.
const fallbackHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>webrtc-lan-server</title></head>
<body>
<h1>Page not bundled</h1>
<p>The server is running, but its signaling page (web/index.html) was not
found next to the binary. Place the page there and restart the server.</p>
</body>
</html>
`

// Document is the single fixed payload every request receives. Loaded once
// at startup and read-only afterwards, so concurrent handlers share it
// without synchronization.
type Document struct {
	data     []byte
	fallback bool
}

// Load reads the page at path (DefaultPath when empty). It never fails: a
// missing or unreadable file yields the generated fallback page, flagged so
// the caller can emit a warning.
func Load(path string) *Document {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("Static document missing, serving fallback page",
			zap.String("path", path),
			zap.Error(err),
		)
		return &Document{data: []byte(fallbackHTML), fallback: true}
	}

	logging.Info("Static document loaded",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return &Document{data: data}
}

// Bytes returns the document content. Callers must not mutate it.
func (d *Document) Bytes() []byte {
	return d.data
}

// Len returns the exact byte length, the value the Content-Length header
// carries.
func (d *Document) Len() int {
	return len(d.data)
}

// IsFallback reports whether the generated fallback page is being served in
// place of the bundled one.
func (d *Document) IsFallback() bool {
	return d.fallback
}
