package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	content := []byte("<html><body>signaling page éè</body></html>")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	doc := Load(path)
	if doc.IsFallback() {
		t.Error("IsFallback() = true for an existing file")
	}
	if !bytes.Equal(doc.Bytes(), content) {
		t.Error("Bytes() differs from file content")
	}
	// Content-Length is a byte count, not a rune count.
	if doc.Len() != len(content) {
		t.Errorf("Len() = %d, want %d", doc.Len(), len(content))
	}
}

func TestLoadMissingFileServesFallback(t *testing.T) {
	doc := Load(filepath.Join(t.TempDir(), "absent.html"))
	if !doc.IsFallback() {
		t.Fatal("IsFallback() = false for a missing file")
	}
	if doc.Len() == 0 {
		t.Error("fallback document should not be empty")
	}
	if !bytes.Contains(doc.Bytes(), []byte("web/index.html")) {
		t.Error("fallback page should tell the operator where the page belongs")
	}
}
