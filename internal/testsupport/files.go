package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// webmMagic is the EBML signature that opens a WebM container, the format
// the capture pipeline records into.
var webmMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// WriteRecording creates a stand-in recorded answer at path: the WebM
// signature followed by filler up to size bytes. A size smaller than the
// signature still writes the full signature.
func WriteRecording(t testing.TB, path string, size int64) {
	t.Helper()

	if size < int64(len(webmMagic)) {
		size = int64(len(webmMagic))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	payload := make([]byte, size)
	copy(payload, webmMagic)
	for i := len(webmMagic); i < len(payload); i++ {
		payload[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
