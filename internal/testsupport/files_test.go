package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRecordingStartsWithWebMSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clips", "answer.webm")
	WriteRecording(t, path, 64)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read recording: %v", err)
	}
	if int64(len(data)) != 64 {
		t.Fatalf("expected 64 bytes, got %d", len(data))
	}
	if !bytes.HasPrefix(data, webmMagic) {
		t.Fatalf("recording does not open with the WebM signature: % x", data[:4])
	}
}

func TestWriteRecordingMinimumSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.webm")
	WriteRecording(t, path, 0)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read recording: %v", err)
	}
	if !bytes.Equal(data, webmMagic) {
		t.Fatalf("expected bare signature, got % x", data)
	}
}
