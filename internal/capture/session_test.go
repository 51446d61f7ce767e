package capture_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"rehearse/internal/capture"
	"rehearse/internal/config"
	"rehearse/internal/logging"
	"rehearse/internal/media"
)

type fakeRecorder struct {
	mu       sync.Mutex
	startErr error
	stopErr  error
	payload  []byte
	starts   int
	stops    int
	lastSpec capture.Spec
}

func (f *fakeRecorder) Start(ctx context.Context, spec capture.Spec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	f.lastSpec = spec
	if f.startErr != nil {
		return f.startErr
	}
	payload := f.payload
	if payload == nil {
		payload = []byte("webm-bytes")
	}
	return os.WriteFile(spec.OutputPath, payload, 0o644)
}

func (f *fakeRecorder) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.stopErr
}

func (f *fakeRecorder) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func newTestSession(t *testing.T, rec capture.Recorder) *capture.Session {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.RecordingsDir = t.TempDir()
	return capture.NewSession(&cfg, rec, logging.NewNop())
}

func TestStartStopProducesArtifact(t *testing.T) {
	rec := &fakeRecorder{payload: []byte("recorded-answer")}
	session := newTestSession(t, rec)
	ctx := context.Background()

	device := media.Device{Path: "/dev/video0", Name: "Front Camera"}
	if err := session.Start(ctx, device); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if session.State() != capture.StateRecording {
		t.Fatalf("expected recording state, got %s", session.State())
	}

	artifact, err := session.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if artifact == nil {
		t.Fatal("expected artifact")
	}
	if string(artifact.Data) != "recorded-answer" {
		t.Fatalf("unexpected artifact data: %q", artifact.Data)
	}
	if artifact.ContentType != "video/webm" {
		t.Fatalf("unexpected content type: %q", artifact.ContentType)
	}
	if session.State() != capture.StateStopped {
		t.Fatalf("expected stopped state, got %s", session.State())
	}
	if rec.stopCount() != 1 {
		t.Fatalf("expected one recorder stop, got %d", rec.stopCount())
	}
	if entries, _ := os.ReadDir(filepath.Dir(rec.lastSpec.OutputPath)); len(entries) != 0 {
		t.Fatal("expected staging file removed after stop")
	}
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	rec := &fakeRecorder{}
	session := newTestSession(t, rec)

	artifact, err := session.Stop(context.Background())
	if err != nil || artifact != nil {
		t.Fatalf("expected no-op stop, got artifact=%v err=%v", artifact, err)
	}
	if rec.stopCount() != 0 {
		t.Fatal("recorder should not be stopped when idle")
	}
}

func TestStartWhileRecordingRejected(t *testing.T) {
	rec := &fakeRecorder{}
	session := newTestSession(t, rec)
	ctx := context.Background()

	if err := session.Start(ctx, media.Device{Path: "/dev/video0"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	err := session.Start(ctx, media.Device{Path: "/dev/video1"})
	if !errors.Is(err, capture.ErrAlreadyRecording) {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}
	if rec.starts != 1 {
		t.Fatalf("expected single recorder start, got %d", rec.starts)
	}
}

func TestStartFailureReturnsToIdle(t *testing.T) {
	rec := &fakeRecorder{startErr: capture.ErrPermissionDenied}
	session := newTestSession(t, rec)

	err := session.Start(context.Background(), media.Device{Path: "/dev/video0"})
	if !errors.Is(err, capture.ErrPermissionDenied) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if session.State() != capture.StateIdle {
		t.Fatalf("expected idle after failed start, got %s", session.State())
	}
	// Retry after failure must be possible.
	rec.startErr = nil
	if err := session.Start(context.Background(), media.Device{Path: "/dev/video0"}); err != nil {
		t.Fatalf("retry Start failed: %v", err)
	}
}

func TestResetReleasesActiveRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	session := newTestSession(t, rec)

	if err := session.Start(context.Background(), media.Device{Path: "/dev/video0"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session.Reset()

	if session.State() != capture.StateIdle {
		t.Fatalf("expected idle after reset, got %s", session.State())
	}
	if rec.stopCount() != 1 {
		t.Fatalf("expected recorder stopped during reset, got %d stops", rec.stopCount())
	}
	if session.Elapsed() != 0 {
		t.Fatalf("expected elapsed cleared, got %v", session.Elapsed())
	}
}

func TestResetAfterStopClearsArtifactState(t *testing.T) {
	rec := &fakeRecorder{}
	session := newTestSession(t, rec)
	ctx := context.Background()

	if err := session.Start(ctx, media.Device{Path: "/dev/video0"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := session.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	session.Reset()
	if session.State() != capture.StateIdle {
		t.Fatalf("expected idle, got %s", session.State())
	}
	if rec.stopCount() != 1 {
		t.Fatalf("reset after stop must not stop the recorder again, got %d", rec.stopCount())
	}
}

func TestLoadArtifactFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.mp4")
	if err := os.WriteFile(path, []byte("mp4-bytes"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	artifact, err := capture.LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact failed: %v", err)
	}
	if artifact.ContentType != "video/mp4" {
		t.Fatalf("unexpected content type: %q", artifact.ContentType)
	}
	if artifact.FileName != "sample.mp4" {
		t.Fatalf("unexpected file name: %q", artifact.FileName)
	}

	empty := filepath.Join(dir, "empty.webm")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if _, err := capture.LoadArtifact(empty); err == nil {
		t.Fatal("expected error for empty file")
	}
}
