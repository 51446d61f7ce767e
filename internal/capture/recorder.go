package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var commandContext = exec.CommandContext

// Spec describes one recording request.
type Spec struct {
	DevicePath  string
	AudioDevice string
	Width       int
	Height      int
	Framerate   int
	OutputPath  string
}

// Recorder drives the underlying capture process for one recording at a time.
type Recorder interface {
	// Start begins recording to spec.OutputPath and returns once output is
	// confirmed to be flowing.
	Start(ctx context.Context, spec Spec) error
	// Stop finalizes the recording and releases the capture devices. Safe to
	// call when nothing is recording.
	Stop(ctx context.Context) error
}

// FFmpegOption configures the ffmpeg recorder.
type FFmpegOption func(*FFmpeg)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) FFmpegOption {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// WithTimeouts overrides start and stop confirmation timeouts.
func WithTimeouts(start, stop time.Duration) FFmpegOption {
	return func(f *FFmpeg) {
		if start > 0 {
			f.startTimeout = start
		}
		if stop > 0 {
			f.stopTimeout = stop
		}
	}
}

// FFmpeg records webcam and microphone input by wrapping the ffmpeg binary
// with v4l2 and alsa inputs, producing a webm file.
type FFmpeg struct {
	binary       string
	startTimeout time.Duration
	stopTimeout  time.Duration

	mu     sync.Mutex
	cmd    *exec.Cmd
	stderr *tailBuffer
	done   chan error
	output string
}

// NewFFmpeg constructs a recorder using defaults.
func NewFFmpeg(opts ...FFmpegOption) *FFmpeg {
	rec := &FFmpeg{
		binary:       "ffmpeg",
		startTimeout: 10 * time.Second,
		stopTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

func buildArgs(spec Spec) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "v4l2",
		"-framerate", strconv.Itoa(spec.Framerate),
		"-video_size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-i", spec.DevicePath,
		"-f", "alsa",
		"-i", spec.AudioDevice,
		"-c:v", "libvpx",
		"-b:v", "2M",
		"-c:a", "libopus",
		spec.OutputPath,
	}
}

// Start launches ffmpeg and waits until the output file begins growing, which
// confirms the devices were acquired. Failures are classified as permission
// or availability errors from the process stderr.
func (f *FFmpeg) Start(ctx context.Context, spec Spec) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cmd != nil {
		return ErrAlreadyRecording
	}
	if spec.DevicePath == "" {
		return newError("start", "no device", ErrDeviceUnavailable)
	}
	if err := os.MkdirAll(filepath.Dir(spec.OutputPath), 0o755); err != nil {
		return newError("start", "create output directory", err)
	}

	stderr := newTailBuffer(4096)
	cmd := commandContext(context.WithoutCancel(ctx), f.binary, buildArgs(spec)...) //nolint:gosec
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return newError("start", "spawn recorder", classifyStartError(err.Error(), err))
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	deadline := time.NewTimer(f.startTimeout)
	defer deadline.Stop()
	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case err := <-done:
			// Process exited before producing output.
			cause := strings.TrimSpace(stderr.String())
			return newError("start", cause, classifyStartError(cause, err))
		case <-ctx.Done():
			_ = cmd.Process.Kill()
			<-done
			_ = os.Remove(spec.OutputPath)
			return ctx.Err()
		case <-deadline.C:
			_ = cmd.Process.Kill()
			<-done
			_ = os.Remove(spec.OutputPath)
			return newError("start", "recorder produced no output", ErrDeviceUnavailable)
		case <-poll.C:
			if info, err := os.Stat(spec.OutputPath); err == nil && info.Size() > 0 {
				f.cmd = cmd
				f.stderr = stderr
				f.done = done
				f.output = spec.OutputPath
				return nil
			}
		}
	}
}

// Stop interrupts ffmpeg so it finalizes the container, then reaps the
// process. The devices are released on every path, including the kill
// fallback when graceful shutdown stalls.
func (f *FFmpeg) Stop(ctx context.Context) error {
	f.mu.Lock()
	cmd := f.cmd
	done := f.done
	output := f.output
	f.cmd = nil
	f.stderr = nil
	f.done = nil
	f.output = ""
	f.mu.Unlock()

	if cmd == nil {
		return nil
	}

	_ = cmd.Process.Signal(os.Interrupt)

	deadline := time.NewTimer(f.stopTimeout)
	defer deadline.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case <-deadline.C:
		_ = cmd.Process.Kill()
		<-done
	}

	// ffmpeg reports a nonzero status when interrupted; a usable output file
	// is the success signal here.
	info, err := os.Stat(output)
	if err != nil || info.Size() == 0 {
		return newError("stop", "recorder output missing", ErrDeviceUnavailable)
	}
	return nil
}

func classifyStartError(detail string, err error) error {
	lowered := strings.ToLower(detail)
	switch {
	case strings.Contains(lowered, "permission denied"),
		strings.Contains(lowered, "operation not permitted"):
		return ErrPermissionDenied
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	default:
		return ErrDeviceUnavailable
	}
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webm":
		return "video/webm"
	case ".mp4":
		return "video/mp4"
	case ".mkv":
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}

func fileBase(path string) string {
	return filepath.Base(path)
}

var _ Recorder = (*FFmpeg)(nil)
