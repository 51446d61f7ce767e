package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"rehearse/internal/config"
	"rehearse/internal/logging"
	"rehearse/internal/media"
)

// State is the lifecycle position of a capture session.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateRecording  State = "recording"
	StateStopped    State = "stopped"
)

// Session manages the lifecycle of one audio+video recording attempt. At most
// one recorder process is active per session; the underlying devices are
// released on every exit path.
type Session struct {
	cfg      config.Capture
	stageDir string
	recorder Recorder
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	device     media.Device
	outputPath string
	artifact   *Artifact

	elapsedSecs atomic.Int64
	tickerStop  chan struct{}
}

// NewSession constructs a capture session writing staging files under the
// configured recordings directory.
func NewSession(cfg *config.Config, recorder Recorder, logger *slog.Logger) *Session {
	return &Session{
		cfg:      cfg.Capture,
		stageDir: cfg.Paths.RecordingsDir,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "capture"),
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Device returns the camera used by the active or most recent recording.
func (s *Session) Device() media.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// Elapsed reports the display-only recording timer. It ticks once per second
// and carries no correctness weight.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsedSecs.Load()) * time.Second
}

// Start begins recording from the given camera. Returns ErrAlreadyRecording
// when a recording is active, or a *Error wrapping ErrPermissionDenied /
// ErrDeviceUnavailable when the devices cannot be acquired.
func (s *Session) Start(ctx context.Context, device media.Device) error {
	s.mu.Lock()
	switch s.state {
	case StateRequesting, StateRecording:
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	s.state = StateRequesting
	s.device = device
	output := filepath.Join(s.stageDir, fmt.Sprintf("answer-%s.webm", time.Now().UTC().Format("20060102T150405")))
	s.outputPath = output
	s.mu.Unlock()

	spec := Spec{
		DevicePath:  device.Path,
		AudioDevice: s.cfg.AudioDevice,
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		Framerate:   s.cfg.Framerate,
		OutputPath:  output,
	}

	err := s.recorder.Start(ctx, spec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		s.outputPath = ""
		s.logger.Warn("recording start failed",
			logging.String(logging.FieldDevice, device.Path),
			logging.Error(err),
		)
		return err
	}

	s.state = StateRecording
	s.elapsedSecs.Store(0)
	s.tickerStop = make(chan struct{})
	go s.runTicker(s.tickerStop)
	s.logger.Info("recording started",
		logging.String(logging.FieldDevice, device.Path),
		logging.String("camera", device.Name),
		logging.Int("width", s.cfg.Width),
		logging.Int("height", s.cfg.Height),
	)
	return nil
}

// Stop finalizes the recording into an in-memory artifact, removes the
// staging file, and releases the devices. Calling Stop when not recording is
// a no-op returning (nil, nil).
func (s *Session) Stop(ctx context.Context) (*Artifact, error) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil, nil
	}
	output := s.outputPath
	s.stopTickerLocked()
	s.mu.Unlock()

	stopErr := s.recorder.Stop(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if stopErr != nil {
		s.state = StateIdle
		s.outputPath = ""
		_ = os.Remove(output)
		return nil, stopErr
	}

	data, err := os.ReadFile(output)
	_ = os.Remove(output)
	if err != nil {
		s.state = StateIdle
		s.outputPath = ""
		return nil, newError("stop", "load recording", err)
	}

	artifact := &Artifact{
		Data:        data,
		ContentType: contentTypeFor(output),
		FileName:    fileBase(output),
		Duration:    time.Duration(s.elapsedSecs.Load()) * time.Second,
	}
	s.artifact = artifact
	s.outputPath = ""
	s.state = StateStopped
	s.logger.Info("recording stopped",
		logging.Duration("elapsed", artifact.Duration),
		logging.Int("bytes", artifact.Size()),
	)
	return artifact, nil
}

// Reset discards the current artifact and timer and returns to Idle. When a
// recording is still active the recorder is stopped first so the devices are
// never leaked by a teardown or question change.
func (s *Session) Reset() {
	s.mu.Lock()
	recording := s.state == StateRecording || s.state == StateRequesting
	output := s.outputPath
	s.stopTickerLocked()
	s.mu.Unlock()

	if recording {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.StopTimeout)*time.Second)
		if err := s.recorder.Stop(ctx); err != nil {
			s.logger.Warn("recorder stop during reset failed", logging.Error(err))
		}
		cancel()
	}
	if output != "" {
		_ = os.Remove(output)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = nil
	s.outputPath = ""
	s.device = media.Device{}
	s.elapsedSecs.Store(0)
	s.state = StateIdle
}

func (s *Session) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.elapsedSecs.Add(1)
		}
	}
}

func (s *Session) stopTickerLocked() {
	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}
}
