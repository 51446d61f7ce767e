package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rehearse/internal/analysis"
	"rehearse/internal/capture"
	"rehearse/internal/config"
	"rehearse/internal/history"
	"rehearse/internal/identity"
	"rehearse/internal/logging"
	"rehearse/internal/media"
	"rehearse/internal/notifications"
	"rehearse/internal/questions"
)

// State is the lifecycle position of the practice flow.
type State string

const (
	StateSelectingQuestion State = "selecting_question"
	StateReady             State = "ready"
	StateRecording         State = "recording"
	StateStopped           State = "stopped"
	StateAnalyzing         State = "analyzing"
	StateScored            State = "scored"
)

var (
	// ErrBusy rejects operations that would interrupt an active recording or
	// an in-flight analysis submission.
	ErrBusy = errors.New("interview busy")
	// ErrNoQuestion rejects recording before a question has been drawn.
	ErrNoQuestion = errors.New("no question selected")
	// ErrNotRecording rejects stop requests with no active recording.
	ErrNotRecording = errors.New("no active recording")
	// ErrNoArtifact rejects submission with nothing recorded.
	ErrNoArtifact = errors.New("no recording to submit")
)

// CaptureSession is the recording surface the controller drives. Implemented
// by capture.Session.
type CaptureSession interface {
	State() capture.State
	Device() media.Device
	Elapsed() time.Duration
	Start(ctx context.Context, device media.Device) error
	Stop(ctx context.Context) (*capture.Artifact, error)
	Reset()
}

// IdentitySource yields the current signed-in identity, nil when signed out.
// Implemented by identity.Cache.
type IdentitySource interface {
	Load() (*identity.Identity, error)
}

// Deps carries the controller's collaborators.
type Deps struct {
	Capture    CaptureSession
	Enumerator media.Enumerator
	Analyzer   analysis.Client
	History    history.Recorder
	Identity   IdentitySource
	Notifier   notifications.Service
	Logger     *slog.Logger
}

// Snapshot is a point-in-time view of the flow for status displays.
type Snapshot struct {
	State      State               `json:"state"`
	Topic      string              `json:"topic"`
	TopicKey   string              `json:"topic_key"`
	Question   *questions.Question `json:"question,omitempty"`
	Device     string              `json:"device,omitempty"`
	Elapsed    time.Duration       `json:"elapsed"`
	Result     *analysis.Result    `json:"result,omitempty"`
	LastError  string              `json:"last_error,omitempty"`
	AutoSubmit bool                `json:"auto_submit"`
}

// Controller owns the practice-session state machine: question selection,
// recording, analysis submission and history persistence. All operations are
// serialized; one practice attempt runs at a time.
type Controller struct {
	cfg      *config.Config
	capture  CaptureSession
	enum     media.Enumerator
	analyzer analysis.Client
	history  history.Recorder
	identity IdentitySource
	notifier notifications.Service
	logger   *slog.Logger

	mu          sync.Mutex
	state       State
	topic       Descriptor
	question    questions.Question
	hasQuestion bool
	artifact    *capture.Artifact
	elapsed     time.Duration
	result      *analysis.Result
	lastErr     string

	// recorded tracks which analysis results have already triggered a
	// history write, keyed by result ID. Marked before the write so a
	// failed persistence attempt is never retried behind the user's back.
	recorded map[string]struct{}
}

// NewController builds the flow controller starting at the configured
// default topic with no question selected.
func NewController(cfg *config.Config, deps Deps) (*Controller, error) {
	topic, err := Describe(cfg.Interview.DefaultTopic)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Controller{
		cfg:      cfg,
		capture:  deps.Capture,
		enum:     deps.Enumerator,
		analyzer: deps.Analyzer,
		history:  deps.History,
		identity: deps.Identity,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "interview"),
		state:    StateSelectingQuestion,
		topic:    topic,
		recorded: make(map[string]struct{}),
	}, nil
}

// Topic returns the active topic descriptor.
func (c *Controller) Topic() Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topic
}

// SetTopic switches the active topic and discards the current question.
func (c *Controller) SetTopic(key string) (Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRecording || c.state == StateAnalyzing {
		return Descriptor{}, ErrBusy
	}
	topic, err := Describe(key)
	if err != nil {
		return Descriptor{}, err
	}
	c.topic = topic
	c.hasQuestion = false
	c.question = questions.Question{}
	c.discardAttemptLocked()
	c.state = StateSelectingQuestion
	c.logger.Info("topic changed", logging.String(logging.FieldTopic, topic.Key))
	return topic, nil
}

// NewQuestion draws a fresh question from the active topic's bank and arms
// the flow for recording. Any previous attempt is discarded.
func (c *Controller) NewQuestion(ctx context.Context) (questions.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRecording || c.state == StateAnalyzing {
		return questions.Question{}, ErrBusy
	}

	question, err := questions.Random(c.topic.Key)
	if err != nil {
		return questions.Question{}, err
	}
	c.question = question
	c.hasQuestion = true
	c.discardAttemptLocked()
	c.state = StateReady
	c.logger.Info("question selected",
		logging.String(logging.FieldTopic, c.topic.Key),
		logging.String(logging.FieldQuestion, question.ID),
	)
	return question, nil
}

// StartRecording selects a camera and begins capturing the answer. Camera
// selection runs fresh on every call so hotplugged devices are picked up.
// Failures leave the flow in Ready for another attempt.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRecording || c.state == StateAnalyzing {
		return ErrBusy
	}
	if !c.hasQuestion {
		return ErrNoQuestion
	}

	device, err := media.SelectCamera(ctx, c.enum)
	if err != nil {
		c.lastErr = err.Error()
		c.logger.Warn("camera selection failed", logging.Error(err))
		return err
	}

	if err := c.capture.Start(ctx, device); err != nil {
		c.lastErr = err.Error()
		c.notifyError(ctx, err, "recording")
		return err
	}

	c.discardAttemptLocked()
	c.state = StateRecording
	c.logger.Info("recording started",
		logging.String(logging.FieldDevice, device.Path),
		logging.String(logging.FieldQuestion, c.question.ID),
	)
	if err := c.notifier.NotifyRecordingStarted(ctx, c.topic.Label, c.question.Text); err != nil {
		c.logger.Warn("recording notification failed", logging.Error(err))
	}
	return nil
}

// StopRecording finalizes the capture. When auto-submit is enabled the
// artifact goes straight to analysis and the result is returned; otherwise
// the flow parks in Stopped awaiting Submit.
func (c *Controller) StopRecording(ctx context.Context) (*analysis.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording {
		return nil, ErrNotRecording
	}

	elapsed := c.capture.Elapsed()
	artifact, err := c.capture.Stop(ctx)
	if err != nil {
		c.state = StateReady
		c.lastErr = err.Error()
		c.notifyError(ctx, err, "recording")
		return nil, err
	}

	c.artifact = artifact
	c.elapsed = elapsed
	c.state = StateStopped
	c.logger.Info("recording stopped",
		logging.String(logging.FieldQuestion, c.question.ID),
		logging.Int("artifact_bytes", artifact.Size()),
	)

	if !c.cfg.Interview.AutoSubmit {
		return nil, nil
	}
	return c.submitLocked(ctx)
}

// Submit sends the stopped recording for analysis. A failed submission
// keeps the artifact so the user can retry explicitly; there is no
// automatic retry.
func (c *Controller) Submit(ctx context.Context) (*analysis.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRecording || c.state == StateAnalyzing {
		return nil, ErrBusy
	}
	if c.artifact == nil {
		return nil, ErrNoArtifact
	}
	return c.submitLocked(ctx)
}

// SubmitFile analyzes a pre-recorded file instead of a live capture. The
// file is loaded as the current attempt so a failed submission can be
// retried with Submit.
func (c *Controller) SubmitFile(ctx context.Context, path string) (*analysis.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRecording || c.state == StateAnalyzing {
		return nil, ErrBusy
	}

	artifact, err := capture.LoadArtifact(path)
	if err != nil {
		return nil, fmt.Errorf("load recording: %w", err)
	}
	c.artifact = artifact
	c.elapsed = artifact.Duration
	c.result = nil
	c.state = StateStopped
	return c.submitLocked(ctx)
}

// submitLocked runs one analysis submission. Caller holds the mutex and
// guarantees a non-nil artifact. The mutex is released for the duration of
// the upload; the Analyzing state gates every other operation in the
// meantime, so Status stays responsive while the round-trip is in flight.
func (c *Controller) submitLocked(ctx context.Context) (*analysis.Result, error) {
	c.state = StateAnalyzing
	artifact := c.artifact
	c.logger.Info("submitting recording for analysis",
		logging.Int("artifact_bytes", artifact.Size()),
	)

	c.mu.Unlock()
	result, err := c.analyzer.Submit(ctx, artifact)
	c.mu.Lock()

	if err != nil {
		c.state = StateStopped
		c.lastErr = err.Error()
		c.logger.Warn("analysis submission failed", logging.Error(err))
		c.notifyError(ctx, err, "analysis")
		return nil, err
	}

	c.result = result
	c.artifact = nil
	c.lastErr = ""
	c.state = StateScored

	duration := c.elapsed
	if result.HasDuration() {
		duration = result.VideoDuration
	}
	c.logger.Info("analysis complete",
		logging.String(logging.FieldResultID, result.ID),
		logging.Int(logging.FieldScore, result.Score),
	)
	if err := c.notifier.NotifyScored(ctx, c.topic.Label, result.Score, duration); err != nil {
		c.logger.Warn("score notification failed", logging.Error(err))
	}

	c.persistLocked(ctx, result, duration)
	return result, nil
}

// persistLocked writes the scored session to history at most once per
// analysis result. Skips are logged, never surfaced; a displayed score is
// final regardless of persistence.
func (c *Controller) persistLocked(ctx context.Context, result *analysis.Result, duration time.Duration) {
	if c.history == nil {
		return
	}
	if _, done := c.recorded[result.ID]; done {
		return
	}
	c.recorded[result.ID] = struct{}{}

	if result.Score <= 0 {
		c.logger.Info("skipping history write for zero score",
			logging.String(logging.FieldResultID, result.ID),
		)
		return
	}
	if duration <= 0 {
		c.logger.Info("skipping history write for unknown duration",
			logging.String(logging.FieldResultID, result.ID),
		)
		return
	}

	ident, err := c.loadIdentity()
	if err != nil {
		c.logger.Warn("identity lookup failed", logging.Error(err))
		return
	}
	if ident == nil {
		c.logger.Info("no signed-in user, session not persisted")
		return
	}

	questionText := ""
	if c.hasQuestion {
		questionText = c.question.Text
	}
	entry := history.Entry{
		Topic:    c.topic.Label,
		Question: questionText,
		Score:    result.Score,
		Duration: int(duration.Seconds()),
		Metrics: &history.Metrics{
			FacialConfidence: result.FacialConfidence,
			SpeechConfidence: result.SpeechConfidence,
			BodyConfidence:   result.BodyConfidence,
			VideoDuration:    duration.Seconds(),
			FacialBreakdown:  result.FacialBreakdown,
			SpeechBreakdown:  result.SpeechBreakdown,
			BodyBreakdown:    result.BodyBreakdown,
		},
	}
	record, err := c.history.Record(ctx, ident, entry)
	if err != nil {
		c.logger.Warn("history write failed",
			logging.String(logging.FieldResultID, result.ID),
			logging.Error(err),
		)
		return
	}
	c.logger.Info("session recorded",
		logging.String("record_id", record.ID),
		logging.String(logging.FieldUserID, ident.ID),
	)
}

// Reset abandons the current attempt, releasing the capture devices. The
// selected question is kept so the user can answer it again.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAnalyzing {
		return
	}
	c.capture.Reset()
	c.discardAttemptLocked()
	if c.hasQuestion {
		c.state = StateReady
	} else {
		c.state = StateSelectingQuestion
	}
	c.logger.Info("attempt reset", logging.String(logging.FieldState, string(c.state)))
}

// Stats returns the signed-in user's aggregate history. Retrieval failures
// collapse to the zero value so dashboards always render.
func (c *Controller) Stats(ctx context.Context) history.Stats {
	ident, err := c.loadIdentity()
	if err != nil || ident == nil || c.history == nil {
		return history.Stats{}
	}
	stats, err := c.history.Stats(ctx, ident.ID)
	if err != nil {
		c.logger.Warn("stats retrieval failed", logging.Error(err))
		return history.Stats{}
	}
	return stats
}

// Sessions lists the signed-in user's practice history, newest first.
func (c *Controller) Sessions(ctx context.Context) ([]history.Record, error) {
	ident, err := c.loadIdentity()
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, identity.ErrNoIdentity
	}
	if c.history == nil {
		return nil, nil
	}
	return c.history.Sessions(ctx, ident.ID)
}

// Status captures the current flow state for display.
func (c *Controller) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		State:      c.state,
		Topic:      c.topic.Label,
		TopicKey:   c.topic.Key,
		Result:     c.result,
		LastError:  c.lastErr,
		AutoSubmit: c.cfg.Interview.AutoSubmit,
	}
	if c.hasQuestion {
		question := c.question
		snapshot.Question = &question
	}
	if c.capture != nil {
		snapshot.Device = c.capture.Device().Path
		if c.state == StateRecording {
			snapshot.Elapsed = c.capture.Elapsed()
		} else {
			snapshot.Elapsed = c.elapsed
		}
	}
	return snapshot
}

// Shutdown releases the capture devices on daemon exit.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capture != nil {
		c.capture.Reset()
	}
}

// discardAttemptLocked drops the artifact and result of the previous
// attempt. Caller holds the mutex.
func (c *Controller) discardAttemptLocked() {
	c.artifact = nil
	c.result = nil
	c.elapsed = 0
	c.lastErr = ""
}

func (c *Controller) loadIdentity() (*identity.Identity, error) {
	if c.identity == nil {
		return nil, nil
	}
	return c.identity.Load()
}

func (c *Controller) notifyError(ctx context.Context, err error, label string) {
	if notifyErr := c.notifier.NotifyError(ctx, err, label); notifyErr != nil {
		c.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}
