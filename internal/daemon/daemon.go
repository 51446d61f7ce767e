package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"rehearse/internal/analysis"
	"rehearse/internal/capture"
	"rehearse/internal/config"
	"rehearse/internal/history"
	"rehearse/internal/identity"
	"rehearse/internal/interview"
	"rehearse/internal/logging"
	"rehearse/internal/media"
	"rehearse/internal/notifications"
	"rehearse/internal/preflight"
)

// Daemon coordinates the interview flow, capture hardware and persistence,
// and enforces single-instance execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	controller *interview.Controller
	store      *history.Store
	idClient   *identity.Client
	idCache    *identity.Cache
	notifier   notifications.Service
	monitor    *cameraMonitor

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running   bool
	PID       int
	LockPath  string
	Interview interview.Snapshot
	Identity  *identity.Identity
	Checks    []preflight.Result
}

// New constructs a daemon with fully wired dependencies: ffmpeg capture,
// sysfs camera enumeration, the scoring client and the configured history
// backend.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	recorder := capture.NewFFmpeg(
		capture.WithBinary(cfg.FFmpegBinary()),
		capture.WithTimeouts(cfg.Capture.StartDeadline(), cfg.Capture.StopDeadline()),
	)
	session := capture.NewSession(cfg, recorder, logger)

	var (
		store       *history.Store
		historyBack history.Recorder
	)
	if cfg.LocalHistory() {
		opened, err := history.OpenStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		store = opened
		historyBack = opened
	} else {
		historyBack = history.NewBackendRecorder(cfg)
	}

	idCache := identity.NewCache(cfg.IdentityCachePath())
	notifier := notifications.NewService(cfg)

	controller, err := interview.NewController(cfg, interview.Deps{
		Capture:    session,
		Enumerator: media.SysfsEnumerator{},
		Analyzer:   analysis.NewHTTPClient(cfg),
		History:    historyBack,
		Identity:   idCache,
		Notifier:   notifier,
		Logger:     logger,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("create interview controller: %w", err)
	}

	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		controller: controller,
		store:      store,
		idClient:   identity.NewClient(cfg),
		idCache:    idCache,
		notifier:   notifier,
		lockPath:   cfg.LockPath(),
		lock:       flock.New(cfg.LockPath()),
	}
	d.monitor = newCameraMonitor(logger)
	return d, nil
}

// Start acquires the daemon lock, runs preflight checks and begins camera
// hotplug monitoring.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another rehearse daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	for _, check := range preflight.RunAll(d.ctx, d.cfg) {
		if check.Passed {
			d.logger.Debug("preflight check passed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail),
			)
			continue
		}
		d.logger.Warn("preflight check failed",
			logging.String("check", check.Name),
			logging.String("detail", check.Detail),
		)
	}

	if err := d.monitor.Start(d.ctx); err != nil {
		d.logger.Warn("camera monitor unavailable", logging.Error(err))
	}

	d.running.Store(true)
	d.logger.Info("rehearse daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts the interview flow and releases the capture devices and the
// daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.monitor.Stop()
	d.controller.Shutdown()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("rehearse daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Controller exposes the interview flow to the IPC layer.
func (d *Daemon) Controller() *interview.Controller {
	return d.controller
}

// Status returns current runtime information including live preflight
// results.
func (d *Daemon) Status(ctx context.Context) Status {
	ident, err := d.idCache.Load()
	if err != nil {
		d.logger.Warn("identity cache unreadable", logging.Error(err))
	}
	return Status{
		Running:   d.running.Load(),
		PID:       os.Getpid(),
		LockPath:  d.lockPath,
		Interview: d.controller.Status(),
		Identity:  ident,
		Checks:    preflight.RunAll(ctx, d.cfg),
	}
}

// Login authenticates against the auth backend and caches the identity.
func (d *Daemon) Login(ctx context.Context, email, password string) (*identity.Identity, error) {
	ident, err := d.idClient.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := d.idCache.Store(ident); err != nil {
		return nil, fmt.Errorf("cache identity: %w", err)
	}
	d.logger.Info("user logged in", logging.String(logging.FieldUserID, ident.ID))
	return ident, nil
}

// Signup registers a new account and caches the resulting identity.
func (d *Daemon) Signup(ctx context.Context, name, email, password string) (*identity.Identity, error) {
	ident, err := d.idClient.Signup(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := d.idCache.Store(ident); err != nil {
		return nil, fmt.Errorf("cache identity: %w", err)
	}
	d.logger.Info("user signed up", logging.String(logging.FieldUserID, ident.ID))
	return ident, nil
}

// Logout clears the cached identity. Future sessions are anonymous and not
// persisted.
func (d *Daemon) Logout() error {
	if err := d.idCache.Clear(); err != nil {
		return err
	}
	d.logger.Info("user logged out")
	return nil
}

// WhoAmI returns the cached identity, nil when signed out.
func (d *Daemon) WhoAmI() (*identity.Identity, error) {
	return d.idCache.Load()
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}
