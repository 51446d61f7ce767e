package daemon

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"rehearse/internal/logging"
)

// cameraMonitor listens for udev netlink events on the video4linux subsystem
// so camera hotplug shows up in the logs and status output. Device selection
// itself reruns on every recording attempt, so the monitor is purely
// informational.
type cameraMonitor struct {
	logger *slog.Logger

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

func newCameraMonitor(logger *slog.Logger) *cameraMonitor {
	return &cameraMonitor{
		logger: logging.NewComponentLogger(logger, "camera-monitor"),
	}
}

// Start begins listening for udev netlink events. Connection failures are
// non-fatal; recording still works, only hotplug visibility is lost.
func (m *cameraMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; camera hotplug events unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "ensure the daemon has permission to access netlink sockets"),
		)
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("camera monitor started")
	return nil
}

// Stop shuts down the camera monitor.
func (m *cameraMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}

	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}

	m.running = false
	m.logger.Info("camera monitor stopped")
}

// Running reports whether the camera monitor is active.
func (m *cameraMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *cameraMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, videoMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(uevent)
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// videoMatcher matches add/remove events on the video4linux subsystem.
func videoMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "video4linux",
		},
	})
	return rules
}

func (m *cameraMonitor) handleEvent(uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" {
		return
	}

	switch string(uevent.Action) {
	case "add":
		m.logger.Info("camera connected", logging.String(logging.FieldDevice, devname))
	case "remove":
		m.logger.Warn("camera disconnected", logging.String(logging.FieldDevice, devname))
	}
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		if strings.HasPrefix(devname, "/") {
			return devname
		}
		return "/dev/" + devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return "/dev/" + parts[len(parts)-1]
}
