package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNoDeviceFound indicates no video capture device is available.
var ErrNoDeviceFound = errors.New("no capture device found")

// Device describes a video capture node.
type Device struct {
	// Path is the device node, e.g. /dev/video0.
	Path string
	// Name is the human-readable device name reported by the driver.
	Name string
	// Index is the numeric suffix of the sysfs entry.
	Index int
}

// Enumerator lists the video capture devices currently attached.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]Device, error)
}

// SysfsEnumerator discovers devices through /sys/class/video4linux.
type SysfsEnumerator struct {
	// Root overrides the sysfs class directory, used by tests.
	Root string
	// DevRoot overrides the /dev prefix for device nodes, used by tests.
	DevRoot string
}

func (e SysfsEnumerator) root() string {
	if strings.TrimSpace(e.Root) != "" {
		return e.Root
	}
	return "/sys/class/video4linux"
}

func (e SysfsEnumerator) devRoot() string {
	if strings.TrimSpace(e.DevRoot) != "" {
		return e.DevRoot
	}
	return "/dev"
}

// Enumerate lists video capture nodes ordered by index. Entries without a
// readable name file are kept with a name derived from the node path so that
// selection can still fall back to them.
func (e SysfsEnumerator) Enumerate(ctx context.Context) ([]Device, error) {
	entries, err := os.ReadDir(e.root())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read video4linux class: %w", err)
	}

	devices := make([]Device, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "video") {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(name, "video"))
		if err != nil {
			continue
		}
		device := Device{
			Path:  filepath.Join(e.devRoot(), name),
			Index: index,
		}
		if raw, err := os.ReadFile(filepath.Join(e.root(), name, "name")); err == nil {
			device.Name = strings.TrimSpace(string(raw))
		}
		if device.Name == "" {
			device.Name = name
		}
		devices = append(devices, device)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].Index < devices[j].Index })
	return devices, nil
}
