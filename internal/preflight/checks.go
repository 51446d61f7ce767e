package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"rehearse/internal/media"
)

// minFreeBytes is the free-space floor for the recordings directory. A few
// minutes of VP8 at 720p stays well under this.
const minFreeBytes = 500 << 20

// CheckDirectoryAccess verifies that the directory exists, is writable and
// has room for new recordings.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: only %d MiB free)", path, free>>20)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok, %d MiB free)", path, free>>20)}
}

// CheckFFmpeg verifies the capture binary is on PATH.
func CheckFFmpeg(binary string) Result {
	const name = "FFmpeg"
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found on PATH", binary)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckCamera verifies at least one video4linux capture device is present.
func CheckCamera(ctx context.Context) Result {
	const name = "Camera"
	device, err := media.SelectCamera(ctx, media.SysfsEnumerator{})
	if err != nil {
		return Result{Name: name, Detail: "no capture device found"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", device.Name, device.Path)}
}

// CheckService verifies an HTTP service answers at its base URL. Any
// response counts; the services return 404 for the bare root.
func CheckService(ctx context.Context, name, baseURL string) Result {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d)", resp.StatusCode)}
}
