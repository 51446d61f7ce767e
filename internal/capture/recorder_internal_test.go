package capture

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	spec := Spec{
		DevicePath:  "/dev/video3",
		AudioDevice: "hw:1",
		Width:       1280,
		Height:      720,
		Framerate:   30,
		OutputPath:  "/tmp/out.webm",
	}
	args := strings.Join(buildArgs(spec), " ")

	for _, want := range []string{
		"-f v4l2",
		"-video_size 1280x720",
		"-framerate 30",
		"-i /dev/video3",
		"-f alsa",
		"-i hw:1",
		"/tmp/out.webm",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
}

func TestClassifyStartError(t *testing.T) {
	cases := []struct {
		name   string
		detail string
		want   error
	}{
		{"permission denied", "/dev/video0: Permission denied", ErrPermissionDenied},
		{"not permitted", "ioctl: Operation not permitted", ErrPermissionDenied},
		{"busy device", "/dev/video0: Device or resource busy", ErrDeviceUnavailable},
		{"missing device", "/dev/video9: No such file or directory", ErrDeviceUnavailable},
		{"unknown", "something exploded", ErrDeviceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyStartError(tc.detail, nil)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTailBufferKeepsTail(t *testing.T) {
	buf := newTailBuffer(8)
	if _, err := buf.Write([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "89abcdef" {
		t.Fatalf("expected tail, got %q", got)
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := contentTypeFor("a/b/answer.webm"); got != "video/webm" {
		t.Fatalf("webm: %q", got)
	}
	if got := contentTypeFor("x.unknown"); got != "application/octet-stream" {
		t.Fatalf("fallback: %q", got)
	}
}
