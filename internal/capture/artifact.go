package capture

import (
	"fmt"
	"os"
	"time"
)

// Artifact is the finalized video payload produced by one recording attempt.
// It is owned by the caller once Stop returns; the staging file backing it has
// already been removed.
type Artifact struct {
	Data        []byte
	ContentType string
	FileName    string
	Duration    time.Duration
}

// Size returns the payload length in bytes.
func (a *Artifact) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// LoadArtifact reads an existing video file into an artifact, used when a
// pre-recorded file is submitted for analysis instead of a live recording.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read video file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("video file %s is empty", path)
	}
	return &Artifact{
		Data:        data,
		ContentType: contentTypeFor(path),
		FileName:    fileBase(path),
	}, nil
}
