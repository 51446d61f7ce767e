package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"rehearse/internal/capture"
	"rehearse/internal/config"
)

const userAgent = "Rehearse/0.1.0"

// Client submits a capture artifact for scoring. Every call performs a fresh
// round-trip; results are never cached.
type Client interface {
	Submit(ctx context.Context, artifact *capture.Artifact) (*Result, error)
}

// HTTPClient talks to the remote scoring endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a scoring client from configuration.
func NewHTTPClient(cfg *config.Config) *HTTPClient {
	timeout := time.Duration(cfg.Analysis.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.Analysis.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type responseBody struct {
	Error string `json:"error"`

	Score            *float64           `json:"score"`
	FacialConfidence float64            `json:"facial_confidence"`
	SpeechConfidence float64            `json:"speech_confidence"`
	BodyConfidence   float64            `json:"body_confidence"`
	VideoDuration    float64            `json:"video_duration"`
	FacialBreakdown  map[string]float64 `json:"facial_breakdown"`
	SpeechBreakdown  map[string]float64 `json:"speech_breakdown"`
	BodyBreakdown    map[string]float64 `json:"body_breakdown"`
}

// Submit uploads the artifact as a multipart form and decodes the score
// envelope. Failures unwrap to ErrNetwork, ErrService, or ErrMalformed.
func (c *HTTPClient) Submit(ctx context.Context, artifact *capture.Artifact) (*Result, error) {
	if artifact == nil || len(artifact.Data) == 0 {
		return nil, failed(ErrMalformed, "no recording to submit")
	}

	body, contentType, err := encodeMultipart(artifact)
	if err != nil {
		return nil, failed(ErrMalformed, "encode upload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", body)
	if err != nil {
		return nil, failed(ErrNetwork, "build request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, failed(ErrNetwork, "reach scoring service: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, failed(ErrNetwork, "read response: %v", err)
	}

	var decoded responseBody
	if err := json.Unmarshal(payload, &decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, failed(ErrService, "scoring service returned status %d", resp.StatusCode)
		}
		return nil, failed(ErrMalformed, "decode response: %v", err)
	}
	if decoded.Error != "" {
		return nil, failed(ErrService, "%s", decoded.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failed(ErrService, "scoring service returned status %d", resp.StatusCode)
	}
	if decoded.Score == nil {
		return nil, failed(ErrMalformed, "response missing score")
	}

	return &Result{
		ID:               uuid.NewString(),
		Score:            clampPercent(*decoded.Score),
		FacialConfidence: clampPercent(decoded.FacialConfidence),
		SpeechConfidence: clampPercent(decoded.SpeechConfidence),
		BodyConfidence:   clampPercent(decoded.BodyConfidence),
		VideoDuration:    time.Duration(decoded.VideoDuration * float64(time.Second)),
		FacialBreakdown:  decoded.FacialBreakdown,
		SpeechBreakdown:  decoded.SpeechBreakdown,
		BodyBreakdown:    decoded.BodyBreakdown,
	}, nil
}

func encodeMultipart(artifact *capture.Artifact) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	name := artifact.FileName
	if name == "" {
		name = "answer.webm"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(artifact.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func clampPercent(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

var _ Client = (*HTTPClient)(nil)
