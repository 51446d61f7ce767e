package analysis

import "time"

// Result is the structured confidence score returned by the scoring service
// for one submitted artifact. Immutable after creation; ID distinguishes
// results so downstream one-shot actions can key on the specific instance.
type Result struct {
	ID               string
	Score            int
	FacialConfidence int
	SpeechConfidence int
	BodyConfidence   int

	// VideoDuration is the duration measured by the service. Zero when the
	// service did not report one.
	VideoDuration time.Duration

	FacialBreakdown map[string]float64
	SpeechBreakdown map[string]float64
	BodyBreakdown   map[string]float64
}

// HasDuration reports whether the service measured the video length.
func (r *Result) HasDuration() bool {
	return r != nil && r.VideoDuration > 0
}
