package models

// MinRegionLength is the smallest span (in seconds) a region may have.
// Commits and resizes at or below this length are rejected.
const MinRegionLength = 0.1

// minLengthEpsilon absorbs float64 subtraction error so a span authored at
// exactly the minimum length classifies the same wherever it sits on the
// timeline (1.0..1.1 subtracts to slightly more than 0.1; 0.0..0.1 does not).
const minLengthEpsilon = 1e-9

// ExceedsMinLength reports whether the span [start, end] is strictly longer
// than MinRegionLength.
func ExceedsMinLength(start, end float64) bool {
	return end-start > MinRegionLength+minLengthEpsilon
}

// Region represents a committed, speaker-tagged time interval on the audio
// timeline. Regions only come into existence through the draft controller's
// confirm flow; until then an interval is a draft and has no identity.
type Region struct {
	ID          string  `json:"id"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	SpeakerID   string  `json:"speakerId"`
	SpeakerName string  `json:"speakerName"`
}

// Duration returns the region span in seconds.
func (r Region) Duration() float64 {
	return r.End - r.Start
}

// Overlap is the derived intersection of two committed regions. It is
// recomputed on demand and never stored.
type Overlap struct {
	Start   float64   `json:"start"`
	End     float64   `json:"end"`
	Regions [2]Region `json:"regions"`
}

// Speaker is an entry in the session's speaker roster.
type Speaker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Draft is an in-progress, unconfirmed interval produced by a drag gesture.
// It carries no speaker and no stable identity.
type Draft struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the draft span in seconds.
func (d Draft) Duration() float64 {
	return d.End - d.Start
}
