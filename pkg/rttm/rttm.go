// Package rttm encodes and decodes speaker diarization annotations in the
// RTTM format used by pyannote and the NIST evaluation tooling:
//
//	SPEAKER <fileID> 1 <start> <duration> <NA> <NA> <speakerID> <NA>
//
// one SPEAKER record per line, times in seconds with two decimal places.
package rttm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Segment represents one speaker-attributed time range in an annotation
type Segment struct {
	Start       float64
	End         float64
	SpeakerID   string
	SpeakerName string
}

// Duration returns the segment span in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// LineError describes a line that was skipped during decoding
type LineError struct {
	Line   int    // 1-based line number
	Text   string // the offending line
	Reason string
}

// Encode serializes segments as RTTM text for the given file ID. Segments are
// emitted sorted ascending by start time; equal starts keep their input order.
// The fileID is written as-is and is not validated.
func Encode(fileID string, segments []Segment) string {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	lines := make([]string, 0, len(sorted))
	for _, seg := range sorted {
		lines = append(lines, fmt.Sprintf("SPEAKER %s 1 %.2f %.2f <NA> <NA> %s <NA>",
			fileID, seg.Start, seg.Duration(), seg.SpeakerID))
	}

	return strings.Join(lines, "\n")
}

// Decode parses RTTM text into segments. Blank lines and comment lines
// (prefixed with '#') are ignored. A line is a valid SPEAKER record iff it has
// at least 8 whitespace-separated fields, field 0 is "SPEAKER", and fields 3
// and 4 parse as floats. Malformed lines are skipped, never fatal; each skip
// is reported in the returned LineError slice so callers can surface
// diagnostics if they care. SpeakerName is initially the raw speaker ID;
// resolving display names against a roster is a separate step (MapSpeakers)
// so that decoding stays independent of roster state.
func Decode(content string) ([]Segment, []LineError) {
	var segments []Segment
	var lineErrs []LineError

	// Split the raw content so reported line numbers match the source file
	// even when it opens with blank lines or comments.
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 8 {
			lineErrs = append(lineErrs, LineError{Line: i + 1, Text: line, Reason: "expected at least 8 fields"})
			continue
		}
		if fields[0] != "SPEAKER" {
			lineErrs = append(lineErrs, LineError{Line: i + 1, Text: line, Reason: "not a SPEAKER record"})
			continue
		}

		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: i + 1, Text: line, Reason: "invalid start time"})
			continue
		}
		duration, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: i + 1, Text: line, Reason: "invalid duration"})
			continue
		}

		speakerID := fields[7]
		segments = append(segments, Segment{
			Start:       start,
			End:         start + duration,
			SpeakerID:   speakerID,
			SpeakerName: speakerID, // resolved later against the roster
		})
	}

	return segments, lineErrs
}

// SpeakerIDs returns the distinct speaker IDs referenced by the annotation,
// in order of first appearance.
func SpeakerIDs(content string) []string {
	segments, _ := Decode(content)

	seen := make(map[string]bool)
	var ids []string
	for _, seg := range segments {
		if !seen[seg.SpeakerID] {
			seen[seg.SpeakerID] = true
			ids = append(ids, seg.SpeakerID)
		}
	}

	return ids
}

// MapSpeakers resolves segment display names against a speaker ID to name
// mapping. Segments whose speaker ID is not in the mapping keep the raw ID as
// their name.
func MapSpeakers(segments []Segment, names map[string]string) []Segment {
	mapped := make([]Segment, len(segments))
	copy(mapped, segments)
	for i := range mapped {
		if name, ok := names[mapped[i].SpeakerID]; ok {
			mapped[i].SpeakerName = name
		}
	}
	return mapped
}
