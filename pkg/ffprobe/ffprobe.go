// Package ffprobe wraps the ffprobe binary for audio metadata extraction.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Probe extracts audio metadata using an ffprobe binary
type Probe struct {
	binaryPath string
}

// New creates a probe using the given ffprobe binary path. An empty path
// falls back to "ffprobe" on PATH.
func New(binaryPath string) *Probe {
	if binaryPath == "" {
		binaryPath = "ffprobe"
	}
	return &Probe{binaryPath: binaryPath}
}

// Available reports whether the ffprobe binary can be found
func (p *Probe) Available() bool {
	_, err := exec.LookPath(p.binaryPath)
	return err == nil
}

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// Duration returns the duration of an audio file in seconds
func (p *Probe) Duration(ctx context.Context, filePath string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0", // Select first audio stream
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, p.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("probing %s: %w (%s)", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output for %s: %w", filePath, err)
	}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil && duration > 0 {
			return duration, nil
		}
	}

	// Fall back to the stream duration when the container doesn't carry one
	for _, stream := range output.Streams {
		if stream.CodecType == "audio" && stream.Duration != "" {
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil && duration > 0 {
				return duration, nil
			}
		}
	}

	return 0, fmt.Errorf("could not determine audio duration for %s", filePath)
}
