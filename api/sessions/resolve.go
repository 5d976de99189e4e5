package sessions

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/internal/services/dataset"
)

// resolveAudioFile finds a library entry by file name
func resolveAudioFile(ctx context.Context, deps *types.Dependencies, fileName string) (dataset.AudioFile, bool, error) {
	if deps.Dataset == nil {
		return dataset.AudioFile{}, false, nil
	}

	list, err := deps.Dataset.ListAudioFiles(ctx)
	if err != nil {
		return dataset.AudioFile{}, false, err
	}
	for _, f := range list {
		if f.Name == fileName {
			return f, true, nil
		}
	}
	return dataset.AudioFile{}, false, nil
}

// probeDuration asks ffprobe for the audio length. Zero means unknown; the
// client reports the duration once its player has loaded the file.
func probeDuration(ctx context.Context, deps *types.Dependencies, path string) float64 {
	if deps.Prober == nil || !deps.Prober.Available() {
		return 0
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	duration, err := deps.Prober.Duration(probeCtx, path)
	if err != nil {
		log.Printf("probing %s: %v", path, err)
		return 0
	}
	return duration
}

func baseName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
