package dataset

import (
	"context"
	"time"

	"github.com/killallgit/labeler-api/internal/models"
)

// AudioFile describes one labelable audio file in the library directory
type AudioFile struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	// Completed is true when an RTTM annotation already exists for this file
	Completed bool `json:"completed"`
}

// Storage is the filesystem adapter for the audio library and the dataset
// output tree (dataset/audio + dataset/rttm).
type Storage interface {
	// ListAudioFiles enumerates the library directory filtered by audio
	// extension, sorted by name.
	ListAudioFiles(ctx context.Context) ([]AudioFile, error)

	// SaveExport writes the audio copy and RTTM text for a finished file,
	// returning the paths written.
	SaveExport(ctx context.Context, baseName, sourceAudioPath, rttmContent string) (audioPath, rttmPath string, err error)

	// LoadAnnotation reads an existing RTTM annotation for a base name.
	// A missing annotation is reported by found=false, not an error.
	LoadAnnotation(ctx context.Context, baseName string) (content string, found bool, err error)

	// CompletedSet returns the base names that already have an RTTM file
	CompletedSet(ctx context.Context) (map[string]bool, error)
}

// Repository persists export history
type Repository interface {
	CreateExport(ctx context.Context, record *models.ExportRecord) error
	GetExportsByFileID(ctx context.Context, fileID string) ([]models.ExportRecord, error)
	ListExports(ctx context.Context) ([]models.ExportRecord, error)
}

// Service coordinates dataset exports and library browsing
type Service interface {
	// ListAudioFiles enumerates labelable files, marking completed ones
	ListAudioFiles(ctx context.Context) ([]AudioFile, error)

	// Export writes the dataset pair for a file and records it in history
	Export(ctx context.Context, fileID, sourceAudioPath string, duration float64, regions []models.Region) (*models.ExportRecord, error)

	// LoadAnnotation reads the existing RTTM annotation for a file, if any
	LoadAnnotation(ctx context.Context, fileID string) (string, bool, error)

	// History returns all recorded exports, newest first
	History(ctx context.Context) ([]models.ExportRecord, error)
}
