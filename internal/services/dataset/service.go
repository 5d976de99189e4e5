package dataset

import (
	"context"
	"log"

	"github.com/killallgit/labeler-api/internal/models"
	apperrors "github.com/killallgit/labeler-api/pkg/errors"
	"github.com/killallgit/labeler-api/pkg/rttm"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	storage    Storage
	repository Repository
}

// NewService creates a new dataset service. The repository may be nil, in
// which case exports still write files but no history is recorded.
func NewService(storage Storage, repository Repository) Service {
	return &ServiceImpl{
		storage:    storage,
		repository: repository,
	}
}

// ListAudioFiles enumerates labelable files, marking completed ones
func (s *ServiceImpl) ListAudioFiles(ctx context.Context) ([]AudioFile, error) {
	files, err := s.storage.ListAudioFiles(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.storage.CompletedSet(ctx)
	if err != nil {
		return nil, err
	}

	for i := range files {
		files[i].Completed = completed[baseName(files[i].Name)]
	}
	return files, nil
}

// Export writes the dataset pair for a file and records it in history
func (s *ServiceImpl) Export(ctx context.Context, fileID, sourceAudioPath string, duration float64, regionList []models.Region) (*models.ExportRecord, error) {
	if fileID == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "file ID is required")
	}
	if len(regionList) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "no regions to export")
	}

	segments := make([]rttm.Segment, 0, len(regionList))
	for _, region := range regionList {
		segments = append(segments, rttm.Segment{
			Start:       region.Start,
			End:         region.End,
			SpeakerID:   region.SpeakerID,
			SpeakerName: region.SpeakerName,
		})
	}
	content := rttm.Encode(fileID, segments)

	audioPath, rttmPath, err := s.storage.SaveExport(ctx, fileID, sourceAudioPath, content)
	if err != nil {
		return nil, err
	}

	record := &models.ExportRecord{
		FileID:      fileID,
		AudioPath:   audioPath,
		RTTMPath:    rttmPath,
		Duration:    duration,
		RegionCount: len(regionList),
	}
	for _, region := range regionList {
		record.Regions = append(record.Regions, models.RegionRecord{
			StartTime: region.Start,
			EndTime:   region.End,
			SpeakerID: region.SpeakerID,
		})
	}

	if s.repository != nil {
		if err := s.repository.CreateExport(ctx, record); err != nil {
			// Files are already on disk; the export itself succeeded
			log.Printf("dataset: failed to record export history for %s: %v", fileID, err)
		}
	}

	return record, nil
}

// LoadAnnotation reads the existing RTTM annotation for a file, if any
func (s *ServiceImpl) LoadAnnotation(ctx context.Context, fileID string) (string, bool, error) {
	return s.storage.LoadAnnotation(ctx, fileID)
}

// History returns all recorded exports, newest first
func (s *ServiceImpl) History(ctx context.Context) ([]models.ExportRecord, error) {
	if s.repository == nil {
		return nil, nil
	}
	return s.repository.ListExports(ctx)
}
