package dataset

import (
	"context"
	"fmt"

	"github.com/killallgit/labeler-api/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new export history repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateExport records a completed export with its region snapshots
func (r *RepositoryImpl) CreateExport(ctx context.Context, record *models.ExportRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("creating export record: %w", err)
	}
	return nil
}

// GetExportsByFileID retrieves all exports for a file, newest first
func (r *RepositoryImpl) GetExportsByFileID(ctx context.Context, fileID string) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	if err := r.db.WithContext(ctx).
		Preload("Regions").
		Where("file_id = ?", fileID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("getting exports for file: %w", err)
	}
	return records, nil
}

// ListExports retrieves all recorded exports, newest first
func (r *RepositoryImpl) ListExports(ctx context.Context) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	return records, nil
}
