package dataset

import (
	"context"
	"testing"

	"github.com/killallgit/labeler-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Create in-memory SQLite database for testing
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(&models.ExportRecord{}, &models.RegionRecord{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestRepository_CreateExport(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := &models.ExportRecord{
		FileID:      "sample1",
		AudioPath:   "dataset/audio/sample1.wav",
		RTTMPath:    "dataset/rttm/sample1.rttm",
		Duration:    30.0,
		RegionCount: 2,
		Regions: []models.RegionRecord{
			{StartTime: 1.0, EndTime: 3.5, SpeakerID: "speaker_0"},
			{StartTime: 2.0, EndTime: 4.0, SpeakerID: "speaker_1"},
		},
	}

	require.NoError(t, repo.CreateExport(ctx, record))
	assert.NotZero(t, record.ID)
	assert.NotEmpty(t, record.UUID)
}

func TestRepository_GetExportsByFileID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, fileID := range []string{"sample1", "sample1", "sample2"} {
		require.NoError(t, repo.CreateExport(ctx, &models.ExportRecord{
			FileID:      fileID,
			AudioPath:   "a",
			RTTMPath:    "r",
			RegionCount: 1,
			Regions:     []models.RegionRecord{{StartTime: 0, EndTime: 1, SpeakerID: "speaker_0"}},
		}))
	}

	records, err := repo.GetExportsByFileID(ctx, "sample1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0].Regions, 1, "region snapshots preloaded")

	records, err = repo.GetExportsByFileID(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRepository_ListExports(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateExport(ctx, &models.ExportRecord{FileID: "a", AudioPath: "p", RTTMPath: "q", RegionCount: 1}))
	require.NoError(t, repo.CreateExport(ctx, &models.ExportRecord{FileID: "b", AudioPath: "p", RTTMPath: "q", RegionCount: 1}))

	records, err := repo.ListExports(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
