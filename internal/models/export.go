package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportRecord represents one completed dataset export (audio + RTTM pair)
type ExportRecord struct {
	gorm.Model
	UUID        string  `json:"uuid" gorm:"uniqueIndex"`
	FileID      string  `json:"file_id" gorm:"not null;index"` // base name without extension
	AudioPath   string  `json:"audio_path" gorm:"not null"`
	RTTMPath    string  `json:"rttm_path" gorm:"not null"`
	Duration    float64 `json:"duration"`
	RegionCount int     `json:"region_count" gorm:"not null"`

	// Relationship
	Regions []RegionRecord `json:"regions,omitempty" gorm:"foreignKey:ExportID"`
}

// BeforeCreate generates a UUID before creating a new export record
func (e *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the ExportRecord model
func (ExportRecord) TableName() string {
	return "export_records"
}

// RegionRecord is the persisted snapshot of one region within an export
type RegionRecord struct {
	gorm.Model
	ExportID  uint    `json:"export_id" gorm:"not null;index"`
	StartTime float64 `json:"start_time" gorm:"not null"` // Time in seconds
	EndTime   float64 `json:"end_time" gorm:"not null"`   // Time in seconds
	SpeakerID string  `json:"speaker_id" gorm:"not null"`
}

// TableName returns the table name for the RegionRecord model
func (RegionRecord) TableName() string {
	return "region_records"
}
