package types

import (
	"github.com/killallgit/labeler-api/internal/models"
	"github.com/killallgit/labeler-api/internal/services/dataset"
	"github.com/killallgit/labeler-api/internal/services/session"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionResponse wraps a full session snapshot
type SessionResponse struct {
	BaseResponse
	Session session.Snapshot `json:"session"`
}

// RegionsResponse for committed region lists
type RegionsResponse struct {
	BaseResponse
	Regions  []models.Region  `json:"regions"`
	Overlaps []models.Overlap `json:"overlaps"`
	Count    int              `json:"count"`
}

// RegionResponse for a single region
type RegionResponse struct {
	BaseResponse
	Region models.Region `json:"region"`
}

// SpeakersResponse for the session roster
type SpeakersResponse struct {
	BaseResponse
	Speakers []models.Speaker `json:"speakers"`
	Selected string           `json:"selected"`
}

// AudioFilesResponse for library listings
type AudioFilesResponse struct {
	BaseResponse
	Files []dataset.AudioFile `json:"files"`
	Count int                 `json:"count"`
}

// ImportResponse reports an applied annotation import
type ImportResponse struct {
	BaseResponse
	Result session.ImportResult `json:"result"`
}

// ExportResponse reports a completed dataset export
type ExportResponse struct {
	BaseResponse
	AudioPath   string `json:"audioPath"`
	RTTMPath    string `json:"rttmPath"`
	RegionCount int    `json:"regionCount"`
}

// ExportHistoryResponse lists recorded exports for a file
type ExportHistoryResponse struct {
	BaseResponse
	Exports []models.ExportRecord `json:"exports"`
	Count   int                   `json:"count"`
}
