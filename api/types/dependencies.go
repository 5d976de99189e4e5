package types

import (
	"github.com/killallgit/labeler-api/internal/database"
	"github.com/killallgit/labeler-api/internal/services/dataset"
	"github.com/killallgit/labeler-api/internal/services/session"
	"github.com/killallgit/labeler-api/pkg/ffprobe"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	DB              *database.DB
	Sessions        *session.Manager
	Dataset         dataset.Service
	Exports         dataset.Repository
	Prober          *ffprobe.Probe
	DefaultSpeakers int
}
