package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Library      LibraryConfig    `mapstructure:"library"`
	Labeling     LabelingConfig   `mapstructure:"labeling"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	// MaxRequestBytes caps mutating request bodies; annotation imports carry
	// whole RTTM files, so this is larger than a typical JSON payload needs
	MaxRequestBytes int64 `mapstructure:"max_request_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// LibraryConfig contains audio library and dataset output settings
type LibraryConfig struct {
	// AudioDir is the directory scanned for audio files to label
	AudioDir string `mapstructure:"audio_dir"`
	// DatasetDir is the root under which dataset/audio and dataset/rttm live
	DatasetDir string `mapstructure:"dataset_dir"`
}

// LabelingConfig contains session-level labeling settings
type LabelingConfig struct {
	// DefaultSpeakers is the number of speakers a fresh session starts with
	DefaultSpeakers int `mapstructure:"default_speakers"`
	// SessionTTL is how long an idle session is kept before eviction
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// ProcessingConfig contains audio probing settings
type ProcessingConfig struct {
	FFprobePath  string        `mapstructure:"ffprobe_path"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	BurstSize         int  `mapstructure:"burst_size"`
	// ClientIdleTTL is how long an inactive client keeps its limiter before
	// the sweeper drops it
	ClientIdleTTL time.Duration `mapstructure:"client_idle_ttl"`
}
