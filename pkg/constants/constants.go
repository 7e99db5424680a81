// Package constants provides shared constants used throughout the fbohub
// codebase. This includes timeouts, limits, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultRemoteTimeout is the standard timeout for remote store calls
	DefaultRemoteTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SyncTimeout bounds one full location sync including the remote fetch
	SyncTimeout = 2 * time.Minute

	// PushTimeout bounds one best-effort push of a pending record
	PushTimeout = 15 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// DefaultSyncInterval is the default interval between automatic syncs
	DefaultSyncInterval = 30 * time.Minute

	// ShutdownTimeout is how long the server waits for connection draining
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like credentials (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MinLocationCodeLength is the minimum allowed length for airport codes
	MinLocationCodeLength = 3

	// MaxLocationCodeLength is the maximum allowed length for airport codes
	MaxLocationCodeLength = 4

	// MaxFacilityNameLength is the maximum allowed length for facility names
	MaxFacilityNameLength = 256

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100

	// MaxConcurrentSyncs caps locations synced in parallel by SyncAll
	MaxConcurrentSyncs = 5
)

// Store constants cover the local SQLite store
const (
	// StoreBusyTimeout is how long SQLite waits on a locked database, in
	// milliseconds
	StoreBusyTimeout = 5000

	// DefaultStoreFile is the default database filename
	DefaultStoreFile = "fbohub.db"
)

// Server constants cover the HTTP API
const (
	// DefaultHTTPPort is the default port for the API server
	DefaultHTTPPort = 8080

	// DefaultReadTimeout is the HTTP server read timeout
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the HTTP server write timeout
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the HTTP server idle timeout
	DefaultIdleTimeout = 120 * time.Second
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
