package config

import "time"

// Session lifetime: every session expires exactly this long after creation.
const SessionTTL = 24 * time.Hour

// Maximum runes per outbound message part. Telegram caps message text at
// 4096 characters; 4000 leaves headroom for part labels.
const MessageChunkSize = 4000

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 15 * time.Minute
