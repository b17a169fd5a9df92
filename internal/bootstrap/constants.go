package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger configuration
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	LogFileNamePattern = "session_%s.log"
	LogFileExtension   = ".log"

	// LogFileRetentionLimit is the count at which cleanup kicks in;
	// LogFileRetentionCount files survive it
	LogFileRetentionLimit = 10
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingArena       = "Starting Arena gamification service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// Event system configuration
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Log messages for event handler registration
const (
	LogMsgBadgeCheckerRegistered     = "Badge check event handler registered"
	LogMsgActivityRecorderRegistered = "Activity feed recorder registered"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgAnnouncerRegistered        = "Discord announcer registered"
	LogMsgAnnouncerDisabled          = "Discord announcer disabled, no token configured"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedStartAnnouncer       = "failed to start Discord announcer"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
