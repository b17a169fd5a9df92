package config

import "time"

// Event system defaults
const (
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "data/events_deadletter.jsonl"
)
