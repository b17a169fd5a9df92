package activity

// Listing limits
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// Log messages
const (
	LogMsgEntryDropped = "Failed to record activity entry"
)
