package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidSkip       = "Invalid skip parameter"

	// Auth error messages
	ErrMsgMissingAPIKey = "Missing API key"
	ErrMsgInvalidAPIKey = "Invalid API key"
)

// Success messages for API responses
const (
	MsgMarketClosedSuccess    = "Market closed successfully"
	MsgMarketCancelledSuccess = "Market cancelled successfully"
	MsgCoinsGrantedSuccess    = "Coins granted successfully"
	MsgBadgeAwardedSuccess    = "Badge awarded successfully"
)
