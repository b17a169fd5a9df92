package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Badge errors
	ErrMsgBadgeNotFound     = "badge not found"
	ErrMsgBadgeAlreadyHeld  = "badge already held"
	ErrMsgUnknownCriterion  = "unknown criterion"

	// Betting errors
	ErrMsgMarketNotFound      = "betting market not found"
	ErrMsgMarketNotOpen       = "betting market is not open"
	ErrMsgBettingPeriodOver   = "betting period is over"
	ErrMsgOptionNotFound      = "bet option not found"
	ErrMsgAlreadyBet          = "user has already bet on this market"
	ErrMsgBelowMinimumStake   = "bet amount below minimum stake"
	ErrMsgAboveMaximumStake   = "bet amount above maximum stake"
	ErrMsgMarketAlreadyFinal  = "betting market already settled or cancelled"
	ErrMsgTournamentNotFound  = "tournament not found"

	// Marketplace errors
	ErrMsgItemNotFound     = "marketplace item not found"
	ErrMsgItemNotAvailable = "marketplace item is not available"
	ErrMsgItemAlreadyOwned = "item already owned"

	// Daily bonus errors
	ErrMsgBonusAlreadyClaimed = "daily bonus already claimed today"

	// Authorization errors
	ErrMsgForbidden = "administrator access required"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Badge errors
	ErrBadgeNotFound    = errors.New(ErrMsgBadgeNotFound)
	ErrBadgeAlreadyHeld = errors.New(ErrMsgBadgeAlreadyHeld)
	ErrUnknownCriterion = errors.New(ErrMsgUnknownCriterion)

	// Betting errors
	ErrMarketNotFound     = errors.New(ErrMsgMarketNotFound)
	ErrMarketNotOpen      = errors.New(ErrMsgMarketNotOpen)
	ErrBettingPeriodOver  = errors.New(ErrMsgBettingPeriodOver)
	ErrOptionNotFound     = errors.New(ErrMsgOptionNotFound)
	ErrAlreadyBet         = errors.New(ErrMsgAlreadyBet)
	ErrBelowMinimumStake  = errors.New(ErrMsgBelowMinimumStake)
	ErrAboveMaximumStake  = errors.New(ErrMsgAboveMaximumStake)
	ErrMarketAlreadyFinal = errors.New(ErrMsgMarketAlreadyFinal)
	ErrTournamentNotFound = errors.New(ErrMsgTournamentNotFound)

	// Marketplace errors
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrItemNotAvailable = errors.New(ErrMsgItemNotAvailable)
	ErrItemAlreadyOwned = errors.New(ErrMsgItemAlreadyOwned)

	// Daily bonus errors
	ErrBonusAlreadyClaimed = errors.New(ErrMsgBonusAlreadyClaimed)

	// Authorization errors
	ErrForbidden = errors.New(ErrMsgForbidden)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
