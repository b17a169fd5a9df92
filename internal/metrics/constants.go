package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameBadgesAwarded      = "badges_awarded_total"
	MetricNameBetsPlaced         = "bets_placed_total"
	MetricNameBetsWon            = "bets_won_total"
	MetricNameCoinsStaked        = "coins_staked_total"
	MetricNameCoinsPaidOut       = "coins_paid_out_total"
	MetricNameMarketsSettled     = "markets_settled_total"
	MetricNameItemsPurchased     = "marketplace_items_purchased_total"
	MetricNameLevelUps           = "level_ups_total"
	MetricNameDailyBonusesClaims = "daily_bonuses_claimed_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextBadgesAwarded      = "Total number of badges awarded"
	HelpTextBetsPlaced         = "Total number of bets placed"
	HelpTextBetsWon            = "Total number of bets won"
	HelpTextCoinsStaked        = "Total coins staked on bets"
	HelpTextCoinsPaidOut       = "Total coins paid out to winning bets"
	HelpTextMarketsSettled     = "Total number of markets settled"
	HelpTextItemsPurchased     = "Total number of marketplace items purchased"
	HelpTextLevelUps           = "Total number of level ups"
	HelpTextDailyBonusesClaims = "Total number of daily bonuses claimed"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelBadge  = "badge"
	LabelRarity = "rarity"
	LabelItem   = "item"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, covering fast (1-10ms), normal (10-100ms), slow (100ms-1s) and
// very slow (1-10s) requests
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
