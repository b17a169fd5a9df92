package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesAwarded,
			Help: HelpTextBadgesAwarded,
		},
		[]string{LabelBadge, LabelRarity},
	)

	BetsPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsPlaced,
			Help: HelpTextBetsPlaced,
		},
	)

	BetsWon = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsWon,
			Help: HelpTextBetsWon,
		},
	)

	CoinsStaked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsStaked,
			Help: HelpTextCoinsStaked,
		},
	)

	CoinsPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsPaidOut,
			Help: HelpTextCoinsPaidOut,
		},
	)

	MarketsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMarketsSettled,
			Help: HelpTextMarketsSettled,
		},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	DailyBonusesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyBonusesClaims,
			Help: HelpTextDailyBonusesClaims,
		},
	)
)
