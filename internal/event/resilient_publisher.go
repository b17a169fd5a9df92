package event

import (
	"context"
	"time"

	"github.com/nexuslan/arena/internal/logger"
)

// ResilientPublisher wraps a Bus with retry logic and dead-letter capture.
// A failed publish is accepted immediately and retried in the background so
// callers never block on a flaky subscriber.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
}

// NewResilientPublisher creates a new ResilientPublisher writing exhausted
// events to the dead-letter file at deadLetterPath.
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
	}, nil
}

// Publish attempts to publish an event. On failure it launches a background
// retry loop and returns nil, decoupling the caller from the retry mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"max_retries", p.maxRetries)

	// Detached from the request context, which may be cancelled before
	// retries complete.
	go p.retryLoop(event, err)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.retryDelay, attempt))

		err := p.inner.Publish(ctx, event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		}
		lastErr = err

		log.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", attempt,
			"error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", event.Type)
	if err := p.deadLetter.Write(event, p.maxRetries, lastErr); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Close releases the dead-letter file handle
func (p *ResilientPublisher) Close() error {
	return p.deadLetter.Close()
}
