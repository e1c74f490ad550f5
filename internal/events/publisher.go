// Package events emits user domain events to the platform bus. Publishing is
// fire-and-forget: callers enqueue and return, a background worker publishes,
// and failures are logged, never surfaced.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/logger"
	"github.com/quikapp/user-service/pkg/metrics"
)

// Event types carried in the envelope. Stable contract consumed by the other
// QuikApp services.
const (
	TypeUserCreated        = "USER_CREATED"
	TypeUserUpdated        = "USER_UPDATED"
	TypeUserDeactivated    = "USER_DEACTIVATED"
	TypeUserSuspended      = "USER_SUSPENDED"
	TypeProfileUpdated     = "PROFILE_UPDATED"
	TypePreferencesUpdated = "PREFERENCES_UPDATED"
)

// Source is the fixed source tag stamped on every envelope.
const Source = "user-service"

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 15 * time.Second
)

// Envelope is the wire shape of one event.
type Envelope struct {
	EventType string         `json:"eventType"`
	UserID    string         `json:"userId"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
	Source    string         `json:"source"`
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// Params configures the background publisher.
type Params struct {
	Logger         *logger.Logger
	Metrics        *metrics.EventMetrics
	Publisher      *gcppubsub.Publisher
	QueueSize      int
	PublishTimeout time.Duration
}

// Publisher queues envelopes on a bounded channel and publishes them from a
// single background worker. When the queue is full the newest event is
// dropped with a warning; the bus preserves per-user ordering via the
// ordering key.
type Publisher struct {
	logg    *logger.Logger
	metrics *metrics.EventMetrics
	sink    publisher
	timeout time.Duration

	queue chan Envelope
	stop  chan struct{}
	done  sync.WaitGroup
	once  sync.Once
}

// NewPublisher builds the publisher and starts its worker.
func NewPublisher(params Params) (*Publisher, error) {
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.Publisher == nil {
		return nil, errors.New("pubsub publisher is required")
	}

	// Ordering keys only take effect when the publisher opts in.
	params.Publisher.EnableMessageOrdering = true

	return newPublisherWithSink(params, newGCPPublisher(params.Publisher))
}

func newPublisherWithSink(params Params, sink publisher) (*Publisher, error) {
	if sink == nil {
		return nil, errors.New("publish sink is required")
	}

	size := params.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	timeout := params.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	p := &Publisher{
		logg:    params.Logger,
		metrics: params.Metrics,
		sink:    sink,
		timeout: timeout,
		queue:   make(chan Envelope, size),
		stop:    make(chan struct{}),
	}

	p.done.Add(1)
	go p.run()
	return p, nil
}

// Emit enqueues one event without blocking. A full queue drops the event.
func (p *Publisher) Emit(eventType string, userID uuid.UUID, data map[string]any) {
	envelope := Envelope{
		EventType: eventType,
		UserID:    userID.String(),
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    Source,
	}

	select {
	case p.queue <- envelope:
		p.metrics.SetQueueLength(len(p.queue))
	default:
		p.metrics.IncDropped()
		p.warn(envelope, errors.New("publish queue full"), "user event dropped")
	}
}

// Close stops the worker after draining the queued events.
func (p *Publisher) Close() {
	p.once.Do(func() {
		close(p.stop)
		p.done.Wait()
	})
}

func (p *Publisher) run() {
	defer p.done.Done()

	for {
		select {
		case envelope := <-p.queue:
			p.publish(envelope)
		case <-p.stop:
			// Drain what is already queued, then exit.
			for {
				select {
				case envelope := <-p.queue:
					p.publish(envelope)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) publish(envelope Envelope) {
	p.metrics.SetQueueLength(len(p.queue))

	raw, err := json.Marshal(envelope)
	if err != nil {
		p.metrics.IncFailed(envelope.EventType)
		p.warn(envelope, err, "user event encode failed")
		return
	}

	msg := &gcppubsub.Message{
		Data:        raw,
		OrderingKey: envelope.UserID,
		Attributes: map[string]string{
			"event_type": envelope.EventType,
			"source":     envelope.Source,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	result := p.sink.Publish(ctx, msg)
	if result == nil {
		p.metrics.IncFailed(envelope.EventType)
		p.warn(envelope, errors.New("publisher returned nil result"), "user event publish failed")
		return
	}
	if _, err := result.Get(ctx); err != nil {
		p.metrics.IncFailed(envelope.EventType)
		p.warn(envelope, err, "user event publish failed")
		return
	}

	p.metrics.IncPublished(envelope.EventType)
}

func (p *Publisher) warn(envelope Envelope, err error, msg string) {
	if p.logg == nil {
		return
	}
	ctx := p.logg.WithFields(context.Background(), map[string]any{
		"event_type": envelope.EventType,
		"user_id":    envelope.UserID,
		"error":      err.Error(),
	})
	p.logg.Warn(ctx, msg)
}

func newGCPPublisher(pub *gcppubsub.Publisher) publisher {
	if pub == nil {
		return nil
	}
	return &gcpPublisher{Publisher: pub}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
