// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/metrics"
)

// Publisher publishes catalog events to JetStream. Peer services use it
// to announce catalog changes; the search service uses it in tests and
// tooling.
type Publisher struct {
	publisher      message.Publisher
	circuitBreaker *gobreaker.CircuitBreaker[struct{}]
	serializer     *Serializer
	mu             sync.RWMutex
	closed         bool
}

// NewPublisher creates a JetStream publisher. The stream must already
// exist (see EnsureStream).
func NewPublisher(cfg PublisherConfig, logger watermill.LoggerAdapter) (*Publisher, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS publisher disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS publisher reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &Publisher{
		publisher:      pub,
		circuitBreaker: newPublishBreaker(&cfg),
		serializer:     NewSerializer(),
	}, nil
}

const publishBreakerName = "catalog_publish"

// newPublishBreaker returns nil when cfg disables the breaker. An open
// breaker fails publishes fast with gobreaker.ErrOpenState.
func newPublishBreaker(cfg *PublisherConfig) *gobreaker.CircuitBreaker[struct{}] {
	if cfg.BreakerFailureThreshold == 0 {
		return nil
	}
	threshold := cfg.BreakerFailureThreshold
	metrics.CircuitBreakerState.WithLabelValues(publishBreakerName).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        publishBreakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog publish circuit breaker state changed")
		},
	})
}

// PublishEvent validates, serializes and publishes event on its subject.
// The event id becomes the message UUID and Nats-Msg-Id, so JetStream
// drops republished copies inside the stream's duplicate window.
func (p *Publisher) PublishEvent(ctx context.Context, event *CatalogEvent) error {
	data, err := p.serializer.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.SetContext(ctx)
	msg.Metadata.Set(natsgo.MsgIdHdr, event.EventID)
	msg.Metadata.Set("entity", string(event.Entity))
	msg.Metadata.Set("event_type", string(event.EventType))

	return p.publish(event.Topic(), msg)
}

func (p *Publisher) publish(topic string, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if p.circuitBreaker == nil {
		return p.publisher.Publish(topic, msg)
	}
	_, err := p.circuitBreaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(topic, msg)
	})
	return err
}

// Close shuts down the publisher. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
