// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/songbird/internal/logging"
)

// SubscriberFactory creates the message source for one consumer run.
type SubscriberFactory func() (message.Subscriber, error)

// Consumer runs the catalog handler behind a Watermill router.
//
// Middleware, outer to inner:
//  1. Recoverer turns handler panics into errors
//  2. Retry retries store failures with exponential backoff
//
// An error surviving the retries nacks the message, and JetStream
// redelivers it up to MaxDeliver times.
type Consumer struct {
	handler    *CatalogHandler
	subscribe  SubscriberFactory
	routerCfg  RouterConfig
	logger     watermill.LoggerAdapter
	handlerFor string

	mu         sync.Mutex
	router     *message.Router
	subscriber message.Subscriber
	done       chan struct{}
	runErr     error
}

// NewConsumer creates a consumer. Nothing connects until Start.
func NewConsumer(handler *CatalogHandler, subscribe SubscriberFactory, cfg RouterConfig) *Consumer {
	return &Consumer{
		handler:    handler,
		subscribe:  subscribe,
		routerCfg:  cfg,
		logger:     logging.NewWatermillAdapter("catalog_consumer"),
		handlerFor: "catalog_sync",
	}
}

// Start subscribes to every catalog subject and returns once the router
// is running. Each Start builds a fresh router, so a supervisor may call
// Start again after Shutdown.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.router != nil {
		return fmt.Errorf("catalog consumer already running")
	}

	sub, err := c.subscribe()
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: c.routerCfg.CloseTimeout}, c.logger)
	if err != nil {
		closeSubscriber(sub)
		return fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      c.routerCfg.RetryMaxRetries,
			InitialInterval: c.routerCfg.RetryInitialInterval,
			MaxInterval:     c.routerCfg.RetryMaxInterval,
			Multiplier:      c.routerCfg.RetryMultiplier,
			Logger:          c.logger,
		}.Middleware,
	)
	router.AddConsumerHandler(c.handlerFor, AllSubjects, sub, c.handler.Handle)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := router.Run(ctx); err != nil {
			c.mu.Lock()
			c.runErr = err
			c.mu.Unlock()
			c.logger.Error("Catalog router stopped", err, nil)
		}
	}()

	select {
	case <-router.Running():
	case <-done:
		closeSubscriber(sub)
		c.mu.Lock()
		err := c.runErr
		c.mu.Unlock()
		return fmt.Errorf("catalog router failed to start: %w", err)
	case <-ctx.Done():
		_ = router.Close()
		closeSubscriber(sub)
		return ctx.Err()
	}

	c.router = router
	c.subscriber = sub
	c.done = done

	logging.Info().
		Str("subject", AllSubjects).
		Msg("Catalog consumer started")
	return nil
}

// Done is closed when the running router exits. It returns nil before
// Start.
func (c *Consumer) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Shutdown stops the router, waiting for in-flight events up to
// RouterConfig.CloseTimeout, then closes the subscriber.
func (c *Consumer) Shutdown(ctx context.Context) {
	c.mu.Lock()
	router, sub, done := c.router, c.subscriber, c.done
	c.router, c.subscriber = nil, nil
	c.mu.Unlock()

	if router == nil {
		return
	}
	if err := router.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close catalog router")
	}
	closeSubscriber(sub)

	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn().Msg("Catalog router did not stop before shutdown deadline")
	}
	logging.Info().Msg("Catalog consumer stopped")
}

// IsRunning reports whether the router is processing events.
func (c *Consumer) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.router == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func closeSubscriber(sub message.Subscriber) {
	if err := sub.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close catalog subscriber")
	}
}
