// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/eventprocessor"
	"github.com/tomtom215/songbird/internal/logging"
)

// catalogSync bundles the catalog event consumer with the stream it reads
// and, when configured, the embedded JetStream server it connects to.
//
// It satisfies services.CatalogSyncRunner for the supervisor and
// api.SyncStatus for the readiness endpoint.
type catalogSync struct {
	url       string
	streamCfg eventprocessor.StreamConfig
	consumer  *eventprocessor.Consumer

	mu     sync.Mutex
	server *eventprocessor.EmbeddedServer
}

// initCatalogSync builds catalog synchronization from cfg. It returns nil
// when NATS is disabled. The embedded server, if any, is already running
// when it returns; the consumer starts under the supervisor.
func initCatalogSync(cfg *config.Config, store eventprocessor.CatalogStore, invalidator eventprocessor.Invalidator) (*catalogSync, error) {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("Catalog sync disabled (NATS_ENABLED=false)")
		return nil, nil
	}

	cs := &catalogSync{
		url:       cfg.NATS.URL,
		streamCfg: eventprocessor.DefaultStreamConfig(cfg.NATS.StreamName),
	}

	if cfg.NATS.EmbeddedServer {
		serverCfg, err := eventprocessor.ServerConfigFrom(&cfg.NATS)
		if err != nil {
			return nil, err
		}
		srv, err := eventprocessor.NewEmbeddedServer(&serverCfg)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		cs.server = srv
		cs.url = srv.ClientURL()
		logging.Info().
			Str("url", cs.url).
			Str("store_dir", serverCfg.StoreDir).
			Msg("Embedded NATS JetStream server started")
	}

	subCfg := eventprocessor.SubscriberConfigFrom(&cfg.NATS)
	subCfg.URL = cs.url

	handler := eventprocessor.NewCatalogHandler(store, invalidator, eventprocessor.DefaultHandlerConfig())
	subscribe := func() (message.Subscriber, error) {
		return eventprocessor.NewSubscriber(&subCfg, logging.NewWatermillAdapter("catalog_subscriber"))
	}
	cs.consumer = eventprocessor.NewConsumer(handler, subscribe, eventprocessor.DefaultRouterConfig())

	logging.Info().
		Str("url", cs.url).
		Str("stream", cs.streamCfg.Name).
		Str("durable", subCfg.DurableName).
		Msg("Catalog sync configured")
	return cs, nil
}

// Start ensures the catalog stream exists and starts the consumer.
func (c *catalogSync) Start(ctx context.Context) error {
	if err := eventprocessor.EnsureStreamAt(ctx, c.url, &c.streamCfg); err != nil {
		return fmt.Errorf("ensure catalog stream: %w", err)
	}
	return c.consumer.Start(ctx)
}

// Shutdown stops the consumer.
func (c *catalogSync) Shutdown(ctx context.Context) {
	c.consumer.Shutdown(ctx)
}

// Done is closed when the consumer's router exits.
func (c *catalogSync) Done() <-chan struct{} {
	return c.consumer.Done()
}

// IsRunning reports whether events are being consumed.
func (c *catalogSync) IsRunning() bool {
	if c == nil {
		return false
	}
	return c.consumer.IsRunning()
}

// Close shuts down the embedded NATS server. Call it after the supervisor
// tree has stopped the consumer.
func (c *catalogSync) Close(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	srv := c.server
	c.server = nil
	c.mu.Unlock()

	if srv == nil {
		return
	}
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn().Err(err).Msg("Embedded NATS server shutdown error")
		return
	}
	logging.Info().Msg("Embedded NATS server stopped")
}
