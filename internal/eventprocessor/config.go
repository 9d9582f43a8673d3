// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tomtom215/songbird/internal/config"
)

// ServerConfig holds embedded NATS server settings.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// StreamConfig holds JetStream stream settings for catalog events.
type StreamConfig struct {
	Name     string
	Subjects []string

	// MaxAge bounds how long events are retained. Catalog events are only
	// needed until every replica has applied them.
	MaxAge time.Duration

	// DuplicateWindow is the server-side Nats-Msg-Id dedup window.
	DuplicateWindow time.Duration
}

// PublisherConfig holds catalog event publisher settings.
type PublisherConfig struct {
	URL              string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool // nolint:revive // ID is correct per Go conventions

	// Breaker settings for publish calls. Zero BreakerFailureThreshold
	// disables the breaker.
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

// SubscriberConfig holds durable subscriber settings.
type SubscriberConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration
}

// HandlerConfig holds catalog event handler settings.
type HandlerConfig struct {
	// DedupCapacity and DedupTTL bound the event id memory used to skip
	// redeliveries.
	DedupCapacity int
	DedupTTL      time.Duration

	// Breaker settings for catalog writes.
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

// RouterConfig holds Watermill router middleware settings.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultStreamConfig returns the catalog stream layout for name.
func DefaultStreamConfig(name string) StreamConfig {
	return StreamConfig{
		Name:            name,
		Subjects:        []string{AllSubjects},
		MaxAge:          7 * 24 * time.Hour,
		DuplicateWindow: 2 * time.Minute,
	}
}

// DefaultPublisherConfig returns publisher defaults for url.
func DefaultPublisherConfig(natsURL string) PublisherConfig {
	return PublisherConfig{
		URL:              natsURL,
		MaxReconnects:    -1, // Unlimited
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024,
		EnableTrackMsgID: true,

		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          15 * time.Second,
		BreakerFailureThreshold: 5,
	}
}

// DefaultHandlerConfig returns handler defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		DedupCapacity:           10000,
		DedupTTL:                10 * time.Minute,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          15 * time.Second,
		BreakerFailureThreshold: 5,
	}
}

// DefaultRouterConfig returns router defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
	}
}

// SubscriberConfigFrom derives subscriber settings from the service config.
func SubscriberConfigFrom(cfg *config.NATSConfig) SubscriberConfig {
	return SubscriberConfig{
		URL:              cfg.URL,
		StreamName:       cfg.StreamName,
		DurableName:      cfg.DurableName,
		QueueGroup:       cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		MaxDeliver:       cfg.MaxDeliver,
		MaxAckPending:    1000,
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// ServerConfigFrom derives embedded server settings from the service
// config. The server listens on the host and port of cfg.URL so clients
// built from the same config connect to it.
func ServerConfigFrom(cfg *config.NATSConfig) (ServerConfig, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("%w: parse NATS_URL: %v", ErrInvalidConfig, err)
	}

	port := 4222
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%w: NATS_URL port %q", ErrInvalidConfig, p)
		}
	}

	host := u.Hostname()
	if host == "" {
		host = "127.0.0.1"
	}

	return ServerConfig{
		Host:              host,
		Port:              port,
		StoreDir:          cfg.StoreDir,
		JetStreamMaxMem:   cfg.MaxMemory,
		JetStreamMaxStore: cfg.MaxStore,
	}, nil
}
