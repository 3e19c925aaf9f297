// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides a Valkey-backed cache for the snapshot artifact
// so GET /api/get-data — which also serves as the liveness probe — skips
// the disk read when the artifact hasn't changed.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// artifactKey is the single Valkey key holding the artifact text.
	artifactKey = "wikibase:artifact"

	// DefaultTTL bounds staleness if an invalidation is ever missed.
	DefaultTTL = 5 * time.Minute
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// ArtifactCache caches the current artifact contents. A nil
// *ArtifactCache is valid and disables caching.
type ArtifactCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewArtifactCache creates an artifact cache backed by the given client.
func NewArtifactCache(client *redis.Client, ttl time.Duration) *ArtifactCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ArtifactCache{client: client, ttl: ttl}
}

// Get returns the cached artifact, or ok=false on miss.
func (c *ArtifactCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, artifactKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("artifact cache get error", "error", err)
		return nil, false
	}
	return val, true
}

// Set stores the artifact contents with the configured TTL.
func (c *ArtifactCache) Set(ctx context.Context, content []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, artifactKey, content, c.ttl).Err(); err != nil {
		slog.Warn("artifact cache set error", "error", err)
	}
}

// Invalidate removes the cached artifact. Called on every save-data.
func (c *ArtifactCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, artifactKey).Err(); err != nil {
		slog.Warn("artifact cache invalidate error", "error", err)
	}
}
