// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wikibase/internal/models"
)

// SnapshotClient is the remote side of a snapshot push, satisfied by
// syncclient.Client.
type SnapshotClient interface {
	PushSnapshot(ctx context.Context, articles []models.Article, categories []models.Category) error
	CheckAvailability(ctx context.Context) bool
}

// pushTimeout bounds a single push cycle (probe + write).
const pushTimeout = 15 * time.Second

// Pusher serializes snapshot pushes: at most one request in flight, and
// a single pending slot that newer snapshots overwrite. This removes the
// last-writer-wins race of issuing one unordered request per change —
// the backend always applies pushes in the order they were taken here,
// and a burst of edits collapses into the final state.
//
// The availability probe before each push feeds the log message only;
// the push itself is attempted regardless of the probe's outcome.
type Pusher struct {
	client SnapshotClient

	mu       sync.Mutex
	pending  *pendingSnapshot
	inFlight bool
	idle     *sync.Cond
}

type pendingSnapshot struct {
	articles   []models.Article
	categories []models.Category
}

// NewPusher returns a Pusher over the given client.
func NewPusher(client SnapshotClient) *Pusher {
	p := &Pusher{client: client}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Push implements SnapshotSink. It never blocks: the snapshot either
// starts immediately or replaces the pending one.
func (p *Pusher) Push(articles []models.Article, categories []models.Category) {
	p.mu.Lock()
	p.pending = &pendingSnapshot{articles: articles, categories: categories}
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	go p.drain()
}

// Wait blocks until no push is in flight and nothing is pending.
func (p *Pusher) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.inFlight || p.pending != nil {
		p.idle.Wait()
	}
}

// drain pushes snapshots until the pending slot is empty.
func (p *Pusher) drain() {
	for {
		p.mu.Lock()
		snap := p.pending
		p.pending = nil
		if snap == nil {
			p.inFlight = false
			p.idle.Broadcast()
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		p.pushOnce(snap)
	}
}

// pushOnce performs one probe + push cycle and logs the outcome. Push
// failures are terminal for the attempt: the next user action enqueues a
// fresh snapshot.
func (p *Pusher) pushOnce(snap *pendingSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	available := p.client.CheckAvailability(ctx)
	err := p.client.PushSnapshot(ctx, snap.articles, snap.categories)

	switch {
	case !available:
		slog.Warn("snapshot server unavailable — local store remains authoritative")
	case err != nil:
		slog.Error("snapshot push failed", "error", err)
	default:
		slog.Info("snapshot pushed",
			"articles", len(snap.articles),
			"categories", len(snap.categories),
		)
	}
}
