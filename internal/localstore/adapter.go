// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"wikibase/internal/models"
)

// Adapter serializes the three client collections in and out of a KV.
//
// Failure semantics are deliberate and uniform: a serialization or
// storage error is logged and swallowed — save becomes a no-op, load
// reports absence. The caller never sees an error from this layer.
// Timestamps round-trip as true time-points: encoded as ISO-8601 strings,
// restored to time.Time values on load.
type Adapter struct {
	kv KV
}

// NewAdapter returns an Adapter over the given persistence context.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// SaveArticles persists the full articles collection.
func (a *Adapter) SaveArticles(ctx context.Context, articles []models.Article) {
	a.save(ctx, KeyArticles, articles)
}

// LoadArticles returns the persisted articles, or ok=false when absent
// or unreadable.
func (a *Adapter) LoadArticles(ctx context.Context) ([]models.Article, bool) {
	var articles []models.Article
	if !a.load(ctx, KeyArticles, &articles) {
		return nil, false
	}
	return articles, true
}

// SaveCategories persists the full categories collection.
func (a *Adapter) SaveCategories(ctx context.Context, categories []models.Category) {
	a.save(ctx, KeyCategories, categories)
}

// LoadCategories returns the persisted categories, or ok=false when
// absent or unreadable.
func (a *Adapter) LoadCategories(ctx context.Context) ([]models.Category, bool) {
	var categories []models.Category
	if !a.load(ctx, KeyCategories, &categories) {
		return nil, false
	}
	return categories, true
}

// SaveCurrentUser persists the session user.
func (a *Adapter) SaveCurrentUser(ctx context.Context, user *models.User) {
	if user == nil {
		return
	}
	a.save(ctx, KeyCurrentUser, user)
}

// LoadCurrentUser returns the persisted session user, or ok=false when
// absent or unreadable.
func (a *Adapter) LoadCurrentUser(ctx context.Context) (*models.User, bool) {
	var user models.User
	if !a.load(ctx, KeyCurrentUser, &user) {
		return nil, false
	}
	return &user, true
}

// ClearCurrentUser removes the persisted session.
func (a *Adapter) ClearCurrentUser(ctx context.Context) {
	if err := a.kv.Clear(ctx, KeyCurrentUser); err != nil {
		slog.Error("local store clear failed", "key", KeyCurrentUser, "error", err)
	}
}

// save marshals v and stores it under key, swallowing failures.
func (a *Adapter) save(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("local store marshal failed", "key", key, "error", err)
		return
	}
	if err := a.kv.Set(ctx, key, payload); err != nil {
		slog.Error("local store save failed", "key", key, "error", err)
	}
}

// load reads key into v, reporting absence on any failure.
func (a *Adapter) load(ctx context.Context, key string, v any) bool {
	payload, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		slog.Error("local store read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		slog.Error("local store unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}
