// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package controller owns the canonical in-memory article, category and
// session collections and mediates every mutation. Each collection
// follows the same lifecycle: empty → loaded (local store or seed
// defaults) → mutated → persisted on every mutation. Mutations are
// admin-gated; successful ones are written to the local store
// synchronously and handed to the snapshot pusher asynchronously — a
// push failure never rolls back or blocks the local change.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"wikibase/internal/localstore"
	"wikibase/internal/models"
	"wikibase/internal/seed"
)

// Domain errors surfaced to the presentation layer.
var (
	ErrNotAdmin         = errors.New("only administrators can perform this action")
	ErrCategoryInUse    = errors.New("category is referenced by existing articles")
	ErrArticleNotFound  = errors.New("article not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// SnapshotSink receives the full collections after each mutation.
type SnapshotSink interface {
	// Push delivers a snapshot. Implementations decide scheduling; the
	// controller never waits on the result.
	Push(articles []models.Article, categories []models.Category)
}

// Navigation is the UI navigation state the controller tracks so that
// logout can reset it to initial values.
type Navigation struct {
	SelectedArticleID string
	Editing           bool
	NewArticle        bool
	NewCategory       bool
}

// Controller mediates all state mutations. Safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	articles   []models.Article
	categories []models.Category
	user       *models.User
	nav        Navigation

	store *localstore.Adapter
	sink  SnapshotSink
	now   func() time.Time
	newID func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides identifier generation (tests).
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// New returns a Controller over the given persistence adapter and
// snapshot sink. The sink may be nil when snapshot syncing is disabled.
func New(store *localstore.Adapter, sink SnapshotSink, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		sink:  sink,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load populates the collections from the local store, falling back to
// the seed defaults (and persisting them) when both collections are
// absent. It also restores a persisted session if one exists.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if user, ok := c.store.LoadCurrentUser(ctx); ok {
		c.user = user
	}

	articles, articlesOK := c.store.LoadArticles(ctx)
	categories, categoriesOK := c.store.LoadCategories(ctx)
	if articlesOK && categoriesOK {
		c.articles = articles
		c.categories = categories
		return
	}

	c.articles = seed.Articles()
	c.categories = seed.Categories()
	c.store.SaveArticles(ctx, c.articles)
	c.store.SaveCategories(ctx, c.categories)
}

// Login sets and persists the session. The role is trusted as given.
func (c *Controller) Login(ctx context.Context, user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &user
	c.store.SaveCurrentUser(ctx, &user)
}

// Logout clears the session and resets all navigation state to initial.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.nav = Navigation{}
	c.store.ClearCurrentUser(ctx)
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (c *Controller) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Articles returns a copy of the article collection.
func (c *Controller) Articles() []models.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Categories returns a copy of the category collection.
func (c *Controller) Categories() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// NavigationState returns the current navigation state.
func (c *Controller) NavigationState() Navigation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav
}

// SelectArticle records the article currently open in the UI.
func (c *Controller) SelectArticle(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = Navigation{SelectedArticleID: id}
}

// ArticleDraft carries the user-editable article fields.
type ArticleDraft struct {
	Title       string
	Description string
	Category    string
	Content     string
}

// CreateArticle appends a new article authored by the session user.
// The category defaults to the first resident category when unset.
func (c *Controller) CreateArticle(ctx context.Context, draft ArticleDraft) (models.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return models.Article{}, ErrNotAdmin
	}

	category := draft.Category
	if category == "" && len(c.categories) > 0 {
		category = c.categories[0].Name
	}
	now := c.now()
	article := models.Article{
		ID:          c.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    category,
		Content:     draft.Content,
		Author:      c.user.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c.articles = append(c.articles, article)
	c.articlesChanged(ctx)
	return article, nil
}

// UpdateArticle replaces the stored fields of an existing article and
// re-stamps its update time. CreatedAt is preserved.
func (c *Controller) UpdateArticle(ctx context.Context, id string, draft ArticleDraft) (models.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return models.Article{}, ErrNotAdmin
	}

	for i := range c.articles {
		if c.articles[i].ID != id {
			continue
		}
		c.articles[i].Title = draft.Title
		c.articles[i].Description = draft.Description
		c.articles[i].Category = draft.Category
		c.articles[i].Content = draft.Content
		c.articles[i].UpdatedAt = c.now()
		updated := c.articles[i]
		c.articlesChanged(ctx)
		return updated, nil
	}
	return models.Article{}, ErrArticleNotFound
}

// DeleteArticle removes an article. Deletion is hard: no tombstones.
func (c *Controller) DeleteArticle(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return ErrNotAdmin
	}

	for i := range c.articles {
		if c.articles[i].ID != id {
			continue
		}
		c.articles = append(c.articles[:i], c.articles[i+1:]...)
		if c.nav.SelectedArticleID == id {
			c.nav = Navigation{}
		}
		c.articlesChanged(ctx)
		return nil
	}
	return ErrArticleNotFound
}

// CreateCategory appends a new category. Name uniqueness is not enforced.
func (c *Controller) CreateCategory(ctx context.Context, name, icon string) (models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return models.Category{}, ErrNotAdmin
	}

	category := models.Category{ID: c.newID(), Name: name, Icon: icon}
	c.categories = append(c.categories, category)
	c.categoriesChanged(ctx)
	return category, nil
}

// UpdateCategory renames a category or changes its icon. Articles keep
// referencing the old name — renames do not cascade.
func (c *Controller) UpdateCategory(ctx context.Context, id, name, icon string) (models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return models.Category{}, ErrNotAdmin
	}

	for i := range c.categories {
		if c.categories[i].ID != id {
			continue
		}
		c.categories[i].Name = name
		c.categories[i].Icon = icon
		updated := c.categories[i]
		c.categoriesChanged(ctx)
		return updated, nil
	}
	return models.Category{}, ErrCategoryNotFound
}

// DeleteCategory removes a category, refusing while any resident article
// still matches its name by value.
func (c *Controller) DeleteCategory(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.user.IsAdmin() {
		return ErrNotAdmin
	}

	for i := range c.categories {
		if c.categories[i].ID != id {
			continue
		}
		name := c.categories[i].Name
		for _, a := range c.articles {
			if a.Category == name {
				return ErrCategoryInUse
			}
		}
		c.categories = append(c.categories[:i], c.categories[i+1:]...)
		c.categoriesChanged(ctx)
		return nil
	}
	return ErrCategoryNotFound
}

// articlesChanged persists articles and enqueues a snapshot push.
// Callers hold c.mu.
func (c *Controller) articlesChanged(ctx context.Context) {
	c.store.SaveArticles(ctx, c.articles)
	c.enqueueSnapshot()
}

// categoriesChanged persists categories and enqueues a snapshot push.
// Callers hold c.mu.
func (c *Controller) categoriesChanged(ctx context.Context) {
	c.store.SaveCategories(ctx, c.categories)
	c.enqueueSnapshot()
}

// enqueueSnapshot hands copies of both collections to the sink. No push
// happens while either collection is empty — a half-loaded state must
// never overwrite the remote snapshot. Callers hold c.mu.
func (c *Controller) enqueueSnapshot() {
	if c.sink == nil || len(c.articles) == 0 || len(c.categories) == 0 {
		return
	}
	articles := make([]models.Article, len(c.articles))
	copy(articles, c.articles)
	categories := make([]models.Category, len(c.categories))
	copy(categories, c.categories)
	c.sink.Push(articles, categories)
}
