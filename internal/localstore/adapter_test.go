package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"wikibase/internal/models"
)

// failKV simulates a broken backing store (quota exhausted, connection
// lost). Every operation fails.
type failKV struct{}

func (failKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("boom")
}
func (failKV) Set(context.Context, string, []byte) error { return errors.New("boom") }
func (failKV) Clear(context.Context, string) error       { return errors.New("boom") }

func testArticles() []models.Article {
	created := time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)
	return []models.Article{
		{
			ID:          "a1",
			Title:       "Onboarding",
			Description: "First steps",
			Category:    "HR",
			Content:     "<p>Welcome</p>",
			Author:      "Marie",
			CreatedAt:   created,
			UpdatedAt:   created.Add(48 * time.Hour),
		},
		{
			ID:          "a2",
			Title:       "VPN setup",
			Description: "Remote access",
			Category:    "IT",
			Content:     "<h2>Steps</h2>",
			Author:      "Karim",
			CreatedAt:   created.Add(time.Minute),
			UpdatedAt:   created.Add(time.Minute),
		},
	}
}

func TestAdapterArticlesRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemKV())

	want := testArticles()
	a.SaveArticles(ctx, want)

	got, ok := a.LoadArticles(ctx)
	if !ok {
		t.Fatal("expected articles to be present after save")
	}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID ||
			got[i].Title != want[i].Title ||
			got[i].Description != want[i].Description ||
			got[i].Category != want[i].Category ||
			got[i].Content != want[i].Content ||
			got[i].Author != want[i].Author {
			t.Errorf("article %d: got %+v, want %+v", i, got[i], want[i])
		}
		// Timestamps must compare as time-points, not strings.
		if !got[i].CreatedAt.Equal(want[i].CreatedAt) {
			t.Errorf("article %d createdAt: got %v, want %v", i, got[i].CreatedAt, want[i].CreatedAt)
		}
		if !got[i].UpdatedAt.Equal(want[i].UpdatedAt) {
			t.Errorf("article %d updatedAt: got %v, want %v", i, got[i].UpdatedAt, want[i].UpdatedAt)
		}
	}
}

func TestAdapterCategoriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemKV())

	want := []models.Category{
		{ID: "c1", Name: "HR", Icon: "📋"},
		{ID: "c2", Name: "IT", Icon: "💻"},
	}
	a.SaveCategories(ctx, want)

	got, ok := a.LoadCategories(ctx)
	if !ok {
		t.Fatal("expected categories to be present after save")
	}
	if len(got) != 2 {
		t.Fatalf("length: got %d, want 2", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAdapterCurrentUser(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemKV())

	t.Run("absent before save", func(t *testing.T) {
		if _, ok := a.LoadCurrentUser(ctx); ok {
			t.Error("expected no user before save")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := &models.User{ID: "u1", Name: "Marie", Email: "marie@example.com", Role: models.RoleAdmin, Avatar: "👩"}
		a.SaveCurrentUser(ctx, want)

		got, ok := a.LoadCurrentUser(ctx)
		if !ok {
			t.Fatal("expected user after save")
		}
		if *got != *want {
			t.Errorf("user: got %+v, want %+v", got, want)
		}
	})

	t.Run("clear removes session", func(t *testing.T) {
		a.ClearCurrentUser(ctx)
		if _, ok := a.LoadCurrentUser(ctx); ok {
			t.Error("expected no user after clear")
		}
	})
}

func TestAdapterAbsentKeys(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemKV())

	if _, ok := a.LoadArticles(ctx); ok {
		t.Error("expected absent articles")
	}
	if _, ok := a.LoadCategories(ctx); ok {
		t.Error("expected absent categories")
	}
}

// Storage failures must never propagate: saves are no-ops, loads report
// absence.
func TestAdapterSwallowsStorageErrors(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(failKV{})

	a.SaveArticles(ctx, testArticles()) // must not panic or error
	a.SaveCurrentUser(ctx, &models.User{ID: "u1"})
	a.ClearCurrentUser(ctx)

	if _, ok := a.LoadArticles(ctx); ok {
		t.Error("expected absence on read failure")
	}
	if _, ok := a.LoadCurrentUser(ctx); ok {
		t.Error("expected absent user on read failure")
	}
}

func TestAdapterCorruptPayloadTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemKV()
	a := NewAdapter(kv)

	kv.Set(ctx, KeyArticles, []byte("{not json"))
	if _, ok := a.LoadArticles(ctx); ok {
		t.Error("expected corrupt payload to read as absent")
	}
}
