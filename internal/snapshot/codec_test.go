package snapshot

import (
	"strings"
	"testing"
	"time"

	"wikibase/internal/models"
)

func TestGenerate(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	categories := []models.Category{
		{ID: "c1", Name: "Ops", Icon: "🔧"},
	}
	articles := []models.Article{
		{
			ID: "a1", Title: "Runbook", Description: "On-call guide",
			Category: "Ops", Content: "<p>steps</p>", Author: "Marie",
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "a2", Title: "Postmortems", Description: "Template",
			Category: "Ops", Content: "<p>tmpl</p>", Author: "Karim",
			CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(2 * time.Hour),
		},
	}

	out, err := Generate(categories, articles)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	src := string(out)

	t.Run("module shape", func(t *testing.T) {
		if !strings.HasPrefix(src, "import { Article, Category } from '../types';") {
			t.Errorf("missing import header:\n%s", src[:80])
		}
		if !strings.Contains(src, "export const categories: Category[] = ") {
			t.Error("missing categories export")
		}
		if !strings.Contains(src, "export const articles: Article[] = ") {
			t.Error("missing articles export")
		}
	})

	t.Run("collections embedded", func(t *testing.T) {
		for _, want := range []string{`"name": "Ops"`, `"icon": "🔧"`, `"title": "Runbook"`, `"title": "Postmortems"`} {
			if !strings.Contains(src, want) {
				t.Errorf("output missing %s", want)
			}
		}
	})

	t.Run("timestamps become Date literals", func(t *testing.T) {
		if !strings.Contains(src, `"createdAt": new Date("2026-01-15T10:30:00.000Z")`) {
			t.Error("createdAt not rewritten to Date literal")
		}
		if !strings.Contains(src, `"updatedAt": new Date("2026-01-15T12:30:00.000Z")`) {
			t.Error("updatedAt not rewritten to Date literal")
		}
		if strings.Contains(src, `"createdAt": "2026`) {
			t.Error("raw createdAt string survived the rewrite")
		}
	})

	t.Run("non-UTC input normalized", func(t *testing.T) {
		paris := time.FixedZone("CET", 3600)
		out, err := Generate(nil, []models.Article{{
			ID: "a3", Title: "TZ", CreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, paris),
			UpdatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, paris),
		}})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.Contains(string(out), `new Date("2026-06-01T11:00:00.000Z")`) {
			t.Error("timestamp not normalized to UTC")
		}
	})

	t.Run("empty collections stay arrays", func(t *testing.T) {
		out, err := Generate(nil, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.Contains(string(out), "export const categories: Category[] = [];") {
			t.Errorf("empty categories not rendered as []:\n%s", out)
		}
		if !strings.Contains(string(out), "export const articles: Article[] = [];") {
			t.Errorf("empty articles not rendered as []:\n%s", out)
		}
	})
}
