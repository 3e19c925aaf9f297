// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package snapshot generates the data-definition artifact the backend
// keeps on disk: a TypeScript module embedding the full categories and
// articles collections. Categories are embedded verbatim as JSON;
// article timestamps are rewritten into reconstructible `new Date(...)`
// literals so the artifact stays a valid source file for the front-end.
package snapshot

import (
	"encoding/json"
	"fmt"
	"regexp"

	"wikibase/internal/models"
)

// header and footers of the generated module.
const (
	artifactImport = "import { Article, Category } from '../types';\n\n"
)

var (
	createdAtLiteral = regexp.MustCompile(`"createdAt": "([^"]+)"`)
	updatedAtLiteral = regexp.MustCompile(`"updatedAt": "([^"]+)"`)
)

// artifactArticle is the serialized article shape inside the artifact,
// with timestamps in the canonical textual encoding.
type artifactArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Generate renders the complete artifact for the given collections.
// The output fully replaces any previous artifact contents.
func Generate(categories []models.Category, articles []models.Article) ([]byte, error) {
	if categories == nil {
		categories = []models.Category{}
	}

	serialized := make([]artifactArticle, 0, len(articles))
	for _, a := range articles {
		serialized = append(serialized, artifactArticle{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Category:    a.Category,
			Content:     a.Content,
			Author:      a.Author,
			CreatedAt:   models.FormatTime(a.CreatedAt),
			UpdatedAt:   models.FormatTime(a.UpdatedAt),
		})
	}

	categoriesJSON, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}
	articlesJSON, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal articles: %w", err)
	}

	// Rewrite timestamp strings into Date constructor literals.
	articlesSrc := createdAtLiteral.ReplaceAllString(string(articlesJSON), `"createdAt": new Date("$1")`)
	articlesSrc = updatedAtLiteral.ReplaceAllString(articlesSrc, `"updatedAt": new Date("$1")`)

	out := artifactImport +
		"export const categories: Category[] = " + string(categoriesJSON) + ";\n\n" +
		"export const articles: Article[] = " + articlesSrc + ";\n"
	return []byte(out), nil
}
