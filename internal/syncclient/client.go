// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package syncclient pushes full article/category snapshots to the
// backend, which rewrites its on-disk data-definition artifact. One call,
// one attempt: retries are always a new user-initiated action.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wikibase/internal/models"
)

// DefaultTimeout bounds a single push or availability probe.
const DefaultTimeout = 10 * time.Second

// Client talks to the snapshot endpoints of a WikiBase backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the backend at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// wireArticle carries an article with timestamps in the canonical
// textual encoding.
type wireArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type pushRequest struct {
	Articles   []wireArticle     `json:"articles"`
	Categories []models.Category `json:"categories"`
}

type pushResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// PushSnapshot sends the full collections to /api/save-data. The backend
// replaces the entire artifact with a regenerated version. Returns nil
// only when the server reports success.
func (c *Client) PushSnapshot(ctx context.Context, articles []models.Article, categories []models.Category) error {
	req := pushRequest{
		Articles:   make([]wireArticle, 0, len(articles)),
		Categories: categories,
	}
	if req.Categories == nil {
		req.Categories = []models.Category{}
	}
	for _, a := range articles {
		req.Articles = append(req.Articles, wireArticle{
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

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/save-data", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	defer resp.Body.Close()

	var result pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	if !result.Success {
		if result.Error != "" {
			return fmt.Errorf("push rejected: %s", result.Error)
		}
		return fmt.Errorf("push rejected: status %d", resp.StatusCode)
	}
	return nil
}

// CheckAvailability issues a lightweight read against /api/get-data and
// reports whether the backend responded successfully. It is advisory
// only — callers use it to pick a log message, not to gate the push.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/get-data", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
