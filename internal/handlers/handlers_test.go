// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides shared test infrastructure: an API wired to
// temp directories and an in-memory SQLite database.
package handlers

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"

	"wikibase/internal/database"
	"wikibase/internal/metrics"
	"wikibase/internal/store"
)

// testAPI builds an API with temp uploads/data paths and a migrated
// in-memory database. The artifact cache is disabled (nil).
func testAPI(t *testing.T) (*API, *sql.DB, string, string) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	uploadsDir := t.TempDir()
	dataFile := filepath.Join(t.TempDir(), "mockData.ts")

	collector := metrics.NewCollector(prometheus.NewRegistry())
	api := NewAPI(uploadsDir, dataFile, "http://localhost:3001",
		store.NewMediaStore(db), store.NewSnapshotLogStore(db), nil, collector)

	return api, db, uploadsDir, dataFile
}

// multipartFile builds a multipart body with a single "file" part
// carrying the given declared content type.
func multipartFile(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}
