// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"wikibase/internal/models"
	"wikibase/internal/snapshot"
)

// savePayload is the snapshot pushed by the client: the full collections,
// timestamps as ISO strings (decoded into time.Time here).
type savePayload struct {
	Categories []models.Category `json:"categories"`
	Articles   []models.Article  `json:"articles"`
}

// SaveData handles POST /api/save-data: it regenerates the
// data-definition artifact from the pushed collections and fully
// overwrites the previous file. Whichever request's write lands last
// wins at the file level.
func (a *API) SaveData(w http.ResponseWriter, r *http.Request) {
	var payload savePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot payload: "+err.Error())
		return
	}

	content, err := snapshot.Generate(payload.Categories, payload.Articles)
	if err != nil {
		a.collector.RecordSnapshotFailure()
		slog.Error("artifact generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if dir := filepath.Dir(a.dataFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			a.collector.RecordSnapshotFailure()
			slog.Error("artifact dir create failed", "dir", dir, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if err := os.WriteFile(a.dataFile, content, 0o644); err != nil {
		a.collector.RecordSnapshotFailure()
		slog.Error("artifact write failed", "file", a.dataFile, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.snapshotLog.Log(len(payload.Articles), len(payload.Categories), int64(len(content)))
	a.artifacts.Invalidate(r.Context())
	a.collector.RecordSnapshotWrite()

	slog.Info("snapshot written",
		"file", a.dataFile,
		"articles", len(payload.Articles),
		"categories", len(payload.Categories),
		"bytes", len(content),
	)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "data saved"})
}

// GetData handles GET /api/get-data: it returns the raw artifact text.
// Clients also use it as a liveness probe.
func (a *API) GetData(w http.ResponseWriter, r *http.Request) {
	if content, ok := a.artifacts.Get(r.Context()); ok {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": string(content)})
		return
	}

	content, err := os.ReadFile(a.dataFile)
	if err != nil {
		slog.Error("artifact read failed", "file", a.dataFile, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.artifacts.Set(r.Context(), content)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": string(content)})
}
