// Package handlers implements the backend HTTP surface: file upload,
// snapshot write/read, and their JSON responses.
package handlers

import (
	"encoding/json"
	"net/http"

	"wikibase/internal/cache"
	"wikibase/internal/metrics"
	"wikibase/internal/store"
)

// API bundles the handler dependencies.
type API struct {
	uploadsDir string
	dataFile   string
	baseURL    string

	mediaStore  *store.MediaStore
	snapshotLog *store.SnapshotLogStore
	artifacts   *cache.ArtifactCache // nil disables caching
	collector   *metrics.Collector
}

// NewAPI creates the handler group. artifacts may be nil.
func NewAPI(uploadsDir, dataFile, baseURL string, mediaStore *store.MediaStore, snapshotLog *store.SnapshotLogStore, artifacts *cache.ArtifactCache, collector *metrics.Collector) *API {
	return &API{
		uploadsDir:  uploadsDir,
		dataFile:    dataFile,
		baseURL:     baseURL,
		mediaStore:  mediaStore,
		snapshotLog: snapshotLog,
		artifacts:   artifacts,
		collector:   collector,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the {success:false, error} shape every endpoint uses
// for failures.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
