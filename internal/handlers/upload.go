// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wikibase/internal/models"
)

// maxUploadSize is the maximum allowed file upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedUpload reports whether the declared media type is accepted.
// Only images and videos may be uploaded; the declared type is trusted,
// matching the original contract.
func allowedUpload(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// uploadFilename builds a collision-resistant name from a timestamp, a
// random suffix and the original extension.
func uploadFilename(originalName string) string {
	return fmt.Sprintf("file-%d-%d%s",
		time.Now().UnixMilli(),
		rand.IntN(1_000_000_000),
		filepath.Ext(originalName),
	)
}

// Upload handles POST /api/upload: a single multipart part named "file".
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit request body to maxUploadSize plus some overhead for the
	// multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		a.collector.RecordUploadRejected("too_large")
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds the 50 MB upload limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.collector.RecordUploadRejected("missing_file")
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		a.collector.RecordUploadRejected("too_large")
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds the 50 MB upload limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedUpload(contentType) {
		a.collector.RecordUploadRejected("bad_type")
		writeError(w, http.StatusBadRequest, "only image and video files are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadsDir, 0o755); err != nil {
		slog.Error("create uploads dir failed", "dir", a.uploadsDir, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	filename := uploadFilename(header.Filename)
	dst, err := os.Create(filepath.Join(a.uploadsDir, filename))
	if err != nil {
		slog.Error("create upload file failed", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		slog.Error("write upload failed", "filename", filename, "error", err)
		os.Remove(dst.Name())
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	// Metadata row is best-effort: the file is already durable on disk.
	if _, err := a.mediaStore.Create(&models.Media{
		Filename:     filename,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    written,
	}); err != nil {
		slog.Warn("media metadata insert failed", "filename", filename, "error", err)
	}

	a.collector.RecordUploadAccepted()
	slog.Info("file uploaded", "filename", filename, "size", written, "type", contentType)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"url":          a.baseURL + "/uploads/" + filename,
		"filename":     filename,
		"originalName": header.Filename,
		"mimetype":     contentType,
		"size":         written,
	})
}
