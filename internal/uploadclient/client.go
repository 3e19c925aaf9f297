// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package uploadclient sends a single binary file to the backend upload
// endpoint and returns the publicly retrievable URL of the stored copy.
package uploadclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// MaxUploadSize is the fixed upload ceiling (50 MB), mirrored server-side.
const MaxUploadSize = 50 << 20

// DefaultTimeout bounds a single upload. Large files over slow links are
// still a single attempt.
const DefaultTimeout = 2 * time.Minute

// Validation errors returned before any network call is made.
var (
	ErrUnsupportedType = errors.New("only image and video files are allowed")
	ErrTooLarge        = errors.New("file exceeds the 50 MB upload limit")
)

// Result echoes the metadata the backend stored for the upload.
type Result struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

// Client talks to the upload endpoint of a WikiBase backend.
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

// Upload validates the declared media type and size, then sends the file
// as a single multipart part named "file". A rejected file never reaches
// the network; a failed upload leaves no client state behind.
func (c *Client) Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*Result, error) {
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return nil, ErrUnsupportedType
	}
	if size > MaxUploadSize {
		return nil, ErrTooLarge
	}

	// Stream the multipart body through a pipe so the file is never
	// buffered whole in memory.
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Result
	}
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if !payload.Success {
		if payload.Error != "" {
			return nil, fmt.Errorf("upload rejected: %s", payload.Error)
		}
		return nil, fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}
	return &payload.Result, nil
}

// decodeJSON decodes a JSON body, tolerating trailing noise.
func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
