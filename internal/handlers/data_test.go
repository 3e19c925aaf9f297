// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

const saveBody = `{
	"categories": [
		{"id": "1", "name": "Informatique", "icon": "💻"}
	],
	"articles": [
		{
			"id": "1",
			"title": "Guide VPN",
			"description": "Connexion au VPN",
			"category": "Informatique",
			"content": "<p>Étapes</p>",
			"author": "Admin",
			"createdAt": "2026-02-03T08:00:00.000Z",
			"updatedAt": "2026-02-03T08:00:00.000Z"
		}
	]
}`

func TestSaveData(t *testing.T) {
	t.Run("writes the artifact", func(t *testing.T) {
		api, db, _, dataFile := testAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/api/save-data", strings.NewReader(saveBody))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		api.SaveData(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp struct {
			Success bool `json:"success"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success {
			t.Error("expected success=true")
		}

		content, err := os.ReadFile(dataFile)
		if err != nil {
			t.Fatalf("read artifact: %v", err)
		}
		text := string(content)

		if !strings.Contains(text, "import { Article, Category } from '../types';") {
			t.Error("artifact missing types import")
		}
		if !strings.Contains(text, `"Guide VPN"`) {
			t.Error("artifact missing article title")
		}
		if !strings.Contains(text, `new Date("2026-02-03T08:00:00.000Z")`) {
			t.Error("artifact missing Date literal for createdAt")
		}

		// Every write is recorded in the audit log.
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM snapshot_log`).Scan(&count); err != nil {
			t.Fatalf("count snapshot_log: %v", err)
		}
		if count != 1 {
			t.Errorf("snapshot_log rows: got %d, want 1", count)
		}
	})

	t.Run("overwrites previous snapshot", func(t *testing.T) {
		api, _, _, dataFile := testAPI(t)

		for _, title := range []string{"First", "Second"} {
			body := strings.Replace(saveBody, "Guide VPN", title, 1)
			req := httptest.NewRequest(http.MethodPost, "/api/save-data", strings.NewReader(body))
			rec := httptest.NewRecorder()
			api.SaveData(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
			}
		}

		content, err := os.ReadFile(dataFile)
		if err != nil {
			t.Fatalf("read artifact: %v", err)
		}
		if strings.Contains(string(content), "First") {
			t.Error("artifact still contains the overwritten snapshot")
		}
		if !strings.Contains(string(content), "Second") {
			t.Error("artifact missing the latest snapshot")
		}
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		api, _, _, dataFile := testAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/api/save-data", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		api.SaveData(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if _, err := os.Stat(dataFile); !os.IsNotExist(err) {
			t.Error("artifact must not be written on a bad payload")
		}
	})
}

func TestGetData(t *testing.T) {
	t.Run("returns the artifact text", func(t *testing.T) {
		api, _, _, dataFile := testAPI(t)

		if err := os.WriteFile(dataFile, []byte("export const categories = [];"), 0o644); err != nil {
			t.Fatalf("seed artifact: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/get-data", nil)
		rec := httptest.NewRecorder()

		api.GetData(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
		}

		var resp struct {
			Success bool   `json:"success"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success {
			t.Error("expected success=true")
		}
		if resp.Content != "export const categories = [];" {
			t.Errorf("content: got %q", resp.Content)
		}
	})

	t.Run("fails when the artifact is missing", func(t *testing.T) {
		api, _, _, _ := testAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/api/get-data", nil)
		rec := httptest.NewRecorder()

		api.GetData(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
		}
	})

	t.Run("save then get round trip", func(t *testing.T) {
		api, _, _, _ := testAPI(t)

		saveReq := httptest.NewRequest(http.MethodPost, "/api/save-data", strings.NewReader(saveBody))
		saveRec := httptest.NewRecorder()
		api.SaveData(saveRec, saveReq)
		if saveRec.Code != http.StatusOK {
			t.Fatalf("save status: got %d, want %d", saveRec.Code, http.StatusOK)
		}

		getReq := httptest.NewRequest(http.MethodGet, "/api/get-data", nil)
		getRec := httptest.NewRecorder()
		api.GetData(getRec, getReq)
		if getRec.Code != http.StatusOK {
			t.Fatalf("get status: got %d, want %d", getRec.Code, http.StatusOK)
		}

		var resp struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(getRec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !strings.Contains(resp.Content, "Guide VPN") {
			t.Error("round-tripped content missing the saved article")
		}
	})
}
