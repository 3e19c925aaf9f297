// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"time"
)

// StatusRecorder receives per-request observations. Satisfied by
// metrics.Collector.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(d time.Duration)
}

// Metrics records status code and latency for every request.
func Metrics(rec StatusRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			rec.RecordHTTPStatus(wrapped.statusCode)
			rec.RecordRequestLatency(time.Since(start))
		})
	}
}
