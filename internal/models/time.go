// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical textual encoding for timestamps crossing
// process boundaries: UTC ISO-8601 with millisecond precision, matching
// what the front-end's Date.toISOString() produces.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders a timestamp in the canonical encoding.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses any RFC 3339 timestamp, including the canonical
// millisecond form.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
