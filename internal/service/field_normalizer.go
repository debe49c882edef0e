// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
)

// timestampFields are the source fields coerced to time.Time during
// normalization.
var timestampFields = []string{"created_at", "updated_at", "start_time", "end_time"}

// timestampLayouts are tried in order when a timestamp arrives as text.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// FieldNormalizer standardizes raw export rows: field names are lowercased,
// trimmed and underscore-separated, the event_id field is renamed to comm_id,
// timestamp fields are coerced to time.Time, and duplicate comm_id rows
// collapse to their first occurrence.
type FieldNormalizer struct{}

// NewFieldNormalizer creates a new FieldNormalizer.
func NewFieldNormalizer() *FieldNormalizer {
	return &FieldNormalizer{}
}

// Normalize returns the cleaned row set. No row is ever dropped for a
// timestamp parse failure; the field is removed instead so downstream
// builders see it as missing.
func (n *FieldNormalizer) Normalize(ctx context.Context, rows []models.Row) []models.Row {
	normalized := make([]models.Row, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	duplicates := 0

	for _, raw := range rows {
		row := make(models.Row, len(raw))
		for field, value := range raw {
			row[normalizeFieldName(field)] = value
		}

		if v, ok := row["event_id"]; ok {
			row["comm_id"] = v
			delete(row, "event_id")
		}

		for _, field := range timestampFields {
			v, ok := row[field]
			if !ok {
				continue
			}
			ts, parsed := parseTimestamp(v)
			if parsed {
				row[field] = ts
			} else {
				delete(row, field)
			}
		}

		// Duplicate comm_id values keep the first occurrence.
		commID := asString(row["comm_id"])
		if seen[commID] {
			duplicates++
			continue
		}
		seen[commID] = true

		normalized = append(normalized, row)
	}

	if duplicates > 0 {
		slog.WarnContext(ctx, "duplicate comm_id values in raw data, keeping first occurrences",
			"duplicate_count", duplicates,
		)
	}

	slog.DebugContext(ctx, "normalized raw rows", "row_count", len(normalized))

	return normalized
}

// normalizeFieldName lowercases and trims a field name and replaces inner
// whitespace runs with single underscores.
func normalizeFieldName(name string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(parts, "_")
}

// parseTimestamp coerces a raw field value to a time.Time. Native time values
// pass through; text is tried against the known layouts.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// asString renders a raw field value as a natural-key string. Nil renders as
// the empty string.
func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
