// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

// FactMappings carries every dimension's natural-key resolution map into the
// fact assembly pass.
type FactMappings struct {
	CommType   models.DimensionMapping
	Subject    models.DimensionMapping
	Calendar   models.DimensionMapping
	Audio      models.DimensionMapping
	Video      models.DimensionMapping
	Transcript models.DimensionMapping
}

// factSources maps each straight-through fact column to the source field it
// is copied from. Foreign-key columns are always emitted since every
// dimension exists (via fallback) even when its source field does not.
var factSources = map[string]string{
	"comm_id":      "comm_id",
	"source_id":    "source_id",
	"ingested_at":  "created_at",
	"processed_at": "updated_at",
	"is_processed": "is_processed",
	"raw_title":    "event_title",
	"raw_duration": "duration_seconds",
}

// FactAssembler projects normalized event rows into the fact table, resolving
// natural keys to dimension surrogate keys.
type FactAssembler struct{}

// NewFactAssembler creates a new FactAssembler.
func NewFactAssembler() *FactAssembler {
	return &FactAssembler{}
}

// Assemble builds fact_communication. Unresolved or missing foreign keys
// resolve to the sentinel 0 and the row is kept; unresolved counts are logged
// per dimension so data-quality issues stay visible. Straight-through columns
// whose source field is absent from this run's input are omitted from the
// table's column list.
func (a *FactAssembler) Assemble(ctx context.Context, rows []models.Row, mappings FactMappings) *models.Table {
	table := &models.Table{
		Name:    constants.TableFactCommunication,
		Columns: a.presentColumns(rows),
		Rows:    make([]models.Row, 0, len(rows)),
	}

	unresolved := map[string]int{}
	resolve := func(mapping models.DimensionMapping, key, dimension string) int64 {
		if key == "" {
			return constants.UnmatchedKey
		}
		if id, ok := mapping[key]; ok {
			return id
		}
		unresolved[dimension]++
		return constants.UnmatchedKey
	}

	for _, row := range rows {
		fact := models.Row{
			"comm_id":      row["comm_id"],
			"comm_type_id": resolve(mappings.CommType, naturalKey(row, "event_type"), constants.TableDimCommType),
			"subject_id":   resolve(mappings.Subject, naturalKey(row, "event_title"), constants.TableDimSubject),
			"calendar_id":  resolve(mappings.Calendar, calendarKey(row), constants.TableDimCalendar),
			"audio_id":     resolve(mappings.Audio, naturalKey(row, "audio_url"), constants.TableDimAudio),
			"video_id":     resolve(mappings.Video, naturalKey(row, "video_url"), constants.TableDimVideo),
			"transcript_id": resolve(mappings.Transcript, naturalKey(row, "transcript_url"),
				constants.TableDimTranscript),
			"datetime_id": startTimeEpoch(row),
		}

		if v, ok := row.Get("source_id"); ok {
			fact["source_id"] = v
		}
		if ts, ok := row["created_at"].(time.Time); ok {
			fact["ingested_at"] = ts
		}
		if ts, ok := row["updated_at"].(time.Time); ok {
			fact["processed_at"] = ts
		}
		if _, ok := row["is_processed"]; ok {
			fact["is_processed"] = boolFlag(row["is_processed"])
		}
		if v, ok := row.Get("event_title"); ok {
			fact["raw_title"] = v
		}
		if v, ok := row.Get("duration_seconds"); ok {
			fact["raw_duration"] = v
		}

		table.Rows = append(table.Rows, fact)
	}

	for dimension, count := range unresolved {
		slog.WarnContext(ctx, "fact rows with unresolved foreign keys",
			"dimension", dimension,
			"unresolved_count", count,
		)
	}

	slog.DebugContext(ctx, "assembled fact table", "row_count", len(table.Rows))

	return table
}

// presentColumns filters the canonical column order down to the columns whose
// source field appears in this run's input.
func (a *FactAssembler) presentColumns(rows []models.Row) []string {
	columns := make([]string, 0, len(constants.FactColumnOrder))
	for _, column := range constants.FactColumnOrder {
		source, straightThrough := factSources[column]
		if straightThrough && !fieldPresent(rows, source) {
			continue
		}
		columns = append(columns, column)
	}
	return columns
}

// naturalKey reads a row's natural-key value for dimension resolution.
func naturalKey(row models.Row, field string) string {
	v, ok := row.Get(field)
	if !ok {
		return ""
	}
	return asString(v)
}

// calendarKey formats the row's start date as the calendar join key.
func calendarKey(row models.Row) string {
	ts, ok := rowStartTime(row)
	if !ok {
		return ""
	}
	return ts.Format(models.CalendarDateKey)
}

// startTimeEpoch converts the start time to whole seconds since the Unix
// epoch, 0 when the start time is missing or unparseable.
func startTimeEpoch(row models.Row) int64 {
	ts, ok := rowStartTime(row)
	if !ok {
		return 0
	}
	return ts.Unix()
}

// boolFlag coerces a processing-flag value to 0/1.
func boolFlag(v any) int {
	switch b := v.(type) {
	case bool:
		if b {
			return 1
		}
	case int:
		if b != 0 {
			return 1
		}
	case int64:
		if b != 0 {
			return 1
		}
	case float64:
		if b != 0 {
			return 1
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "t", "1", "yes", "y":
			return 1
		}
	}
	return 0
}
