// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

// DimensionSpec describes one simple single-attribute dimension: where its
// natural-key values come from and what its output columns are called.
// Fallback holds the two placeholder rows substituted when the source field
// is absent from the input entirely, so downstream joins stay well-defined.
type DimensionSpec struct {
	TableName   string
	SourceField string
	IDColumn    string
	ValueColumn string
	Fallback    [2]string
}

// The five simple dimensions of the star schema.
var (
	CommTypeDimension = DimensionSpec{
		TableName:   constants.TableDimCommType,
		SourceField: "event_type",
		IDColumn:    "comm_type_id",
		ValueColumn: "comm_type",
		Fallback:    [2]string{"Meeting", "Call"},
	}
	SubjectDimension = DimensionSpec{
		TableName:   constants.TableDimSubject,
		SourceField: "event_title",
		IDColumn:    "subject_id",
		ValueColumn: "subject",
		Fallback:    [2]string{"Project Review", "Team Sync"},
	}
	AudioDimension = DimensionSpec{
		TableName:   constants.TableDimAudio,
		SourceField: "audio_url",
		IDColumn:    "audio_id",
		ValueColumn: "audio_url",
		Fallback:    [2]string{"http://dummy.com/audio1.mp3", "http://dummy.com/audio2.mp3"},
	}
	VideoDimension = DimensionSpec{
		TableName:   constants.TableDimVideo,
		SourceField: "video_url",
		IDColumn:    "video_id",
		ValueColumn: "video_url",
		Fallback:    [2]string{"http://dummy.com/video1.mp4", "http://dummy.com/video2.mp4"},
	}
	TranscriptDimension = DimensionSpec{
		TableName:   constants.TableDimTranscript,
		SourceField: "transcript_url",
		IDColumn:    "transcript_id",
		ValueColumn: "transcript_url",
		Fallback:    [2]string{"http://dummy.com/trans1.txt", "http://dummy.com/trans2.txt"},
	}
)

// DimensionBuilder deduplicates a source field's values into a dimension
// table with first-seen surrogate keys.
type DimensionBuilder struct{}

// NewDimensionBuilder creates a new DimensionBuilder.
func NewDimensionBuilder() *DimensionBuilder {
	return &DimensionBuilder{}
}

// Build extracts the dimension's source field from the rows, drops missing values,
// deduplicates, and assigns surrogate keys starting at 1 in first-seen order.
// The returned mapping resolves natural-key values to surrogate keys for the
// fact assembler. When the source field is absent from every row, the fixed
// two-row fallback dimension is returned instead of failing.
func (b *DimensionBuilder) Build(ctx context.Context, rows []models.Row, spec DimensionSpec) ([]models.DimensionRow, models.DimensionMapping) {
	if !fieldPresent(rows, spec.SourceField) {
		slog.WarnContext(ctx, "source field not found, creating fallback dimension",
			"field", spec.SourceField,
			"table", spec.TableName,
		)
		return b.fallback(spec)
	}

	var dimension []models.DimensionRow
	mapping := make(models.DimensionMapping)

	for _, row := range rows {
		v, ok := row.Get(spec.SourceField)
		if !ok {
			continue
		}
		value := asString(v)
		if _, exists := mapping[value]; exists {
			continue
		}
		id := int64(len(dimension) + 1)
		dimension = append(dimension, models.DimensionRow{ID: id, Value: value})
		mapping[value] = id
	}

	slog.DebugContext(ctx, "built dimension", "table", spec.TableName, "row_count", len(dimension))

	return dimension, mapping
}

// fallback returns the dimension's fixed placeholder rows.
func (b *DimensionBuilder) fallback(spec DimensionSpec) ([]models.DimensionRow, models.DimensionMapping) {
	dimension := []models.DimensionRow{
		{ID: 1, Value: spec.Fallback[0]},
		{ID: 2, Value: spec.Fallback[1]},
	}
	mapping := models.DimensionMapping{
		spec.Fallback[0]: 1,
		spec.Fallback[1]: 2,
	}
	return dimension, mapping
}

// Table projects built dimension rows into the output table.
func (b *DimensionBuilder) Table(spec DimensionSpec, dimension []models.DimensionRow) *models.Table {
	table := &models.Table{
		Name:    spec.TableName,
		Columns: []string{spec.IDColumn, spec.ValueColumn},
		Rows:    make([]models.Row, 0, len(dimension)),
	}
	for i := range dimension {
		table.Rows = append(table.Rows, dimension[i].ToRow(spec.IDColumn, spec.ValueColumn))
	}
	return table
}

// fieldPresent reports whether any row carries the field at all. A field that
// exists but is empty on some rows still counts as present.
func fieldPresent(rows []models.Row, field string) bool {
	for _, row := range rows {
		if _, ok := row[field]; ok {
			return true
		}
	}
	return false
}
