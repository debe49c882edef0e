// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

// CalendarBuilder derives the calendar dimension from the distinct dates of
// the normalized start_time field.
type CalendarBuilder struct{}

// NewCalendarBuilder creates a new CalendarBuilder.
func NewCalendarBuilder() *CalendarBuilder {
	return &CalendarBuilder{}
}

// Build collects the distinct normalized dates in first-seen order and
// decorates each with its calendar attributes. The returned mapping is keyed
// by the textual YYYY-MM-DD join key.
func (b *CalendarBuilder) Build(ctx context.Context, rows []models.Row) ([]models.CalendarDay, models.DimensionMapping) {
	var dimension []models.CalendarDay
	mapping := make(models.DimensionMapping)

	for _, row := range rows {
		ts, ok := rowStartTime(row)
		if !ok {
			continue
		}
		date := normalizeDate(ts)
		key := date.Format(models.CalendarDateKey)
		if _, exists := mapping[key]; exists {
			continue
		}

		id := int64(len(dimension) + 1)
		dimension = append(dimension, models.CalendarDay{
			ID:        id,
			Date:      date,
			Year:      date.Year(),
			Month:     int(date.Month()),
			Day:       date.Day(),
			DayOfWeek: mondayIndexedWeekday(date.Weekday()),
			DayName:   date.Weekday().String(),
			MonthName: date.Month().String(),
		})
		mapping[key] = id
	}

	slog.DebugContext(ctx, "built calendar dimension", "table", constants.TableDimCalendar, "row_count", len(dimension))

	return dimension, mapping
}

// Table projects built calendar days into the dim_calendar table.
func (b *CalendarBuilder) Table(dimension []models.CalendarDay) *models.Table {
	table := &models.Table{
		Name:    constants.TableDimCalendar,
		Columns: constants.DimCalendarColumns,
		Rows:    make([]models.Row, 0, len(dimension)),
	}
	for i := range dimension {
		table.Rows = append(table.Rows, dimension[i].ToRow())
	}
	return table
}

// rowStartTime returns the row's normalized start_time, if any.
func rowStartTime(row models.Row) (time.Time, bool) {
	ts, ok := row["start_time"].(time.Time)
	return ts, ok
}

// normalizeDate strips the time-of-day component.
func normalizeDate(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// mondayIndexedWeekday converts Go's Sunday-first weekday to the 0=Monday
// convention used by the calendar dimension.
func mondayIndexedWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
