// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// DimensionRow is one row of a simple single-attribute dimension: a run-local
// surrogate key plus the natural-key value it stands for.
type DimensionRow struct {
	ID    int64
	Value string
}

// DimensionMapping resolves a natural-key value to its surrogate key.
// Lookups that miss resolve to the unmatched sentinel at fact-assembly time.
type DimensionMapping map[string]int64

// CalendarDay is one row of the calendar dimension, decorated with the
// calendar attributes derived from the date.
type CalendarDay struct {
	ID        int64
	Date      time.Time // normalized to midnight
	Year      int
	Month     int
	Day       int
	DayOfWeek int // 0 = Monday
	DayName   string
	MonthName string
}

// CalendarDateKey is the textual join key used to resolve fact rows into the
// calendar dimension. A deliberate simplification: the mapping joins on the
// formatted date, not on a numeric date key.
const CalendarDateKey = "2006-01-02"

// DateKey returns the calendar day's textual join key.
func (c *CalendarDay) DateKey() string {
	return c.Date.Format(CalendarDateKey)
}
