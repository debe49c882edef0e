// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// ToRow projects the dimension row into a table row under the dimension's own
// column names (e.g. comm_type_id/comm_type, audio_id/audio_url).
func (d *DimensionRow) ToRow(idColumn, valueColumn string) Row {
	return Row{
		idColumn:    d.ID,
		valueColumn: d.Value,
	}
}

// ToRow projects the calendar day into a dim_calendar table row. The date is
// rendered as its textual join key.
func (c *CalendarDay) ToRow() Row {
	return Row{
		"calendar_id":   c.ID,
		"calendar_date": c.DateKey(),
		"year":          c.Year,
		"month":         c.Month,
		"day":           c.Day,
		"day_of_week":   c.DayOfWeek,
		"day_name":      c.DayName,
		"month_name":    c.MonthName,
	}
}

// ToRow projects the user into a dim_user table row.
func (u *User) ToRow() Row {
	return Row{
		"user_id":     u.UserID,
		"name":        u.Name,
		"email":       u.Email,
		"location":    u.Location,
		"displayName": u.DisplayName,
		"phoneNumber": u.PhoneNumber,
	}
}

// ToRow projects the bridge row into a bridge_comm_user table row.
func (b *BridgeRow) ToRow() Row {
	return Row{
		"comm_id":       b.CommID,
		"user_id":       b.UserID,
		"isAttendee":    b.IsAttendee,
		"isParticipant": b.IsParticipant,
		"isSpeaker":     b.IsSpeaker,
		"isOrganiser":   b.IsOrganiser,
	}
}
