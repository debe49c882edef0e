// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants contains shared constants for the communication ETL service.
package constants

// Output table names of the star schema.
const (
	TableDimCommType       = "dim_comm_type"
	TableDimSubject        = "dim_subject"
	TableDimUser           = "dim_user"
	TableDimCalendar       = "dim_calendar"
	TableDimAudio          = "dim_audio"
	TableDimVideo          = "dim_video"
	TableDimTranscript     = "dim_transcript"
	TableFactCommunication = "fact_communication"
	TableBridgeCommUser    = "bridge_comm_user"
)

// UnmatchedKey is the sentinel surrogate key a fact row carries for a
// foreign-key value that resolved to no dimension row.
const UnmatchedKey int64 = 0

// FactColumnOrder is the canonical column order of fact_communication.
// Columns whose source field is absent from a run's input are omitted from
// the output table rather than emitted empty.
var FactColumnOrder = []string{
	"comm_id",
	"source_id",
	"comm_type_id",
	"subject_id",
	"calendar_id",
	"audio_id",
	"video_id",
	"transcript_id",
	"datetime_id",
	"ingested_at",
	"processed_at",
	"is_processed",
	"raw_title",
	"raw_duration",
}

// DimUserColumns is the column order of dim_user.
var DimUserColumns = []string{"user_id", "name", "email", "location", "displayName", "phoneNumber"}

// DimCalendarColumns is the column order of dim_calendar.
var DimCalendarColumns = []string{"calendar_id", "calendar_date", "year", "month", "day", "day_of_week", "day_name", "month_name"}

// BridgeCommUserColumns is the column order of bridge_comm_user.
var BridgeCommUserColumns = []string{"comm_id", "user_id", "isAttendee", "isParticipant", "isSpeaker", "isOrganiser"}
