// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Person is the normalized shape of one participant payload entry, whatever
// encoding it arrived in. Email is the identity attribute; everything else is
// optional decoration.
type Person struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Location    string `json:"location,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Role identifies which participant role a payload column carries.
type Role string

// Participant roles recognized on a source row. Organizer is a single
// structure synthesized from the organizer_* columns; the other three are
// list-valued payload columns.
const (
	RoleOrganizer   Role = "organizer"
	RoleAttendee    Role = "attendees"
	RoleParticipant Role = "participants"
	RoleSpeaker     Role = "speakers"
)

// User is one row of the user dimension. Identity is the email address
// (matched case-insensitively); attributes are first-occurrence-wins.
type User struct {
	UserID      int64
	Name        string
	Email       string
	Location    string
	DisplayName string
	PhoneNumber string
}

// RoleRelation is one pre-aggregation role occurrence: a single person seen in
// a single role on a single event. Exactly one flag is set per occurrence.
type RoleRelation struct {
	CommID        string
	UserID        int64
	IsAttendee    int
	IsParticipant int
	IsSpeaker     int
	IsOrganiser   int
}

// BridgeRow is one row of the comm/user bridge table: all role occurrences of
// one (comm_id, user_id) pair collapsed into combined flags.
type BridgeRow struct {
	CommID        string
	UserID        int64
	IsAttendee    int
	IsParticipant int
	IsSpeaker     int
	IsOrganiser   int
}
