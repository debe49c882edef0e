// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/utils"
)

// rosterRoles are the list-valued participant payload columns, in processing
// order. The organizer is handled separately since it is a single structure
// spread across organizer_* columns.
var rosterRoles = []models.Role{models.RoleAttendee, models.RoleParticipant, models.RoleSpeaker}

// rosterDecode is the result of decoding one raw roster value: either a
// decoded person list, or a fallback string to be treated as a single
// identity. Decode failures never propagate; they select the fallback arm.
type rosterDecode struct {
	people   []models.Person
	fallback string
}

// ParticipantNormalizer parses the heterogeneous participant payloads of each
// event, deduplicates people by email, assigns surrogate user IDs, and emits
// one role relation per (event, person, role) occurrence.
//
// The identity map and ID counter live for exactly one Normalize call's
// owner; create a fresh normalizer per pipeline run.
type ParticipantNormalizer struct {
	users         []*models.User
	userIDByEmail map[string]int64
	nextUserID    int64
}

// NewParticipantNormalizer creates a new ParticipantNormalizer with an empty
// identity map.
func NewParticipantNormalizer() *ParticipantNormalizer {
	return &ParticipantNormalizer{
		userIDByEmail: make(map[string]int64),
		nextUserID:    1,
	}
}

// Normalize processes every event row's organizer and roster columns and
// returns the deduplicated users plus all pre-aggregation role relations.
func (n *ParticipantNormalizer) Normalize(ctx context.Context, rows []models.Row) ([]*models.User, []models.RoleRelation) {
	var relations []models.RoleRelation

	for _, row := range rows {
		commID := asString(row["comm_id"])

		if organizer, ok := synthesizeOrganizer(row); ok {
			relations = append(relations, n.registerPeople(commID, []models.Person{organizer}, models.RoleOrganizer)...)
		}

		for _, role := range rosterRoles {
			raw, ok := row.Get(string(role))
			if !ok {
				continue
			}
			decoded := decodeRoster(raw)
			people := decoded.people
			if decoded.fallback != "" {
				// Undecodable payloads degrade to a single identity whose
				// email and name both equal the raw text.
				people = []models.Person{{Email: decoded.fallback, Name: decoded.fallback}}
			}
			relations = append(relations, n.registerPeople(commID, people, role)...)
		}
	}

	slog.DebugContext(ctx, "normalized participants",
		"user_count", len(n.users),
		"relation_count", len(relations),
	)

	return n.users, relations
}

// registerPeople resolves each person to a surrogate user ID, registering
// first-time emails, and emits one relation per person with the triggering
// role flag set. People without an email are skipped entirely.
func (n *ParticipantNormalizer) registerPeople(commID string, people []models.Person, role models.Role) []models.RoleRelation {
	var relations []models.RoleRelation

	for _, person := range people {
		email := strings.TrimSpace(person.Email)
		if email == "" {
			continue
		}

		// Identity matching is case-insensitive; the stored email keeps the
		// first-seen casing.
		identity := strings.ToLower(email)
		userID, known := n.userIDByEmail[identity]
		if !known {
			userID = n.nextUserID
			n.nextUserID++
			n.userIDByEmail[identity] = userID

			name := utils.CoalesceString(person.Name, person.DisplayName, email)
			n.users = append(n.users, &models.User{
				UserID:      userID,
				Name:        name,
				Email:       email,
				Location:    person.Location,
				DisplayName: utils.CoalesceString(person.DisplayName, name),
				PhoneNumber: person.PhoneNumber,
			})
		}
		// Later occurrences of a known email never overwrite the recorded
		// attributes.

		relation := models.RoleRelation{CommID: commID, UserID: userID}
		switch role {
		case models.RoleAttendee:
			relation.IsAttendee = 1
		case models.RoleParticipant:
			relation.IsParticipant = 1
		case models.RoleSpeaker:
			relation.IsSpeaker = 1
		case models.RoleOrganizer:
			relation.IsOrganiser = 1
		}
		relations = append(relations, relation)
	}

	return relations
}

// synthesizeOrganizer builds a person structure from the organizer_* columns
// so organizer identity merges with roster occurrences of the same email.
func synthesizeOrganizer(row models.Row) (models.Person, bool) {
	email := row.GetString("organizer_email")
	if email == "" {
		return models.Person{}, false
	}
	return models.Person{
		Email:       email,
		Name:        utils.CoalesceString(row.GetString("organizer_name"), email),
		Location:    row.GetString("organizer_location"),
		DisplayName: row.GetString("organizer_display_name"),
		PhoneNumber: row.GetString("organizer_phone_number"),
	}, true
}

// decodeRoster interprets one raw roster value. Supported encodings: a JSON
// list of person structures, a single JSON person structure, an already
// decoded list or structure, or arbitrary text. Text that is not valid JSON
// selects the fallback arm.
func decodeRoster(raw any) rosterDecode {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "[]" {
			return rosterDecode{}
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return rosterDecode{fallback: s}
		}
		return coerceDecoded(decoded)
	case nil:
		return rosterDecode{}
	case []models.Person:
		return rosterDecode{people: v}
	case models.Person:
		return rosterDecode{people: []models.Person{v}}
	default:
		return coerceDecoded(v)
	}
}

// coerceDecoded turns a decoded JSON value into a person list. Single
// structures coerce to one-element lists; list entries that are neither
// structures nor strings are skipped.
func coerceDecoded(decoded any) rosterDecode {
	items, ok := decoded.([]any)
	if !ok {
		items = []any{decoded}
	}

	var people []models.Person
	for _, item := range items {
		switch p := item.(type) {
		case map[string]any:
			person := models.Person{
				Email:       stringField(p, "email"),
				Name:        stringField(p, "name"),
				DisplayName: stringField(p, "displayName"),
				Location:    stringField(p, "location"),
				PhoneNumber: stringField(p, "phoneNumber"),
			}
			people = append(people, person)
		case string:
			people = append(people, models.Person{Email: p, Name: p})
		case models.Person:
			people = append(people, p)
		}
	}
	return rosterDecode{people: people}
}

// stringField reads a string-valued field from a decoded structure.
func stringField(m map[string]any, field string) string {
	s, _ := m[field].(string)
	return s
}
