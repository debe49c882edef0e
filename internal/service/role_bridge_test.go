// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
)

func TestRoleBridgeAggregator_Aggregate(t *testing.T) {
	aggregator := NewRoleBridgeAggregator()

	relations := []models.RoleRelation{
		{CommID: "evt-1", UserID: 1, IsOrganiser: 1},
		{CommID: "evt-1", UserID: 1, IsAttendee: 1},
		{CommID: "evt-1", UserID: 2, IsAttendee: 1},
		{CommID: "evt-2", UserID: 1, IsSpeaker: 1},
	}

	bridge := aggregator.Aggregate(context.Background(), relations)

	require.Len(t, bridge, 3)

	// Organizer and attendee of the same event collapse to one row with both
	// flags set.
	assert.Equal(t, models.BridgeRow{
		CommID: "evt-1", UserID: 1, IsAttendee: 1, IsOrganiser: 1,
	}, bridge[0])

	assert.Equal(t, models.BridgeRow{
		CommID: "evt-1", UserID: 2, IsAttendee: 1,
	}, bridge[1])

	// The same user on a different event is a separate pair.
	assert.Equal(t, models.BridgeRow{
		CommID: "evt-2", UserID: 1, IsSpeaker: 1,
	}, bridge[2])
}

func TestRoleBridgeAggregator_FlagsAreORNotSum(t *testing.T) {
	aggregator := NewRoleBridgeAggregator()

	relations := []models.RoleRelation{
		{CommID: "evt-1", UserID: 1, IsAttendee: 1},
		{CommID: "evt-1", UserID: 1, IsAttendee: 1},
		{CommID: "evt-1", UserID: 1, IsAttendee: 1},
	}

	bridge := aggregator.Aggregate(context.Background(), relations)

	require.Len(t, bridge, 1)
	assert.Equal(t, 1, bridge[0].IsAttendee)
}

func TestRoleBridgeAggregator_Empty(t *testing.T) {
	aggregator := NewRoleBridgeAggregator()

	bridge := aggregator.Aggregate(context.Background(), nil)

	assert.Empty(t, bridge)
}

func TestRoleBridgeAggregator_Table(t *testing.T) {
	aggregator := NewRoleBridgeAggregator()

	bridge := []models.BridgeRow{
		{CommID: "evt-1", UserID: 1, IsAttendee: 1, IsOrganiser: 1},
	}

	table := aggregator.Table(bridge)

	assert.Equal(t, "bridge_comm_user", table.Name)
	assert.Equal(t, []string{"comm_id", "user_id", "isAttendee", "isParticipant", "isSpeaker", "isOrganiser"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "evt-1", table.Rows[0]["comm_id"])
	assert.Equal(t, 1, table.Rows[0]["isAttendee"])
	assert.Equal(t, 0, table.Rows[0]["isParticipant"])
	assert.Equal(t, 1, table.Rows[0]["isOrganiser"])
}
