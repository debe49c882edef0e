// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

// RoleBridgeAggregator collapses role relations into one bridge row per
// (comm_id, user_id) pair with OR-combined flags.
type RoleBridgeAggregator struct{}

// NewRoleBridgeAggregator creates a new RoleBridgeAggregator.
func NewRoleBridgeAggregator() *RoleBridgeAggregator {
	return &RoleBridgeAggregator{}
}

type bridgeKey struct {
	commID string
	userID int64
}

// Aggregate groups relations by (comm_id, user_id) and ORs each flag across
// the group. Output rows preserve the first appearance order of each pair.
func (a *RoleBridgeAggregator) Aggregate(ctx context.Context, relations []models.RoleRelation) []models.BridgeRow {
	index := make(map[bridgeKey]int, len(relations))
	var bridge []models.BridgeRow

	for _, rel := range relations {
		key := bridgeKey{commID: rel.CommID, userID: rel.UserID}
		i, exists := index[key]
		if !exists {
			i = len(bridge)
			index[key] = i
			bridge = append(bridge, models.BridgeRow{CommID: rel.CommID, UserID: rel.UserID})
		}
		bridge[i].IsAttendee = orFlag(bridge[i].IsAttendee, rel.IsAttendee)
		bridge[i].IsParticipant = orFlag(bridge[i].IsParticipant, rel.IsParticipant)
		bridge[i].IsSpeaker = orFlag(bridge[i].IsSpeaker, rel.IsSpeaker)
		bridge[i].IsOrganiser = orFlag(bridge[i].IsOrganiser, rel.IsOrganiser)
	}

	slog.DebugContext(ctx, "aggregated role relations",
		"relation_count", len(relations),
		"bridge_row_count", len(bridge),
	)

	return bridge
}

// Table projects bridge rows into the bridge_comm_user table.
func (a *RoleBridgeAggregator) Table(bridge []models.BridgeRow) *models.Table {
	table := &models.Table{
		Name:    constants.TableBridgeCommUser,
		Columns: constants.BridgeCommUserColumns,
		Rows:    make([]models.Row, 0, len(bridge)),
	}
	for i := range bridge {
		table.Rows = append(table.Rows, bridge[i].ToRow())
	}
	return table
}

// orFlag combines two 0/1 flags.
func orFlag(a, b int) int {
	if a != 0 || b != 0 {
		return 1
	}
	return 0
}
