// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging contains the NATS publication of built tables for
// downstream indexing.
package messaging

import (
	"context"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
)

// INatsConn is the NATS connection interface needed for table publication.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds table messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// PublishTable implements domain.TablePublisher. The table rows travel
// msgpack-encoded on the table's indexing subject.
func (m *MessageBuilder) PublishTable(ctx context.Context, runID string, table *models.Table) error {
	if m.NatsConn == nil || !m.NatsConn.IsConnected() {
		slog.ErrorContext(ctx, "NATS connection not available", logging.PriorityCritical())
		return domain.NewUnavailableError("NATS connection not available")
	}

	message := models.TableMessage{
		RunID:    runID,
		Table:    table.Name,
		Columns:  table.Columns,
		RowCount: len(table.Rows),
		Rows:     table.Rows,
	}

	data, err := msgpack.Marshal(&message)
	if err != nil {
		slog.ErrorContext(ctx, "error encoding table message", logging.ErrKey, err, "table", table.Name)
		return domain.NewInternalError("error encoding table message", err)
	}

	subject := models.IndexCommTableSubject(table.Name)
	if err := m.NatsConn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return domain.NewInternalError("error sending message to NATS", err)
	}

	slog.DebugContext(ctx, "sent table message to NATS",
		"subject", subject,
		"row_count", len(table.Rows),
	)

	return nil
}
