// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
)

// SourceReader reads the raw denormalized export into an in-memory row set.
// Implementations own file formats and availability errors; the transformation
// core only ever sees rows of named fields.
type SourceReader interface {
	ReadRows(ctx context.Context) ([]models.Row, error)
}

// TableWriter persists a finished table set. The tables arrive fully shaped
// and ordered, so implementations are plain serializers.
type TableWriter interface {
	WriteTables(ctx context.Context, tables *models.TableSet) error
}

// TablePublisher announces built tables to downstream consumers (e.g. an
// indexing service). Wiring a publisher is optional; once wired, a failed
// publication fails the run.
type TablePublisher interface {
	PublishTable(ctx context.Context, runID string, table *models.Table) error
}
