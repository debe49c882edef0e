// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package ingest contains the source-file readers for the communication ETL
// service.
package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
)

// CSVReader reads a raw CSV export into rows of named fields. The first
// record is the header; empty cells become absent fields.
type CSVReader struct {
	FilePath string
}

// NewCSVReader creates a new CSVReader for the given file.
func NewCSVReader(filePath string) *CSVReader {
	return &CSVReader{FilePath: filePath}
}

// ReadRows implements domain.SourceReader. An unavailable source file is the
// one fatal condition of the whole program.
func (r *CSVReader) ReadRows(ctx context.Context) ([]models.Row, error) {
	f, err := os.Open(r.FilePath)
	if err != nil {
		slog.ErrorContext(ctx, "error opening source file", logging.ErrKey, err, "path", r.FilePath)
		return nil, domain.NewNotFoundError("source file unavailable", err)
	}
	defer f.Close()

	return r.parse(ctx, f)
}

func (r *CSVReader) parse(ctx context.Context, src io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(src)
	// Participant payload cells embed quoted JSON; be lenient about quoting
	// and ragged rows rather than failing the whole ingest.
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.NewValidationError("source file is empty")
	}
	if err != nil {
		return nil, domain.NewInternalError("error reading source header", err)
	}

	var rows []models.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.NewInternalError("error reading source record", err)
		}

		row := make(models.Row, len(header))
		for i, field := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[field] = record[i]
		}
		rows = append(rows, row)
	}

	slog.DebugContext(ctx, "read source rows", "row_count", len(rows), "column_count", len(header))

	return rows, nil
}
