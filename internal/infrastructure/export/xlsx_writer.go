// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package export contains the output-workbook writers for the communication
// ETL service.
package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
)

// timestampCellLayout renders time values in workbook cells.
const timestampCellLayout = "2006-01-02 15:04:05"

// XLSXWriter writes a table set into one xlsx workbook, one sheet per table,
// header row first, columns in each table's canonical order.
type XLSXWriter struct {
	FilePath string
}

// NewXLSXWriter creates a new XLSXWriter targeting the given file.
func NewXLSXWriter(filePath string) *XLSXWriter {
	return &XLSXWriter{FilePath: filePath}
}

// WriteTables implements domain.TableWriter.
func (w *XLSXWriter) WriteTables(ctx context.Context, tables *models.TableSet) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.WarnContext(ctx, "error closing workbook", logging.ErrKey, err)
		}
	}()

	for _, table := range tables.Tables {
		if err := w.writeSheet(f, table); err != nil {
			slog.ErrorContext(ctx, "error writing sheet", logging.ErrKey, err, "table", table.Name)
			return domain.NewInternalError("error writing sheet", err)
		}
	}

	// The first table replaces the default sheet so the workbook contains
	// exactly the schema's tables.
	if len(tables.Tables) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return domain.NewInternalError("error removing default sheet", err)
		}
	}

	if err := f.SaveAs(w.FilePath); err != nil {
		slog.ErrorContext(ctx, "error saving workbook", logging.ErrKey, err, "path", w.FilePath)
		return domain.NewInternalError("error saving workbook", err)
	}

	slog.InfoContext(ctx, "wrote workbook", "path", w.FilePath, "sheet_count", len(tables.Tables))

	return nil
}

func (w *XLSXWriter) writeSheet(f *excelize.File, table *models.Table) error {
	if _, err := f.NewSheet(table.Name); err != nil {
		return err
	}

	for i, column := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, cell, column); err != nil {
			return err
		}
	}

	for rowIdx, row := range table.Rows {
		for colIdx, column := range table.Columns {
			value, ok := row[column]
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if ts, isTime := value.(time.Time); isTime {
				value = ts.Format(timestampCellLayout)
			}
			if err := f.SetCellValue(table.Name, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}
