// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the star-schema transformation core: field
// normalization, dimension construction, participant normalization, and fact
// assembly, plus the ETL orchestration around the adapters.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

// ETLService runs one full transformation: source rows in, the nine-table
// star schema out, persisted through the writer and optionally announced
// through the publisher.
type ETLService struct {
	SourceReader   domain.SourceReader
	TableWriter    domain.TableWriter
	TablePublisher domain.TablePublisher // optional
}

// NewETLService creates a new ETLService.
func NewETLService(sourceReader domain.SourceReader, tableWriter domain.TableWriter, tablePublisher domain.TablePublisher) *ETLService {
	return &ETLService{
		SourceReader:   sourceReader,
		TableWriter:    tableWriter,
		TablePublisher: tablePublisher,
	}
}

// ServiceReady checks if the service is ready for use. The publisher is
// optional.
func (s *ETLService) ServiceReady() bool {
	return s.SourceReader != nil && s.TableWriter != nil
}

// Run reads the source, transforms it, writes the workbook, and publishes
// the built tables. The only fatal conditions are adapter failures; degraded
// source data always produces a complete table set.
func (s *ETLService) Run(ctx context.Context) (*models.TableSet, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}

	runID := uuid.New().String()
	ctx = logging.AppendCtx(ctx, slog.String("run_id", runID))

	rows, err := s.SourceReader.ReadRows(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error reading source rows", logging.ErrKey, err)
		return nil, err
	}
	slog.InfoContext(ctx, "loaded raw rows", "row_count", len(rows))

	tables := s.Transform(ctx, rows)

	if err := s.TableWriter.WriteTables(ctx, tables); err != nil {
		slog.ErrorContext(ctx, "error writing tables", logging.ErrKey, err)
		return nil, err
	}

	if s.TablePublisher != nil {
		for _, table := range tables.Tables {
			if err := s.TablePublisher.PublishTable(ctx, runID, table); err != nil {
				slog.ErrorContext(ctx, "error publishing table", logging.ErrKey, err, "table", table.Name)
				return nil, err
			}
		}
	}

	slog.InfoContext(ctx, "transformation run complete", "table_count", len(tables.Tables))

	return tables, nil
}

// Transform is the pure core: one synchronous pass producing the full table
// set from in-memory rows. All builder state is local to this call.
func (s *ETLService) Transform(ctx context.Context, rawRows []models.Row) *models.TableSet {
	rows := NewFieldNormalizer().Normalize(ctx, rawRows)

	dimensions := NewDimensionBuilder()
	commType, commTypeMapping := dimensions.Build(ctx, rows, CommTypeDimension)
	subject, subjectMapping := dimensions.Build(ctx, rows, SubjectDimension)
	audio, audioMapping := dimensions.Build(ctx, rows, AudioDimension)
	video, videoMapping := dimensions.Build(ctx, rows, VideoDimension)
	transcript, transcriptMapping := dimensions.Build(ctx, rows, TranscriptDimension)

	calendars := NewCalendarBuilder()
	calendar, calendarMapping := calendars.Build(ctx, rows)

	participants := NewParticipantNormalizer()
	users, relations := participants.Normalize(ctx, rows)

	bridges := NewRoleBridgeAggregator()
	bridge := bridges.Aggregate(ctx, relations)

	fact := NewFactAssembler().Assemble(ctx, rows, FactMappings{
		CommType:   commTypeMapping,
		Subject:    subjectMapping,
		Calendar:   calendarMapping,
		Audio:      audioMapping,
		Video:      videoMapping,
		Transcript: transcriptMapping,
	})

	tables := &models.TableSet{}
	tables.Add(dimensions.Table(CommTypeDimension, commType))
	tables.Add(dimensions.Table(SubjectDimension, subject))
	tables.Add(userTable(users))
	tables.Add(calendars.Table(calendar))
	tables.Add(dimensions.Table(AudioDimension, audio))
	tables.Add(dimensions.Table(VideoDimension, video))
	tables.Add(dimensions.Table(TranscriptDimension, transcript))
	tables.Add(fact)
	tables.Add(bridges.Table(bridge))

	return tables
}

// userTable projects the deduplicated users into the dim_user table.
func userTable(users []*models.User) *models.Table {
	table := &models.Table{
		Name:    constants.TableDimUser,
		Columns: constants.DimUserColumns,
		Rows:    make([]models.Row, 0, len(users)),
	}
	for _, user := range users {
		table.Rows = append(table.Rows, user.ToRow())
	}
	return table
}
