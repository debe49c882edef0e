// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/pkg/constants"
)

type mockSourceReader struct {
	mock.Mock
}

func (m *mockSourceReader) ReadRows(ctx context.Context) ([]models.Row, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]models.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTableWriter struct {
	mock.Mock
}

func (m *mockTableWriter) WriteTables(ctx context.Context, tables *models.TableSet) error {
	args := m.Called(ctx, tables)
	return args.Error(0)
}

type mockTablePublisher struct {
	mock.Mock
}

func (m *mockTablePublisher) PublishTable(ctx context.Context, runID string, table *models.Table) error {
	args := m.Called(ctx, runID, table)
	return args.Error(0)
}

// testRawRows is a small denormalized export the way the CSV reader delivers
// it: everything text, participant payloads JSON-encoded, one duplicate event.
func testRawRows() []models.Row {
	return []models.Row{
		{
			"Event ID":         "evt-1",
			"event_type":       "meeting",
			"event_title":      "Weekly Sync",
			"source_id":        "src-1",
			"start_time":       "2023-01-02 09:30:00",
			"created_at":       "2023-01-01 08:00:00",
			"updated_at":       "2023-01-03 08:00:00",
			"organizer_email":  "b@x.com",
			"attendees":        `[{"email":"a@x.com","name":"A"}]`,
			"audio_url":        "http://cdn/a1.mp3",
			"is_processed":     "true",
			"duration_seconds": "3600",
		},
		{
			"Event ID":    "evt-2",
			"event_type":  "call",
			"event_title": "Planning",
			"start_time":  "2023-01-02 15:00:00",
			"attendees":   "not json",
		},
		{
			// Duplicate of evt-1; must collapse to the first occurrence.
			"Event ID":    "evt-1",
			"event_type":  "webinar",
			"event_title": "Stale Duplicate",
		},
	}
}

func TestETLService_ServiceReady(t *testing.T) {
	tests := []struct {
		name          string
		setupService  func() *ETLService
		expectedReady bool
	}{
		{
			name: "ready with reader and writer",
			setupService: func() *ETLService {
				return NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)
			},
			expectedReady: true,
		},
		{
			name: "not ready - missing source reader",
			setupService: func() *ETLService {
				return NewETLService(nil, &mockTableWriter{}, nil)
			},
			expectedReady: false,
		},
		{
			name: "not ready - missing table writer",
			setupService: func() *ETLService {
				return NewETLService(&mockSourceReader{}, nil, nil)
			},
			expectedReady: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedReady, tt.setupService().ServiceReady())
		})
	}
}

func TestETLService_Transform_TableSet(t *testing.T) {
	service := NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)

	tables := service.Transform(context.Background(), testRawRows())

	expectedOrder := []string{
		constants.TableDimCommType,
		constants.TableDimSubject,
		constants.TableDimUser,
		constants.TableDimCalendar,
		constants.TableDimAudio,
		constants.TableDimVideo,
		constants.TableDimTranscript,
		constants.TableFactCommunication,
		constants.TableBridgeCommUser,
	}
	require.Len(t, tables.Tables, len(expectedOrder))
	for i, name := range expectedOrder {
		assert.Equal(t, name, tables.Tables[i].Name)
	}
}

func TestETLService_Transform_FactIntegrity(t *testing.T) {
	service := NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)

	tables := service.Transform(context.Background(), testRawRows())
	fact := tables.Get(constants.TableFactCommunication)
	require.NotNil(t, fact)

	// Duplicate evt-1 collapsed; comm_id is unique.
	require.Len(t, fact.Rows, 2)
	seen := map[any]bool{}
	for _, row := range fact.Rows {
		assert.False(t, seen[row["comm_id"]], "comm_id must be unique")
		seen[row["comm_id"]] = true
	}

	// Both events fall on the same calendar date and share the calendar row.
	calendar := tables.Get(constants.TableDimCalendar)
	require.Len(t, calendar.Rows, 1)
	assert.Equal(t, fact.Rows[0]["calendar_id"], fact.Rows[1]["calendar_id"])
	assert.Equal(t, int64(1), fact.Rows[0]["calendar_id"])

	// evt-2 has no audio_url: audio_id is the sentinel and dim_audio gained
	// no row for it.
	audio := tables.Get(constants.TableDimAudio)
	require.Len(t, audio.Rows, 1)
	assert.Equal(t, int64(1), fact.Rows[0]["audio_id"])
	assert.Equal(t, int64(0), fact.Rows[1]["audio_id"])

	// Every surrogate key in the fact table is 0 or appears in its dimension.
	dimKeys := func(table *models.Table, idColumn string) map[int64]bool {
		keys := map[int64]bool{}
		for _, row := range table.Rows {
			keys[row[idColumn].(int64)] = true
		}
		return keys
	}
	checks := []struct {
		factColumn string
		table      string
		idColumn   string
	}{
		{"comm_type_id", constants.TableDimCommType, "comm_type_id"},
		{"subject_id", constants.TableDimSubject, "subject_id"},
		{"calendar_id", constants.TableDimCalendar, "calendar_id"},
		{"audio_id", constants.TableDimAudio, "audio_id"},
		{"video_id", constants.TableDimVideo, "video_id"},
		{"transcript_id", constants.TableDimTranscript, "transcript_id"},
	}
	for _, check := range checks {
		keys := dimKeys(tables.Get(check.table), check.idColumn)
		for _, row := range fact.Rows {
			id := row[check.factColumn].(int64)
			if id != constants.UnmatchedKey {
				assert.True(t, keys[id], "%s=%d not in %s", check.factColumn, id, check.table)
			}
		}
	}
}

func TestETLService_Transform_UsersAndBridge(t *testing.T) {
	service := NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)

	tables := service.Transform(context.Background(), testRawRows())

	// a@x.com (attendee), b@x.com (organizer), "not json" fallback identity.
	users := tables.Get(constants.TableDimUser)
	require.Len(t, users.Rows, 3)
	emails := map[any]bool{}
	for _, row := range users.Rows {
		emails[row["email"]] = true
	}
	assert.True(t, emails["a@x.com"])
	assert.True(t, emails["b@x.com"])
	assert.True(t, emails["not json"])

	bridge := tables.Get(constants.TableBridgeCommUser)
	var evt1Rows []models.Row
	for _, row := range bridge.Rows {
		if row["comm_id"] == "evt-1" {
			evt1Rows = append(evt1Rows, row)
		}
	}
	require.Len(t, evt1Rows, 2)
	assert.Equal(t, 1, evt1Rows[0]["isOrganiser"])
	assert.Equal(t, 0, evt1Rows[0]["isAttendee"])
	assert.Equal(t, 1, evt1Rows[1]["isAttendee"])
	assert.Equal(t, 0, evt1Rows[1]["isOrganiser"])
}

func TestETLService_Transform_FallbackDimensions(t *testing.T) {
	service := NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)

	tables := service.Transform(context.Background(), testRawRows())

	// No row carries video_url or transcript_url, so the placeholder
	// dimensions keep downstream joins well-defined.
	video := tables.Get(constants.TableDimVideo)
	require.Len(t, video.Rows, 2)
	assert.Equal(t, "http://dummy.com/video1.mp4", video.Rows[0]["video_url"])

	fact := tables.Get(constants.TableFactCommunication)
	for _, row := range fact.Rows {
		assert.Equal(t, int64(0), row["video_id"])
		assert.Equal(t, int64(0), row["transcript_id"])
	}
}

func TestETLService_Transform_Idempotent(t *testing.T) {
	service := NewETLService(&mockSourceReader{}, &mockTableWriter{}, nil)

	first := service.Transform(context.Background(), testRawRows())
	second := service.Transform(context.Background(), testRawRows())

	require.Len(t, second.Tables, len(first.Tables))
	for i := range first.Tables {
		assert.Equal(t, first.Tables[i].Name, second.Tables[i].Name)
		assert.Equal(t, first.Tables[i].Columns, second.Tables[i].Columns)
		assert.Equal(t, first.Tables[i].Rows, second.Tables[i].Rows)
	}
}

func TestETLService_Run(t *testing.T) {
	reader := &mockSourceReader{}
	writer := &mockTableWriter{}
	publisher := &mockTablePublisher{}
	service := NewETLService(reader, writer, publisher)

	reader.On("ReadRows", mock.Anything).Return(testRawRows(), nil)
	writer.On("WriteTables", mock.Anything, mock.AnythingOfType("*models.TableSet")).Return(nil)
	publisher.On("PublishTable", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*models.Table")).Return(nil)

	tables, err := service.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, tables)
	assert.Len(t, tables.Tables, 9)
	writer.AssertNumberOfCalls(t, "WriteTables", 1)
	publisher.AssertNumberOfCalls(t, "PublishTable", 9)
}

func TestETLService_Run_NotReady(t *testing.T) {
	service := NewETLService(nil, nil, nil)

	tables, err := service.Run(context.Background())

	assert.Nil(t, tables)
	assert.Error(t, err)
}

func TestETLService_Run_ReaderError(t *testing.T) {
	reader := &mockSourceReader{}
	writer := &mockTableWriter{}
	service := NewETLService(reader, writer, nil)

	reader.On("ReadRows", mock.Anything).Return(nil, errors.New("source unavailable"))

	tables, err := service.Run(context.Background())

	assert.Nil(t, tables)
	assert.Error(t, err)
	writer.AssertNotCalled(t, "WriteTables", mock.Anything, mock.Anything)
}

func TestETLService_Run_WriterError(t *testing.T) {
	reader := &mockSourceReader{}
	writer := &mockTableWriter{}
	service := NewETLService(reader, writer, nil)

	reader.On("ReadRows", mock.Anything).Return(testRawRows(), nil)
	writer.On("WriteTables", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	tables, err := service.Run(context.Background())

	assert.Nil(t, tables)
	assert.Error(t, err)
}

func TestETLService_Run_PublisherError(t *testing.T) {
	reader := &mockSourceReader{}
	writer := &mockTableWriter{}
	publisher := &mockTablePublisher{}
	service := NewETLService(reader, writer, publisher)

	reader.On("ReadRows", mock.Anything).Return(testRawRows(), nil)
	writer.On("WriteTables", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishTable", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nats down"))

	tables, err := service.Run(context.Background())

	assert.Nil(t, tables)
	assert.Error(t, err)
}
