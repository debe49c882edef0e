// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// NATS subjects that the communication ETL service sends messages about.
const (
	// IndexCommTableSubjectPrefix is the subject prefix for built-table
	// publication. The full subject is of the form:
	// lfx.index.comm_table.<table_name>
	IndexCommTableSubjectPrefix = "lfx.index.comm_table."
)

// TableMessage is the payload published for each built table. Rows are
// msgpack-encoded maps keyed by column name.
type TableMessage struct {
	RunID    string   `msgpack:"run_id"`
	Table    string   `msgpack:"table"`
	Columns  []string `msgpack:"columns"`
	RowCount int      `msgpack:"row_count"`
	Rows     []Row    `msgpack:"rows"`
}

// IndexCommTableSubject returns the NATS subject for a table's publication.
func IndexCommTableSubject(tableName string) string {
	return IndexCommTableSubjectPrefix + tableName
}
