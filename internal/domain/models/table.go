// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package models contains the data shapes flowing through the communication
// ETL pipeline: raw rows, dimension and fact rows, and the output table set.
package models

// Row is one record of named fields. Absent fields are simply missing keys;
// a nil value and a missing key both read as "no value".
type Row map[string]any

// Get returns the field value and whether it carries a usable (non-nil,
// non-empty-string) value.
func (r Row) Get(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// GetString returns the field as a string, or "" when the field is absent or
// not string-valued.
func (r Row) GetString(field string) string {
	v, ok := r.Get(field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Table is one named output table: an ordered column list plus uniformly
// shaped rows. Columns drive serialization order; rows may omit values for
// columns that were absent from this run's input.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// TableSet is the full star-schema output of one pipeline run, tables in
// canonical order.
type TableSet struct {
	Tables []*Table
}

// Add appends a table to the set.
func (ts *TableSet) Add(table *Table) {
	ts.Tables = append(ts.Tables, table)
}

// Get returns the table with the given name, or nil when the set has none.
func (ts *TableSet) Get(name string) *Table {
	for _, t := range ts.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}
