package model

import (
	"sort"
	"time"
)

// TimestampFormat is the sortable form every backend stores the
// submitted_at column in.
const TimestampFormat = "2006-01-02T15:04:05"

// Well-known column keys shared by every schema version.
const (
	ColSubmissionID = "submission_id"
	ColSubmittedAt  = "submitted_at"
	ColName         = "name"
	ColRole         = "role"
	ColLocation     = "csc"
	ColEmail        = "email"
)

// Record is one submission: field key to stored value. Values are flat
// strings; ranking blocks arrive already flattened into
// "{field}_rank_{option}" keys.
type Record map[string]string

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SubmittedAt parses the record timestamp. ok is false when the column is
// missing or unparseable, in which case the row never matches a dated filter.
func (r Record) SubmittedAt() (t time.Time, ok bool) {
	raw := r[ColSubmittedAt]
	if raw == "" {
		return
	}
	t, err := time.Parse(TimestampFormat, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Table is an ordered sequence of records plus the union of every column
// ever observed, in first-seen order. Rows are kept in append order.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether key is part of the table's column set.
func (t Table) HasColumn(key string) bool {
	for _, c := range t.Columns {
		if c == key {
			return true
		}
	}
	return false
}

// WidenTo adds any column of keys not yet present, preserving first-seen
// order. Existing rows are untouched; a missing key simply reads as "".
func (t *Table) WidenTo(keys []string) {
	for _, k := range keys {
		if !t.HasColumn(k) {
			t.Columns = append(t.Columns, k)
		}
	}
}

// Append widens the column set to cover the record and adds it as the last
// row. New columns land after the known ones, sorted, so widening is
// deterministic regardless of map iteration order. The record is cloned so
// later caller mutations cannot reach the table.
func (t *Table) Append(r Record) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t.WidenTo(keys)
	t.Rows = append(t.Rows, r.Clone())
}

// Filter is a read-time predicate: a set of allowed values for the location
// column and/or a calendar-day interval. Zero value matches every row.
type Filter struct {
	Locations []string
	From      time.Time // inclusive, truncated to day
	To        time.Time // inclusive by calendar day
}

// Matches applies the predicate to one record. The date window is half-open
// [From, To+24h) so the end date is inclusive by day.
func (f Filter) Matches(r Record) bool {
	if len(f.Locations) > 0 {
		ok := false
		for _, loc := range f.Locations {
			if r[ColLocation] == loc {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		ts, ok := r.SubmittedAt()
		if !ok {
			return false
		}
		if !f.From.IsZero() && ts.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && !ts.Before(f.To.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}
