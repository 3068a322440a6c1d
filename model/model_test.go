package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTableAppendWidens(t *testing.T) {
	table := Table{}
	table.Append(Record{"csc": "Ashland", "name": "Jane"})
	require.Equal(t, []string{"csc", "name"}, table.Columns)
	require.Len(t, table.Rows, 1)

	table.Append(Record{"csc": "Norfolk", "extra": "x"})
	require.Equal(t, []string{"csc", "name", "extra"}, table.Columns)
	require.Len(t, table.Rows, 2)

	// old row untouched, new column reads empty
	require.Equal(t, "Jane", table.Rows[0]["name"])
	require.Equal(t, "", table.Rows[0]["extra"])
}

func TestTableAppendClonesRecord(t *testing.T) {
	table := Table{}
	rec := Record{"csc": "Ashland"}
	table.Append(rec)
	rec["csc"] = "changed"
	require.Equal(t, "Ashland", table.Rows[0]["csc"])
}

func TestFilterMatchesLocation(t *testing.T) {
	f := Filter{Locations: []string{"Ashland", "Chester"}}
	require.True(t, f.Matches(Record{ColLocation: "Ashland"}))
	require.False(t, f.Matches(Record{ColLocation: "Norfolk"}))
	require.False(t, f.Matches(Record{}))
}

func TestFilterDateWindowEndInclusiveByDay(t *testing.T) {
	day := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return ts
	}
	f := Filter{From: day("2026-03-01"), To: day("2026-03-02")}

	at := func(s string) Record { return Record{ColSubmittedAt: s} }
	require.True(t, f.Matches(at("2026-03-01T00:00:00")))
	require.True(t, f.Matches(at("2026-03-02T23:59:59")))
	require.False(t, f.Matches(at("2026-03-03T00:00:00")))
	require.False(t, f.Matches(at("2026-02-28T23:59:59")))

	// rows without a parseable timestamp never match a dated filter
	require.False(t, f.Matches(Record{}))
	require.False(t, f.Matches(at("yesterday")))
}

func TestZeroFilterMatchesEverything(t *testing.T) {
	require.True(t, Filter{}.Matches(Record{}))
	require.True(t, Filter{}.Matches(Record{ColLocation: "Ashland"}))
}
