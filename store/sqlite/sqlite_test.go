package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soulware-systems/training-survey/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "survey.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyTable(t *testing.T) {
	s := openStore(t)
	table, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, table.Rows)
}

func TestAppendReadAllRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first := model.Record{
		"submission_id": "20260314T093000_jane_doe",
		"csc":           "Ashland",
		"title_overall": "5",
	}
	second := model.Record{
		"submission_id":      "20260314T101500_bob",
		"csc":                "Chester",
		"overall_experience": "9",
	}
	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	table, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	require.Equal(t, "Ashland", table.Rows[0]["csc"])
	require.Equal(t, "5", table.Rows[0]["title_overall"])
	require.Equal(t, "", table.Rows[0]["overall_experience"])
	require.Equal(t, "9", table.Rows[1]["overall_experience"])
	require.True(t, table.HasColumn("overall_experience"))
}

func TestAppendOrderPreserved(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	for _, loc := range []string{"Ashland", "Chester", "Emporia"} {
		require.NoError(t, s.Append(ctx, model.Record{"submission_id": loc, "csc": loc}))
	}

	table, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	require.Equal(t, "Ashland", table.Rows[0]["csc"])
	require.Equal(t, "Chester", table.Rows[1]["csc"])
	require.Equal(t, "Emporia", table.Rows[2]["csc"])
}
