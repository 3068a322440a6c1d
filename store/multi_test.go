package store

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/soulware-systems/training-survey/model"
)

type fakeBackend struct {
	name      string
	appendErr error
	readErr   error
	table     model.Table
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Append(ctx context.Context, rec model.Record) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.table.Append(rec)
	return nil
}

func (f *fakeBackend) ReadAll(ctx context.Context) (model.Table, error) {
	if f.readErr != nil {
		return model.Table{}, f.readErr
	}
	return f.table, nil
}

func TestMultiAllBackendsSucceed(t *testing.T) {
	primary := &fakeBackend{name: "csv"}
	mirror := &fakeBackend{name: "xlsx"}
	m := NewMulti(primary, mirror)

	outcomes, err := m.Append(context.Background(), model.Record{"csc": "Ashland"})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.True(t, o.OK)
		require.Empty(t, o.Error)
	}
	require.Len(t, primary.table.Rows, 1)
	require.Len(t, mirror.table.Rows, 1)
}

func TestMultiPartialSuccessIsNotAnError(t *testing.T) {
	primary := &fakeBackend{name: "csv"}
	mirror := &fakeBackend{name: "xlsx", appendErr: errors.New("disk full")}
	m := NewMulti(primary, mirror)

	outcomes, err := m.Append(context.Background(), model.Record{"csc": "Ashland"})
	require.NoError(t, err)

	// the failed backend is reported individually, not hidden
	require.True(t, outcomes[0].OK)
	require.False(t, outcomes[1].OK)
	require.Contains(t, outcomes[1].Error, "disk full")
}

func TestMultiAllBackendsFail(t *testing.T) {
	m := NewMulti(
		&fakeBackend{name: "csv", appendErr: errors.New("permission denied")},
		&fakeBackend{name: "xlsx", appendErr: errors.New("disk full")},
	)

	outcomes, err := m.Append(context.Background(), model.Record{"csc": "Ashland"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "permission denied")
	require.Contains(t, err.Error(), "disk full")
	for _, o := range outcomes {
		require.False(t, o.OK)
	}
}

func TestMultiReadAllMapsNotFoundToEmpty(t *testing.T) {
	m := NewMulti(&fakeBackend{name: "csv", readErr: ErrNotFound})

	table, err := m.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, table.Rows)
}

func TestMultiReadsFromPrimaryOnly(t *testing.T) {
	primary := &fakeBackend{name: "csv"}
	mirror := &fakeBackend{name: "xlsx"}
	mirror.table.Append(model.Record{"csc": "ghost"})
	m := NewMulti(primary, mirror)

	require.NoError(t, primary.Append(context.Background(), model.Record{"csc": "Ashland"}))
	table, err := m.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "Ashland", table.Rows[0]["csc"])
}
