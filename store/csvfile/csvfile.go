// Package csvfile is the primary flat-file backend: one CSV file per survey
// instrument, header row naming every column ever observed.
package csvfile

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/soulware-systems/training-survey/export"
	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/store"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Name() string { return "csv" }

// Append reads the whole table, widens the column set to cover the record,
// and rewrites the file with the new row last. Schema evolution forces the
// read-modify-write: a new column changes the header, so a tail append of
// the data row alone would desync old rows. The temp-file rename keeps a
// crash from truncating existing data.
func (s *Store) Append(ctx context.Context, rec model.Record) error {
	t, err := s.ReadAll(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	t.Append(rec)

	data, err := export.EncodeCSV(t)
	if err != nil {
		return err
	}
	return writeDurable(s.path, data)
}

func (s *Store) ReadAll(ctx context.Context) (model.Table, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.Table{}, store.ErrNotFound
	}
	if err != nil {
		return model.Table{}, errors.Wrap(err, "csvfile: read")
	}
	return export.DecodeCSV(data)
}

func writeDurable(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "csvfile: create")
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "csvfile: write")
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return errors.Wrap(err, "csvfile: sync")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "csvfile: close")
	}
	return errors.Wrap(os.Rename(tmp, path), "csvfile: rename")
}
