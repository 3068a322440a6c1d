// Package xlsxfile mirrors submissions into a spreadsheet workbook so the
// accumulated table stays directly openable in Excel.
package xlsxfile

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/soulware-systems/training-survey/export"
	"github.com/soulware-systems/training-survey/log"
	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/store"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Name() string { return "xlsx" }

// Append rereads the workbook, widens columns, and rewrites it with the new
// row appended. Same read-modify-write shape as the CSV backend.
func (s *Store) Append(ctx context.Context, rec model.Record) error {
	t, err := s.ReadAll(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	t.Append(rec)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("xlsxfile: close workbook: %s", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", export.SheetName); err != nil {
		return errors.Wrap(err, "xlsxfile: rename sheet")
	}
	if err := export.WriteSheet(f, t); err != nil {
		return err
	}
	return errors.Wrap(f.SaveAs(s.path), "xlsxfile: save")
}

func (s *Store) ReadAll(ctx context.Context) (model.Table, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return model.Table{}, store.ErrNotFound
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return model.Table{}, errors.Wrap(err, "xlsxfile: open")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("xlsxfile: close workbook: %s", err)
		}
	}()
	return export.ReadSheet(f)
}
