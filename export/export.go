// Package export serializes a (filtered) table to portable tabular bytes
// and parses them back. Round-trip fidelity is part of the contract: the
// file backends use these codecs for their own storage format.
package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/soulware-systems/training-survey/model"
)

// SheetName is the worksheet submissions live on, for both the spreadsheet
// mirror backend and XLSX downloads.
const SheetName = "responses"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type served with a download of this format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Encode renders the table in the requested format.
func Encode(t model.Table, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return EncodeCSV(t)
	case FormatXLSX:
		return EncodeXLSX(t)
	}
	return nil, errors.Errorf("export: unsupported format %q", f)
}

// EncodeCSV writes one header row with every column, then one row per
// submission in append order. Missing values render as empty strings.
func EncodeCSV(t model.Table) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, errors.Wrap(err, "export: write header")
	}
	for _, rec := range t.Rows {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, "export: write row")
		}
	}
	w.Flush()
	return buf.Bytes(), errors.Wrap(w.Error(), "export: flush")
}

// DecodeCSV parses EncodeCSV output back into a table. An empty input is an
// empty table, not an error.
func DecodeCSV(data []byte) (model.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return model.Table{}, nil
	}
	if err != nil {
		return model.Table{}, errors.Wrap(err, "export: read header")
	}

	t := model.Table{Columns: append([]string(nil), header...)}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Table{}, errors.Wrap(err, "export: read row")
		}
		rec := model.Record{}
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// EncodeXLSX renders the table as a single-sheet workbook.
func EncodeXLSX(t model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, errors.Wrap(err, "export: rename sheet")
	}
	if err := WriteSheet(f, t); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "export: write workbook")
	}
	return buf.Bytes(), nil
}

// DecodeXLSX parses an EncodeXLSX workbook back into a table.
func DecodeXLSX(data []byte) (model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return model.Table{}, errors.Wrap(err, "export: open workbook")
	}
	defer f.Close()
	return ReadSheet(f)
}

// ReadSheet extracts the responses sheet of an open workbook.
func ReadSheet(f *excelize.File) (model.Table, error) {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return model.Table{}, errors.Wrap(err, "export: read sheet")
	}
	if len(rows) == 0 {
		return model.Table{}, nil
	}

	header := rows[0]
	t := model.Table{Columns: append([]string(nil), header...)}
	for _, row := range rows[1:] {
		rec := model.Record{}
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// WriteSheet fills the responses sheet of an open workbook with the table.
func WriteSheet(f *excelize.File, t model.Table) error {
	header := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for n, rec := range t.Rows {
		row := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = rec[col]
		}
		if err := setRow(f, n+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "export: cell name")
	}
	return errors.Wrap(f.SetSheetRow(SheetName, cell, &values), "export: set row")
}
