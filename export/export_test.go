package export

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soulware-systems/training-survey/model"
)

func sampleTable() model.Table {
	t := model.Table{}
	t.Append(model.Record{
		"csc":            "Ashland",
		"name":           "Jane, \"JD\" Doe",
		"title_comments": "liked it — très bien\nline two",
	})
	t.Append(model.Record{
		"csc":   "Norfolk",
		"name":  "Bob",
		"extra": "later column",
	})
	return t
}

func TestCSVRoundTrip(t *testing.T) {
	want := sampleTable()
	data, err := EncodeCSV(want)
	require.NoError(t, err)

	got, err := DecodeCSV(data)
	require.NoError(t, err)
	require.Equal(t, want.Columns, got.Columns)
	require.Len(t, got.Rows, len(want.Rows))
	for i, rec := range want.Rows {
		for _, col := range want.Columns {
			require.Equalf(t, rec[col], got.Rows[i][col], "row %d col %s", i, col)
		}
	}
}

func TestCSVRoundTripEmptyTable(t *testing.T) {
	data, err := EncodeCSV(model.Table{})
	require.NoError(t, err)

	got, err := DecodeCSV(data)
	require.NoError(t, err)
	require.Empty(t, got.Rows)
}

func TestCSVMissingValuesRenderEmpty(t *testing.T) {
	data, err := EncodeCSV(sampleTable())
	require.NoError(t, err)

	got, err := DecodeCSV(data)
	require.NoError(t, err)
	// row 0 predates the "extra" column
	require.Equal(t, "", got.Rows[0]["extra"])
	require.Equal(t, "later column", got.Rows[1]["extra"])
}

func TestXLSXRoundTrip(t *testing.T) {
	want := sampleTable()
	data, err := EncodeXLSX(want)
	require.NoError(t, err)

	got, err := DecodeXLSX(data)
	require.NoError(t, err)
	require.Equal(t, want.Columns, got.Columns)
	require.Len(t, got.Rows, len(want.Rows))
	for i, rec := range want.Rows {
		for _, col := range want.Columns {
			require.Equalf(t, rec[col], got.Rows[i][col], "row %d col %s", i, col)
		}
	}
}

func TestXLSXRoundTripEmptyTable(t *testing.T) {
	data, err := EncodeXLSX(model.Table{})
	require.NoError(t, err)

	got, err := DecodeXLSX(data)
	require.NoError(t, err)
	require.Empty(t, got.Rows)
}

func TestEncodeDispatch(t *testing.T) {
	tab := sampleTable()

	csvData, err := Encode(tab, FormatCSV)
	require.NoError(t, err)
	require.NotEmpty(t, csvData)

	xlsxData, err := Encode(tab, FormatXLSX)
	require.NoError(t, err)
	require.NotEmpty(t, xlsxData)

	_, err = Encode(tab, Format("pdf"))
	require.Error(t, err)
}
