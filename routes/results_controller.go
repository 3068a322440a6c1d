package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/soulware-systems/training-survey/app"
	"github.com/soulware-systems/training-survey/export"
	"github.com/soulware-systems/training-survey/httpx"
	"github.com/soulware-systems/training-survey/log"
	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/report"
)

const dateParamFormat = "2006-01-02"

// parseFilter builds the read-time predicate from query params: repeated
// `location` values plus an inclusive `from`/`to` calendar-day window.
func parseFilter(r *http.Request) (model.Filter, error) {
	f := model.Filter{Locations: r.URL.Query()["location"]}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			return f, badFilter{fmt.Sprintf("invalid 'from' date %q, expected YYYY-MM-DD", raw)}
		}
		f.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			return f, badFilter{fmt.Sprintf("invalid 'to' date %q, expected YYYY-MM-DD", raw)}
		}
		f.To = t
	}
	return f, nil
}

func filteredTable(app app.App, r *http.Request) (model.Table, error) {
	f, err := parseFilter(r)
	if err != nil {
		return model.Table{}, err
	}
	t, err := app.ReadAll(r.Context())
	if err != nil {
		return model.Table{}, err
	}
	return report.Apply(t, f), nil
}

// GetResultsSummary serves the aggregated dashboard view of the filtered
// table. A fresh deployment reports zero responses, not an error.
func GetResultsSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := filteredTable(app, r)
		if err != nil {
			respondFilterError(w, "results.summary", err)
			return
		}
		render.JSON(w, r, report.Summarize(t))
	}
}

// GetResultsRows serves the filtered raw rows for tabular display.
func GetResultsRows(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := filteredTable(app, r)
		if err != nil {
			respondFilterError(w, "results.rows", err)
			return
		}
		rows := t.Rows
		if rows == nil {
			rows = []model.Record{}
		}
		render.JSON(w, r, map[string]any{
			"columns": t.Columns,
			"rows":    rows,
		})
	}
}

// ExportResults streams the filtered table as a CSV or XLSX download.
func ExportResults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := export.Format(r.URL.Query().Get("format"))
		if format == "" {
			format = export.FormatCSV
		}
		if format != export.FormatCSV && format != export.FormatXLSX {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "results.export.format",
				"unsupported format %q, expected csv or xlsx", format)
			return
		}

		t, err := filteredTable(app, r)
		if err != nil {
			respondFilterError(w, "results.export", err)
			return
		}

		data, err := export.Encode(t, format)
		if err != nil {
			httpx.LogInternalError(w, "results.export.encode", err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="filtered_results.%s"`, format))
		w.Write(data)
	}
}

// badFilter marks filter parse errors as the caller's to fix; everything
// else surfacing from filteredTable is internal.
type badFilter struct{ msg string }

func (e badFilter) Error() string { return e.msg }

func respondFilterError(w http.ResponseWriter, code string, err error) {
	var bad badFilter
	if errors.As(err, &bad) {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", bad.msg)
		return
	}
	httpx.LogInternalError(w, code, err)
}
