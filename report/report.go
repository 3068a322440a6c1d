// Package report computes read-time summaries over the survey table. Every
// function is pure in (table, predicate): aggregation never touches the
// store and degrades to zeros over an empty table.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/soulware-systems/training-survey/model"
)

// Apply keeps the rows matching the predicate, in original table order.
func Apply(t model.Table, f model.Filter) model.Table {
	out := model.Table{Columns: append([]string(nil), t.Columns...)}
	for _, rec := range t.Rows {
		if f.Matches(rec) {
			out.Rows = append(out.Rows, rec)
		}
	}
	return out
}

// Count is the number of rows.
func Count(t model.Table) int {
	return len(t.Rows)
}

// DistinctCount counts distinct non-empty values of one column.
func DistinctCount(t model.Table, field string) int {
	seen := map[string]bool{}
	for _, rec := range t.Rows {
		if v := rec[field]; v != "" {
			seen[v] = true
		}
	}
	return len(seen)
}

// Mean averages the numeric values of a column. Missing and non-numeric
// values are excluded, not coerced to zero; ok is false when no row
// contributed.
func Mean(t model.Table, field string) (mean float64, ok bool) {
	var sum float64
	var n int
	for _, rec := range t.Rows {
		v := strings.TrimSpace(rec[field])
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// ValueCount is one bar of a categorical distribution.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution counts every observed non-empty value verbatim, in
// first-seen order. No binning and no label normalization: near-duplicate
// labels show up as separate bars.
func Distribution(t model.Table, field string) []ValueCount {
	index := map[string]int{}
	var out []ValueCount
	for _, rec := range t.Rows {
		v := rec[field]
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	return out
}

// SortByCount orders a distribution descending by count for chart display.
// The sort is stable, so ties keep first-seen order.
func SortByCount(dist []ValueCount) []ValueCount {
	out := append([]ValueCount(nil), dist...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// SplitComposite splits a `"<Yes|No> - <detail>"` composite on the first
// " - " separator.
func SplitComposite(value string) (answer, detail string) {
	answer, detail, found := strings.Cut(value, " - ")
	answer = strings.TrimSpace(answer)
	if !found {
		return answer, ""
	}
	return answer, strings.TrimSpace(detail)
}

// ConditionalDetails extracts the free-text detail of composite values, in
// table order. Only rows answering "Yes" with a non-empty detail contribute.
func ConditionalDetails(t model.Table, field string) []string {
	var out []string
	for _, rec := range t.Rows {
		answer, detail := SplitComposite(rec[field])
		if answer == "Yes" && detail != "" {
			out = append(out, detail)
		}
	}
	return out
}

// CompositeBreakdown is Distribution over the answer half of a composite
// column, in first-seen order.
func CompositeBreakdown(t model.Table, field string) []ValueCount {
	index := map[string]int{}
	var out []ValueCount
	for _, rec := range t.Rows {
		answer, _ := SplitComposite(rec[field])
		if answer == "" {
			continue
		}
		if i, ok := index[answer]; ok {
			out[i].Count++
			continue
		}
		index[answer] = len(out)
		out = append(out, ValueCount{Value: answer, Count: 1})
	}
	return out
}
