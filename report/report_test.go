package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soulware-systems/training-survey/model"
)

func row(kv ...string) model.Record {
	rec := model.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		rec[kv[i]] = kv[i+1]
	}
	return rec
}

func tableOf(rows ...model.Record) model.Table {
	t := model.Table{}
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestApplyFilterByLocation(t *testing.T) {
	table := tableOf(
		row("csc", "Ashland", "name", "Jane"),
		row("csc", "Norfolk", "name", "Bob"),
	)

	got := Apply(table, model.Filter{Locations: []string{"Ashland"}})
	require.Len(t, got.Rows, 1)
	require.Equal(t, "Jane", got.Rows[0]["name"])
}

func TestApplyKeepsOrderAndCompleteness(t *testing.T) {
	table := tableOf(
		row("csc", "Ashland", "submission_id", "a"),
		row("csc", "Chester", "submission_id", "b"),
		row("csc", "Ashland", "submission_id", "c"),
		row("csc", "Ashland", "submission_id", "d"),
	)
	f := model.Filter{Locations: []string{"Ashland"}}

	got := Apply(table, f)
	require.Len(t, got.Rows, 3)
	require.Equal(t, "a", got.Rows[0]["submission_id"])
	require.Equal(t, "c", got.Rows[1]["submission_id"])
	require.Equal(t, "d", got.Rows[2]["submission_id"])
	for _, rec := range got.Rows {
		require.True(t, f.Matches(rec))
	}
}

func TestApplyDateWindow(t *testing.T) {
	table := tableOf(
		row("csc", "Ashland", "submitted_at", "2026-03-01T10:00:00"),
		row("csc", "Ashland", "submitted_at", "2026-03-05T10:00:00"),
	)
	from, _ := time.Parse("2006-01-02", "2026-03-01")
	to, _ := time.Parse("2006-01-02", "2026-03-02")

	got := Apply(table, model.Filter{From: from, To: to})
	require.Len(t, got.Rows, 1)
	require.Equal(t, "2026-03-01T10:00:00", got.Rows[0]["submitted_at"])
}

func TestMeanExcludesMissing(t *testing.T) {
	table := tableOf(
		row("title_overall", "4"),
		row("title_overall", "2"),
		row("title_overall", ""),
		row("csc", "Ashland"),
		row("title_overall", "n/a"),
	)

	mean, ok := Mean(table, "title_overall")
	require.True(t, ok)
	require.InDelta(t, 3.0, mean, 1e-9)
}

func TestMeanUndefinedWithoutNumericRows(t *testing.T) {
	_, ok := Mean(tableOf(row("csc", "Ashland")), "title_overall")
	require.False(t, ok)

	_, ok = Mean(model.Table{}, "title_overall")
	require.False(t, ok)
}

func TestDistinctCount(t *testing.T) {
	table := tableOf(
		row("csc", "Ashland"),
		row("csc", "Ashland"),
		row("csc", "Chester"),
		row("csc", ""),
	)
	require.Equal(t, 2, DistinctCount(table, "csc"))
	require.Equal(t, 4, Count(table))
}

func TestDistributionVerbatimFirstSeen(t *testing.T) {
	table := tableOf(
		row("role", "Driver Examiner"),
		row("role", "Driver examiner"), // near-duplicate label stays separate
		row("role", "Driver Examiner"),
		row("role", "Clerk"),
	)

	dist := Distribution(table, "role")
	require.Equal(t, []ValueCount{
		{Value: "Driver Examiner", Count: 2},
		{Value: "Driver examiner", Count: 1},
		{Value: "Clerk", Count: 1},
	}, dist)
}

func TestSortByCountStableTies(t *testing.T) {
	dist := []ValueCount{
		{Value: "b", Count: 1},
		{Value: "a", Count: 3},
		{Value: "c", Count: 1},
	}
	sorted := SortByCount(dist)
	require.Equal(t, []ValueCount{
		{Value: "a", Count: 3},
		{Value: "b", Count: 1},
		{Value: "c", Count: 1},
	}, sorted)
	// input untouched
	require.Equal(t, "b", dist[0].Value)
}

func TestConditionalDetails(t *testing.T) {
	table := tableOf(
		row("compliance_audit_issues", "Yes - printer jams constantly"),
		row("compliance_audit_issues", "No - "),
		row("compliance_audit_issues", "Yes - "),
		row("compliance_audit_issues", ""),
		row("compliance_audit_issues", "Yes - forms go missing - often"),
	)

	details := ConditionalDetails(table, "compliance_audit_issues")
	require.Equal(t, []string{
		"printer jams constantly",
		"forms go missing - often", // split on the first separator only
	}, details)
}

func TestCompositeBreakdown(t *testing.T) {
	table := tableOf(
		row("fdr_audit_issues", "Yes - slow lookups"),
		row("fdr_audit_issues", "No - "),
		row("fdr_audit_issues", "No"),
	)

	require.Equal(t, []ValueCount{
		{Value: "Yes", Count: 1},
		{Value: "No", Count: 2},
	}, CompositeBreakdown(table, "fdr_audit_issues"))
}

func TestSummarize(t *testing.T) {
	table := tableOf(
		row("csc", "Ashland", "title_overall", "5", "title_skill_choice", "Customer communication",
			"compliance_audit_issues", "Yes - missed escalations"),
		row("csc", "Ashland", "title_overall", "3", "title_skill_choice", "All of the above"),
		row("csc", "Chester", "title_overall", "4", "title_skill_choice", "Customer communication"),
	)

	s := Summarize(table)
	require.Equal(t, 3, s.TotalResponses)
	require.Equal(t, 2, s.UniqueLocations)
	require.Equal(t, []ValueCount{
		{Value: "Ashland", Count: 2},
		{Value: "Chester", Count: 1},
	}, s.ByLocation)

	require.Len(t, s.Averages, 1)
	require.Equal(t, "title_overall", s.Averages[0].Field)
	require.InDelta(t, 4.0, s.Averages[0].Average, 1e-9)

	require.Len(t, s.Skills, 1)
	require.Equal(t, []ValueCount{
		{Value: "Customer communication", Count: 2},
		{Value: "All of the above", Count: 1},
	}, s.Skills[0].Choices)

	require.Len(t, s.AuditIssues, 1)
	require.Equal(t, "compliance_audit_issues", s.AuditIssues[0].Field)
	require.Equal(t, []string{"missed escalations"}, s.AuditIssues[0].Details)
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(model.Table{})
	require.Equal(t, 0, s.TotalResponses)
	require.Empty(t, s.Averages)
	require.Empty(t, s.Skills)
	require.Empty(t, s.AuditIssues)
}
