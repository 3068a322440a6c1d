package report

import (
	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/schema"
)

type Average struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Average float64 `json:"average"`
}

type SkillBreakdown struct {
	Field   string       `json:"field"`
	Label   string       `json:"label"`
	Choices []ValueCount `json:"choices"`
}

type AuditIssues struct {
	Field     string       `json:"field"`
	Label     string       `json:"label"`
	Breakdown []ValueCount `json:"breakdown"`
	Details   []string     `json:"details,omitempty"`
}

// Summary is the aggregated dashboard view over one (already filtered)
// table, assembled by dispatching on the registry field kinds instead of
// sniffing cell contents.
type Summary struct {
	TotalResponses  int              `json:"total_responses"`
	UniqueLocations int              `json:"unique_locations"`
	ByLocation      []ValueCount     `json:"by_location"`
	Averages        []Average        `json:"averages"`
	Skills          []SkillBreakdown `json:"skills"`
	AuditIssues     []AuditIssues    `json:"audit_issues"`
}

// Summarize builds the dashboard summary. Fields absent from the table are
// skipped, so reports over older data never crash on columns introduced by
// later survey versions.
func Summarize(t model.Table) Summary {
	s := Summary{
		TotalResponses:  Count(t),
		UniqueLocations: DistinctCount(t, model.ColLocation),
		ByLocation:      SortByCount(Distribution(t, model.ColLocation)),
	}

	for _, f := range schema.FieldsUnion() {
		if !t.HasColumn(f.Key) {
			continue
		}
		switch f.Kind {
		case schema.KindRating:
			if mean, ok := Mean(t, f.Key); ok {
				s.Averages = append(s.Averages, Average{Field: f.Key, Label: f.Label, Average: mean})
			}
		case schema.KindRankedChoice:
			if dist := Distribution(t, f.Key); len(dist) > 0 {
				s.Skills = append(s.Skills, SkillBreakdown{Field: f.Key, Label: f.Label, Choices: SortByCount(dist)})
			}
		case schema.KindYesNoDetail:
			breakdown := CompositeBreakdown(t, f.Key)
			if len(breakdown) == 0 {
				continue
			}
			s.AuditIssues = append(s.AuditIssues, AuditIssues{
				Field:     f.Key,
				Label:     f.Label,
				Breakdown: breakdown,
				Details:   ConditionalDetails(t, f.Key),
			})
		}
	}
	return s
}
