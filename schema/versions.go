package schema

import "github.com/soulware-systems/training-survey/model"

// Locations the demographics selector offers. "Other" respondents are asked
// to clarify in the email field.
var Locations = []string{
	"Ashland", "Chester", "Chesterfield", "East Henrico", "Emporia",
	"Ft Gregg Adams", "Hopewell", "Kilmarnock", "Petersburg",
	"Richmond Center (HQ)", "Tappahannock", "West Henrico", "Williamsburg",
	"Other (please specify in email field)",
}

func demographics(requireRole, requireName bool) []Field {
	return []Field{
		{Key: model.ColSubmissionID, Label: "Submission ID", Kind: KindText},
		{Key: model.ColSubmittedAt, Label: "Submitted At", Kind: KindTimestamp},
		{Key: model.ColName, Label: "Name", Kind: KindText, Required: requireName},
		{Key: model.ColRole, Label: "Role/Title", Kind: KindText, Required: requireRole},
		{Key: model.ColLocation, Label: "CSC Location", Kind: KindSingleChoice, Required: true, Options: Locations},
		{Key: model.ColEmail, Label: "Email", Kind: KindText},
	}
}

func init() {
	// v1: first deployed question set.
	register(1, append(demographics(false, false), []Field{
		{Key: "title_overall", Label: "Overall effectiveness of Title Class training", Kind: KindRating, Scale: 5},
		{Key: "title_skill_choice", Label: "What skills do you find most important for agents coming out of the Title class?", Kind: KindRankedChoice,
			Options: []string{"Accuracy in data entry", "Understanding title documentation", "Customer communication", "Problem-solving with difficult cases"}},
		{Key: "title_challenges", Label: "What specific challenges do they usually face when they return to their roles?", Kind: KindText},
		{Key: "title_comments", Label: "Additional comments on Title training", Kind: KindText},

		{Key: "fdr_overall", Label: "How confident are agents after FDR1/DLID training?", Kind: KindRating, Scale: 5},
		{Key: "fdr_skill_choice", Label: "Which skills are most important post-FDR1/DLID?", Kind: KindRankedChoice,
			Options: []string{"ID & document verification accuracy", "System navigation speed", "Fraud detection basics", "Customer communication"}},
		{Key: "fdr_expectations", Label: "After completing the FDR1 and DLID courses, what improvements do you expect to see in agents' performance?", Kind: KindText},
		{Key: "fdr_tasks_mastery", Label: "Are there any particular document or ID verification tasks you want them to master?", Kind: KindText},
		{Key: "fdr_comments", Label: "Additional comments on FDR1/DLID training", Kind: KindText},

		{Key: "de_overall", Label: "Readiness after Driver examiner training", Kind: KindRating, Scale: 5},
		{Key: "de_skill_choice", Label: "What skills matter most for Driver examiners?", Kind: KindRankedChoice,
			Options: []string{"Road test protocol adherence", "Safety & vehicle inspection", "Customer instruction & communication", "Documentation accuracy"}},
		{Key: "de_responsibilities", Label: "For the Driver Examiners course, what additional responsibilities should they be prepared to take on?", Kind: KindText},
		{Key: "de_comments", Label: "Additional comments on Driver Examiner training", Kind: KindText},

		{Key: "compliance_overall", Label: "Compliance readiness after training", Kind: KindRating, Scale: 5},
		{Key: "compliance_skill_choice", Label: "Which compliance-related skills are most important?", Kind: KindRankedChoice,
			Options: []string{"Regulation & policy knowledge", "Exception handling & escalation", "Audit trail documentation", "Data privacy & confidentiality"}},
		{Key: "compliance_needed", Label: "After the Compliance course, what compliance-related skills do you need them to have?", Kind: KindText},
		{Key: "compliance_comments", Label: "Additional comments on Compliance training", Kind: KindText},

		{Key: "advanced_overall", Label: "Advanced training effectiveness", Kind: KindRating, Scale: 5},
		{Key: "advanced_skill_choice", Label: "Which advanced skills are most important?", Kind: KindRankedChoice,
			Options: []string{"Complex case resolution", "Inter-agency coordination", "Data analysis & reporting", "Mentoring & leadership"}},
		{Key: "advanced_responsibilities", Label: "For those who've completed VDH and FDR II, what advanced responsibilities are you looking for them to handle?", Kind: KindText},
		{Key: "advanced_focus", Label: "Any other suggestions or focus areas for these advanced levels?", Kind: KindText},
		{Key: "advanced_comments", Label: "Additional comments on Advanced training", Kind: KindText},

		{Key: "onboard_desc", Label: "Describe how a new hire is onboarded in your CSC from Day 1 until their first class.", Kind: KindText},
		{Key: "onboard_support", Label: "Are they assigned a dedicated coach/senior/work leader for new hires?", Kind: KindYesNo, Options: []string{"Yes", "No"}},
		{Key: "onboard_support_desc", Label: "If yes, describe how they support new hires.", Kind: KindText},

		{Key: "ai_feedback", Label: "How did you like the hybrid AI guided survey structure?", Kind: KindRating, Scale: 5},
		{Key: "ai_comments", Label: "Comments on the AI survey experience", Kind: KindText},
		{Key: "recommend", Label: "Would you recommend this survey app for colleagues/departments?", Kind: KindSingleChoice, Options: []string{"Yes", "No", "Maybe"}},
		{Key: "recommend_comments", Label: "Why or why not?", Kind: KindText},
	}...))

	// v2: adds the per-section audit-issue composites and requires Role.
	// Stored keys stay identical to v1; only labels drifted.
	v2 := FieldsForVersion(1)
	for i := range v2 {
		switch v2[i].Key {
		case model.ColRole:
			v2[i].Required = true
		case "de_overall":
			v2[i].Label = "Readiness after Driver Examiner training"
		case "de_skill_choice":
			v2[i].Label = "What skills matter most for Driver Examiners?"
		}
	}
	v2 = append(v2,
		Field{Key: "title_audit_issues", Label: "Any recurring audit issues after Title training?", Kind: KindYesNoDetail},
		Field{Key: "fdr_audit_issues", Label: "Any recurring audit issues after FDR1/DLID training?", Kind: KindYesNoDetail},
		Field{Key: "de_audit_issues", Label: "Any recurring audit issues after Driver Examiner training?", Kind: KindYesNoDetail},
		Field{Key: "compliance_audit_issues", Label: "Any recurring audit issues after Compliance training?", Kind: KindYesNoDetail},
		Field{Key: "advanced_audit_issues", Label: "Any recurring audit issues after Advanced training?", Kind: KindYesNoDetail},
	)
	register(2, v2)

	// v3: current set; adds a 1..10 overall-experience rating.
	v3 := FieldsForVersion(2)
	v3 = append(v3,
		Field{Key: "overall_experience", Label: "Overall, how would you rate the training program as a whole?", Kind: KindRating, Scale: 10},
	)
	register(3, v3)
}
