package ats

import (
	"github.com/jonathan/ats-matcher/internal/types"
)

const priorityThreshold = 60

// GenerateRecommendations turns an analysis into an ordered action plan.
//
// The plan opens with a message for the overall tier, followed by the
// category recommendations. Urgent and moderate tiers close with a follow-up
// line, and the weakest category is called out when it scores below 60.
// Duplicates are removed, keeping the first occurrence.
func GenerateRecommendations(result *types.AnalysisResult) []string {
	if result == nil {
		return []string{}
	}

	plan := []string{}
	var closing string
	switch {
	case result.Score < 50:
		plan = append(plan, "URGENT: Your resume needs significant improvements to pass ATS screening")
		closing = "Consider professional resume review or rewriting"
	case result.Score < 70:
		plan = append(plan, "Your resume needs moderate improvements for better ATS compatibility")
		closing = "Focus on the lowest-scoring categories first"
	case result.Score < 85:
		plan = append(plan, "Good foundation - fine-tune for optimal ATS performance")
	default:
		plan = append(plan, "Excellent ATS compatibility - minor optimizations possible")
	}

	plan = append(plan, result.Recommendations...)
	if closing != "" {
		plan = append(plan, closing)
	}

	if name, score := lowestCategory(result.Breakdown); score < priorityThreshold {
		plan = append(plan, "PRIORITY: Focus on improving your "+name+" section first")
	}

	return dedupe(plan)
}

// lowestCategory returns the first category with the minimum score.
func lowestCategory(b types.ScoreBreakdown) (string, int) {
	lowest, lowestScore := "", 0
	for i, name := range types.Categories {
		cat, _ := b.Category(name)
		if i == 0 || cat.Score < lowestScore {
			lowest, lowestScore = name, cat.Score
		}
	}
	return lowest, lowestScore
}
