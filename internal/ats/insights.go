package ats

import (
	"fmt"

	"github.com/jonathan/ats-matcher/internal/types"
)

// Per-category score gains assumed reachable by following the recommendations.
var potentialGains = map[string]int{
	types.CategoryKeywords:   15,
	types.CategorySkills:     12,
	types.CategoryExperience: 10,
	types.CategoryEducation:  8,
	types.CategoryFormat:     10,
}

var categoryInfo = map[string]struct{ description, tip string }{
	types.CategoryKeywords: {
		"Measures how well your resume matches job-specific keywords and terminology",
		"Include exact keywords from job descriptions throughout your resume",
	},
	types.CategorySkills: {
		"Evaluates alignment between your skills and job requirements",
		"List both technical and soft skills relevant to the position",
	},
	types.CategoryExperience: {
		"Assesses relevance and depth of your work experience",
		"Quantify achievements and highlight relevant experience",
	},
	types.CategoryEducation: {
		"Checks educational background against job requirements",
		"Include relevant degrees, certifications, and training",
	},
	types.CategoryFormat: {
		"Reviews ATS-friendly formatting and structure",
		"Use standard headings, bullet points, and avoid graphics",
	},
}

// Potential estimates the overall score after improving every category.
func Potential(result *types.AnalysisResult) types.Potential {
	p := types.Potential{Categories: make(map[string]int, len(types.Categories))}
	if result == nil {
		return p
	}

	for _, name := range types.Categories {
		cat, _ := result.Breakdown.Category(name)
		p.Categories[name] = min(cat.Score+potentialGains[name], 100)
	}
	p.Current = result.Score
	p.Potential = weighted(p.Categories)
	return p
}

// Insights describes each category of b for display, in aggregation order.
func Insights(b types.ScoreBreakdown) []types.CategoryInsight {
	out := make([]types.CategoryInsight, 0, len(types.Categories))
	for _, name := range types.Categories {
		cat, _ := b.Category(name)
		info := categoryInfo[name]
		out = append(out, types.CategoryInsight{
			Name:        name,
			Weight:      Weights[name],
			Score:       cat.Score,
			Status:      Status(cat.Score),
			Priority:    Priority(cat.Score),
			Description: info.description,
			Tip:         info.tip,
		})
	}
	return out
}

// Status labels a score.
func Status(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// Priority ranks how urgently a category needs attention.
func Priority(score int) string {
	switch {
	case score < 50:
		return "High"
	case score < 70:
		return "Medium"
	default:
		return "Low"
	}
}

// Summary is a one-line, shareable description of a result.
func Summary(result *types.AnalysisResult) string {
	return fmt.Sprintf("I scored %d/100 on my ATS compatibility analysis. %s rating!",
		result.Score, Status(result.Score))
}
