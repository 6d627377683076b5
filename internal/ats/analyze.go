// Package ats scores how well a resume is likely to fare in an applicant
// tracking system screening for a given job description.
//
// Every function in this package is deterministic and total: empty or
// malformed input produces floor or fallback scores, never an error.
package ats

import (
	"math"

	"github.com/jonathan/ats-matcher/internal/types"
)

// Weights maps each category to its share of the overall score, in percent.
var Weights = map[string]int{
	types.CategoryKeywords:   30,
	types.CategorySkills:     25,
	types.CategoryExperience: 25,
	types.CategoryEducation:  10,
	types.CategoryFormat:     10,
}

// strength and weakness phrases per category, used for scores >= 70 and < 70.
var verdicts = map[string][2]string{
	types.CategoryKeywords:   {"Strong keyword optimization", "Keyword optimization needs improvement"},
	types.CategorySkills:     {"Good skills alignment", "Skills alignment could be better"},
	types.CategoryExperience: {"Relevant experience highlighted", "Experience section needs enhancement"},
	types.CategoryEducation:  {"Education requirements met", "Educational background could be strengthened"},
	types.CategoryFormat:     {"ATS-friendly formatting", "Format optimization needed"},
}

const strengthThreshold = 70

// Analyze runs every category scorer and combines them into an AnalysisResult.
func Analyze(resume, job string) *types.AnalysisResult {
	resumeDoc, jobDoc := newDocument(resume), newDocument(job)

	b := types.ScoreBreakdown{
		Keywords:   scoreKeywords(resumeDoc, jobDoc),
		Skills:     scoreSkills(resumeDoc, jobDoc),
		Experience: scoreExperience(resume, resumeDoc, jobDoc),
		Education:  scoreEducation(resumeDoc, jobDoc),
		Format:     scoreFormat(resume, resumeDoc),
	}
	b.Overall = Overall(b)

	result := &types.AnalysisResult{
		Score:           b.Overall,
		Breakdown:       b,
		Recommendations: []string{},
		Strengths:       []string{},
		Weaknesses:      []string{},
	}

	var recs []string
	for _, name := range types.Categories {
		cat, _ := b.Category(name)
		recs = append(recs, cat.Recommendations...)

		if cat.Score >= strengthThreshold {
			result.Strengths = append(result.Strengths, verdicts[name][0])
		} else {
			result.Weaknesses = append(result.Weaknesses, verdicts[name][1])
		}
	}
	result.Recommendations = dedupe(recs)

	return result
}

// Overall is the weighted average of the category scores, rounded.
func Overall(b types.ScoreBreakdown) int {
	return weighted(map[string]int{
		types.CategoryKeywords:   b.Keywords.Score,
		types.CategorySkills:     b.Skills.Score,
		types.CategoryExperience: b.Experience.Score,
		types.CategoryEducation:  b.Education.Score,
		types.CategoryFormat:     b.Format.Score,
	})
}

func weighted(scores map[string]int) int {
	// Integer percent weights keep the sum exact before the final rounding.
	total := 0
	for _, name := range types.Categories {
		total += scores[name] * Weights[name]
	}
	return int(math.Round(float64(total) / 100))
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
