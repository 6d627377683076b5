// Package types provides type definitions for structured data used throughout the ATS matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category names used in score breakdowns, in aggregation order.
const (
	CategoryKeywords   = "keywords"
	CategorySkills     = "skills"
	CategoryExperience = "experience"
	CategoryEducation  = "education"
	CategoryFormat     = "format"
)

// Categories lists every ATS category in aggregation order.
var Categories = []string{
	CategoryKeywords,
	CategorySkills,
	CategoryExperience,
	CategoryEducation,
	CategoryFormat,
}

// CategoryResult is the outcome of a single ATS category scorer.
type CategoryResult struct {
	Score           int      `json:"score"`
	Details         []string `json:"details"`
	Recommendations []string `json:"recommendations"`
}

// ScoreBreakdown holds every category result plus the weighted overall score.
type ScoreBreakdown struct {
	Keywords   CategoryResult `json:"keywords"`
	Skills     CategoryResult `json:"skills"`
	Experience CategoryResult `json:"experience"`
	Education  CategoryResult `json:"education"`
	Format     CategoryResult `json:"format"`
	Overall    int            `json:"overall"`
}

// Category returns the result for the named category and whether the name is known.
func (b *ScoreBreakdown) Category(name string) (CategoryResult, bool) {
	switch name {
	case CategoryKeywords:
		return b.Keywords, true
	case CategorySkills:
		return b.Skills, true
	case CategoryExperience:
		return b.Experience, true
	case CategoryEducation:
		return b.Education, true
	case CategoryFormat:
		return b.Format, true
	default:
		return CategoryResult{}, false
	}
}

// AnalysisResult is the full ATS compatibility analysis for one resume/job pair.
type AnalysisResult struct {
	Score           int            `json:"score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Recommendations []string       `json:"recommendations"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
}

// Potential estimates the overall score reachable after addressing each category.
type Potential struct {
	Current    int            `json:"current"`
	Potential  int            `json:"potential"`
	Categories map[string]int `json:"categories"`
}

// CategoryInsight describes a category score for presentation.
type CategoryInsight struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"` // percent of the overall score
	Score       int    `json:"score"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Tip         string `json:"tip"`
}
