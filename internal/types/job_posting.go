// Package types provides type definitions for structured data used throughout the ATS matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobPosting represents a single catalog entry that resumes are matched against.
// Skills is resolved from the skill catalog by the role implied by Title.
type JobPosting struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Title        string   `json:"title" yaml:"title" validate:"required"`
	Company      string   `json:"company" yaml:"company"`
	Location     string   `json:"location" yaml:"location"`
	Type         string   `json:"type" yaml:"type"`
	Description  string   `json:"description" yaml:"description"`
	Requirements []string `json:"requirements" yaml:"requirements"`
	Role         string   `json:"role,omitempty" yaml:"role,omitempty"`
	Skills       []string `json:"skills" yaml:"skills,omitempty"`
}

// ScoredJob is a JobPosting annotated with how well a resume matched it.
type ScoredJob struct {
	JobPosting
	MatchScore     int      `json:"match_score"`
	MatchingSkills []string `json:"matching_skills"`
}
