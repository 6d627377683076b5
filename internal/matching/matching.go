// Package matching ranks catalog job postings by skill overlap with a resume.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/ats-matcher/internal/catalog"
	"github.com/jonathan/ats-matcher/internal/skills"
	"github.com/jonathan/ats-matcher/internal/types"
)

const (
	// DefaultMinScore is the lowest match score a recommendation may have.
	DefaultMinScore = 30

	bonusPerMatch = 5
	maxBonus      = 20
)

// Options controls Recommend.
type Options struct {
	// Prompt restricts candidates to postings whose title, company or role contains it.
	Prompt string
	// MinScore drops postings scoring below it. Zero selects DefaultMinScore and a
	// negative value disables the cutoff.
	MinScore int
}

func (o Options) minScore() int {
	switch {
	case o.MinScore == 0:
		return DefaultMinScore
	case o.MinScore < 0:
		return 0
	default:
		return o.MinScore
	}
}

// CalculateJobMatch scores resumeSkills against jobSkills on a 0-100 scale.
//
//	base  = round(matches / len(jobSkills) * 100)
//	bonus = min(matches*5, 20)
//	score = min(base+bonus, 100)
//
// Comparison ignores case and each job skill counts at most once.
// An empty jobSkills scores 0.
func CalculateJobMatch(resumeSkills, jobSkills []string) int {
	if len(jobSkills) == 0 {
		return 0
	}
	matches := len(MatchingSkills(resumeSkills, jobSkills))

	base := int(math.Round(float64(matches) / float64(len(jobSkills)) * 100))
	bonus := min(matches*bonusPerMatch, maxBonus)
	return min(base+bonus, 100)
}

// MatchingSkills returns the job skills present in resumeSkills, in job order,
// using the job's spelling.
func MatchingSkills(resumeSkills, jobSkills []string) []string {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	matched := []string{}
	counted := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || counted[key] {
			continue
		}
		counted[key] = true
		if have[key] {
			matched = append(matched, s)
		}
	}
	return matched
}

// Recommend scores every catalog posting against resumeSkills and returns those
// at or above the minimum score, best first. Ties keep catalog order.
func Recommend(cat *catalog.Catalog, resumeSkills []string, opts Options) []types.ScoredJob {
	results := []types.ScoredJob{}
	if cat == nil {
		return results
	}

	prompt := strings.ToLower(strings.TrimSpace(opts.Prompt))
	minScore := opts.minScore()
	for _, job := range cat.Jobs {
		if prompt != "" && !matchesPrompt(job, prompt) {
			continue
		}

		score := CalculateJobMatch(resumeSkills, job.Skills)
		if score < minScore {
			continue
		}
		results = append(results, types.ScoredJob{
			JobPosting:     job,
			MatchScore:     score,
			MatchingSkills: MatchingSkills(resumeSkills, job.Skills),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

// RecommendText extracts skills from resumeText and recommends postings for them.
func RecommendText(cat *catalog.Catalog, resumeText string, opts Options) []types.ScoredJob {
	return Recommend(cat, skills.Extract(cat, resumeText), opts)
}

func matchesPrompt(job types.JobPosting, prompt string) bool {
	for _, field := range []string{job.Title, job.Company, job.Role} {
		if strings.Contains(strings.ToLower(field), prompt) {
			return true
		}
	}
	return false
}
