package ats

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-matcher/internal/types"
)

// Category floors. A scorer never returns less than its floor.
const (
	keywordsFloor   = 10
	skillsFloor     = 15
	experienceFloor = 20
	educationFloor  = 10
	formatFloor     = 10

	keywordsFallback  = 50
	skillsFallback    = 60
	educationNeutral  = 70
	fieldBonus        = 1.2
	maxYearsScore     = 50
	pointsPerYear     = 10
	maxCountedYears   = 100
	maxRelevanceScore = 30
	pointsPerTerm     = 2
	minRelevantLength = 4
)

var (
	yearsPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:\+|-|–)?\s*(?:years?|yrs?)`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	bulletPattern   = regexp.MustCompile(`•|▪|‣|\*`)
	dashBullet      = regexp.MustCompile(`(?m)^[ \t]*[-–][ \t]+\S`)
	numberedPattern = regexp.MustCompile(`(?m)^\d+\.`)
)

// ScoreKeywords compares dictionary keywords and phrases found in the job
// description with those found in the resume.
func ScoreKeywords(resume, job string) types.CategoryResult {
	return scoreKeywords(newDocument(resume), newDocument(job))
}

func scoreKeywords(resume, job document) types.CategoryResult {
	jobKeywords := extractKeywords(job)
	if len(jobKeywords) == 0 {
		return types.CategoryResult{
			Score:           keywordsFallback,
			Details:         []string{"No job keywords found for comparison"},
			Recommendations: []string{"Provide a more detailed job description"},
		}
	}

	matched, missing := partition(jobKeywords, extractKeywords(resume))
	score := percent(len(matched), len(jobKeywords))

	details := []string{
		fmt.Sprintf("Found %d matching keywords out of %d job requirements", len(matched), len(jobKeywords)),
		"Matching keywords: " + strings.Join(matched, ", "),
		"Missing keywords: " + strings.Join(firstN(missing, 10), ", "),
	}

	recs := []string{}
	if score < 70 {
		recs = append(recs,
			"Include more job-specific keywords throughout your resume",
			"Focus on adding these missing keywords: "+strings.Join(firstN(missing, 5), ", "),
		)
	}
	if score < 50 {
		recs = append(recs, "Consider tailoring your resume more closely to the job description")
	}

	return types.CategoryResult{Score: max(score, keywordsFloor), Details: details, Recommendations: recs}
}

// ScoreSkills compares dictionary skills required by the job with those in the resume.
func ScoreSkills(resume, job string) types.CategoryResult {
	return scoreSkills(newDocument(resume), newDocument(job))
}

func scoreSkills(resume, job document) types.CategoryResult {
	jobSkills := extractSkills(job)
	if len(jobSkills) == 0 {
		return types.CategoryResult{
			Score:           skillsFallback,
			Details:         []string{"No specific skills found in job description"},
			Recommendations: []string{"Highlight your most relevant technical and soft skills"},
		}
	}

	resumeSkills := extractSkills(resume)
	matched, _ := partition(jobSkills, resumeSkills)
	score := percent(len(matched), len(jobSkills))

	details := []string{
		fmt.Sprintf("%d of %d required skills found", len(matched), len(jobSkills)),
		"Your skills: " + strings.Join(firstN(resumeSkills, 10), ", "),
		"Required skills: " + strings.Join(jobSkills, ", "),
	}

	recs := []string{}
	if score < 80 {
		recs = append(recs,
			"Add more relevant technical skills to your resume",
			"Include skill levels or years of experience for each skill",
		)
	}
	if score < 60 {
		recs = append(recs, "Consider taking courses to develop missing skills")
	}

	return types.CategoryResult{Score: max(score, skillsFloor), Details: details, Recommendations: recs}
}

// ScoreExperience rates stated years, seniority and overlap with the job's vocabulary.
func ScoreExperience(resume, job string) types.CategoryResult {
	return scoreExperience(resume, newDocument(resume), newDocument(job))
}

func scoreExperience(raw string, resume, job document) types.CategoryResult {
	years := totalYears(raw)
	seniority := seniorityScore(resume)

	relevant := 0
	if job.normalized != "" {
		for _, word := range strings.Split(job.normalized, " ") {
			if utf8.RuneCountInString(word) >= minRelevantLength && resume.contains(word) {
				relevant++
			}
		}
	}

	base := min(years*pointsPerYear, maxYearsScore)
	relevance := min(relevant*pointsPerTerm, maxRelevanceScore)
	score := min(base+seniority+relevance, 100)

	details := []string{
		fmt.Sprintf("Total experience: %d years mentioned", years),
		fmt.Sprintf("Seniority level score: %d/100", seniority),
		fmt.Sprintf("Domain relevance score: %d/30", relevance),
	}

	recs := []string{}
	if score < 70 {
		recs = append(recs,
			"Quantify your years of experience more clearly",
			"Highlight relevant domain experience",
		)
	}
	if years == 0 {
		recs = append(recs, "Include specific timeframes for your work experience")
	}

	return types.CategoryResult{Score: max(score, experienceFloor), Details: details, Recommendations: recs}
}

// totalYears sums every "N years" / "N yrs" mention. Overlapping roles are
// counted twice; this is a heuristic, not a timeline. The sum saturates at
// maxCountedYears, and so does any single number too large to parse.
func totalYears(text string) int {
	total := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		if err != nil || n >= maxCountedYears-total {
			return maxCountedYears
		}
		total += n
	}
	return total
}

func seniorityScore(d document) int {
	for _, level := range seniorityLevels {
		for _, k := range level.keywords {
			if d.contains(normalizeText(k)) {
				return level.score
			}
		}
	}
	return noSeniorityScore
}

// ScoreEducation rates the highest degree named in the resume against the job.
func ScoreEducation(resume, job string) types.CategoryResult {
	return scoreEducation(newDocument(resume), newDocument(job))
}

func scoreEducation(resume, job document) types.CategoryResult {
	highest, eduScore := "", 0
	for _, level := range educationLevels {
		if resume.contains(level.degree) && level.score > eduScore {
			highest, eduScore = level.degree, level.score
		}
	}

	required := false
	for _, level := range educationLevels {
		if job.contains(level.degree) {
			required = true
			break
		}
	}

	fieldMatch := false
	for _, field := range relevantFields {
		if resume.contains(field) && job.contains(field) {
			fieldMatch = true
			break
		}
	}

	score := eduScore
	if fieldMatch {
		score = min(int(math.Round(float64(score)*fieldBonus)), 100)
	}
	if !required && eduScore == 0 {
		score = educationNeutral
	}

	degreeDetail := "No degree mentioned"
	if highest != "" {
		degreeDetail = "Highest degree: " + highest
	}
	details := []string{
		degreeDetail,
		"Education requirement in job: " + yesNo(required),
		"Field relevance: " + yesNo(fieldMatch),
	}

	recs := []string{}
	if score < 60 {
		recs = append(recs,
			"Include your educational background and certifications",
			"Highlight relevant coursework or training",
		)
	}
	if required && eduScore == 0 {
		recs = append(recs, "Consider adding any relevant educational qualifications")
	}

	return types.CategoryResult{Score: max(score, educationFloor), Details: details, Recommendations: recs}
}

// ScoreFormat rates resume structure independently of the job description.
func ScoreFormat(resume string) types.CategoryResult {
	return scoreFormat(resume, newDocument(resume))
}

func scoreFormat(raw string, resume document) types.CategoryResult {
	score := 0
	var strengths, issues []string

	sections := 0
	for _, s := range resumeSections {
		if resume.contains(s) {
			sections++
		}
	}
	if sections >= 3 {
		score += 30
		strengths = append(strengths, fmt.Sprintf("Good section structure (%d sections found)", sections))
	} else {
		issues = append(issues, "Missing key resume sections")
	}

	if emailPattern.MatchString(raw) && phonePattern.MatchString(raw) {
		score += 25
		strengths = append(strengths, "Contact information present")
	} else {
		issues = append(issues, "Missing or incomplete contact information")
	}

	bullets := len(bulletPattern.FindAllStringIndex(raw, -1)) + len(dashBullet.FindAllStringIndex(raw, -1))
	numbered := len(numberedPattern.FindAllStringIndex(raw, -1))
	if bullets > 3 || numbered > 2 {
		score += 20
		strengths = append(strengths, "Good use of bullet points and lists")
	} else {
		issues = append(issues, "Consider using more bullet points for better readability")
	}

	words := len(strings.Fields(raw))
	switch {
	case words >= 200 && words <= 800:
		score += 25
		strengths = append(strengths, "Appropriate resume length")
	case words < 200:
		issues = append(issues, "Resume appears too short - add more detail")
	default:
		issues = append(issues, "Resume may be too long - consider condensing")
	}

	details := append([]string{}, strengths...)
	for _, issue := range issues {
		details = append(details, "Issue: "+issue)
	}

	recs := []string{}
	if score < 70 {
		recs = append(recs,
			"Improve resume formatting and structure",
			"Use consistent formatting throughout",
		)
	}
	if len(issues) > 0 {
		recs = append(recs, "Address formatting issues identified above")
	}

	return types.CategoryResult{Score: max(score, formatFloor), Details: details, Recommendations: recs}
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
