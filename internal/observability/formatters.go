// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-matcher/internal/ats"
	"github.com/jonathan/ats-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		// pad by rune count so box-drawing glyphs line up
		pad := boxWidth - 4 - len([]rune(line))
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(pad, 0)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// scoreBar renders score (0-100) as a fixed-width bar.
func scoreBar(score int) string {
	filled := min(max(score, 0), 100) * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintAnalysis outputs the overall score and one bar per category.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:  %d/100 (%s)\n\n", result.Score, ats.Status(result.Score))
	for _, in := range ats.Insights(result.Breakdown) {
		fmt.Fprintf(&sb, "%-11s %s %3d  %s\n", in.Name, scoreBar(in.Score), in.Score, in.Priority)
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range result.Strengths {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
	}
	if len(result.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, s := range result.Weaknesses {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
	}

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategoryDetails outputs the detail lines recorded by each scorer.
func (p *Printer) PrintCategoryDetails(b types.ScoreBreakdown) {
	var sb strings.Builder
	for i, name := range types.Categories {
		res, _ := b.Category(name)
		fmt.Fprintf(&sb, "%s (%d)\n", strings.ToUpper(name), res.Score)
		for _, d := range res.Details {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
		if i < len(types.Categories)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("CATEGORY DETAILS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs the prioritized action plan.
func (p *Printer) PrintPlan(plan []string) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	for i, item := range plan {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	p.printBox("ACTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPotential outputs the estimated score after improvements.
func (p *Printer) PrintPotential(pot types.Potential) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current:    %d\n", pot.Current)
	fmt.Fprintf(&sb, "Potential:  %d (+%d)\n\n", pot.Potential, pot.Potential-pot.Current)
	for _, name := range types.Categories {
		if score, ok := pot.Categories[name]; ok {
			fmt.Fprintf(&sb, "%-11s %3d\n", name, score)
		}
	}
	p.printBox("IMPROVEMENT POTENTIAL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs the skills found in a resume.
func (p *Printer) PrintSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("EXTRACTED SKILLS", "No catalog skills found")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d skills:\n\n", len(skills))
	for _, s := range skills {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs the top recommended jobs with their matched skills.
func (p *Printer) PrintJobs(jobs []types.ScoredJob) {
	if len(jobs) == 0 {
		p.printBox("RECOMMENDED JOBS", "No jobs met the minimum match score")
		return
	}

	var sb strings.Builder
	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		fmt.Fprintf(&sb, "#%d  %s", i+1, job.Title)
		if job.Company != "" {
			fmt.Fprintf(&sb, " @ %s", job.Company)
		}
		fmt.Fprintf(&sb, "\n    Match: %d%%\n", job.MatchScore)
		if len(job.MatchingSkills) > 0 {
			fmt.Fprintf(&sb, "    Skills: %s\n", truncate(strings.Join(job.MatchingSkills, ", "), 40))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more jobs", len(jobs)-maxItemsToShow)
	}

	p.printBox("RECOMMENDED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}
