package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/schemas"
	"github.com/jonathan/ats-matcher/internal/skills"
	"github.com/jonathan/ats-matcher/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend catalog jobs for a resume or a skill list",
	Long: `Ranks catalog job postings by how many of their skills the resume covers.

Provide either a resume (--resume / --resume-text) or an explicit --skills list.
Postings scoring below --min-score are dropped; use a negative value to keep all of them.`,
	RunE: runRecommend,
}

var (
	recommendResume     string
	recommendResumeText string
	recommendSkills     []string
	recommendPrompt     string
	recommendMinScore   int
	recommendOut        string
	recommendPretty     bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendResume, "resume", "r", "", "Path to resume document")
	recommendCmd.Flags().StringVar(&recommendResumeText, "resume-text", "", "Resume text")
	recommendCmd.Flags().StringSliceVar(&recommendSkills, "skills", nil, "Comma-separated skills to match instead of a resume")
	recommendCmd.Flags().StringVarP(&recommendPrompt, "prompt", "p", "", "Only consider postings whose title, company or role contains this text")
	recommendCmd.Flags().IntVar(&recommendMinScore, "min-score", 0, "Minimum match score (default 30, negative disables)")
	recommendCmd.Flags().StringVarP(&recommendOut, "out", "o", "", "Write JSON to this file instead of stdout")
	recommendCmd.Flags().BoolVar(&recommendPretty, "pretty", false, "Print a formatted box instead of JSON")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	resumeSkills := recommendSkills
	if len(resumeSkills) == 0 {
		if recommendResume == "" && recommendResumeText == "" {
			recommendResume = appConfig.Resume
		}
		text, err := readResume(recommendResume, recommendResumeText)
		if err != nil {
			return fmt.Errorf("%w (or pass --skills)", err)
		}
		resumeSkills = skills.Extract(cat, text)
	}

	minScore := appConfig.MinScore
	if cmd.Flags().Changed("min-score") {
		minScore = recommendMinScore
	}
	if minScore > 100 {
		return fmt.Errorf("--min-score must be at most 100, got %d", minScore)
	}

	jobs := matching.Recommend(cat, resumeSkills, matching.Options{Prompt: recommendPrompt, MinScore: minScore})
	if err := schemas.ValidateRecommendations(jobs); err != nil {
		return fmt.Errorf("recommendations failed validation: %w", err)
	}

	if recommendPretty {
		p := observability.NewPrinter(cmd.OutOrStdout())
		p.PrintSkills(resumeSkills)
		p.PrintJobs(jobs)
		return nil
	}

	if resumeSkills == nil {
		resumeSkills = []string{}
	}
	if jobs == nil {
		jobs = []types.ScoredJob{}
	}
	return writeJSON(cmd.OutOrStdout(), recommendOut, types.RecommendResponse{Skills: resumeSkills, Jobs: jobs})
}
