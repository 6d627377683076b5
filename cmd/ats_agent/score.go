package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/ats"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/schemas"
	"github.com/jonathan/ats-matcher/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long: `Runs the ATS compatibility analysis: keywords, skills, experience, education and format
are scored 0-100 and combined into a weighted overall score.

The job description comes from exactly one of --job (file), --job-text or --job-url.
Pages fetched from --job-url can fall back to headless Chrome with --use-browser.`,
	RunE: runScore,
}

var (
	scoreResume     string
	scoreResumeText string
	scoreJob        string
	scoreJobText    string
	scoreJobURL     string
	scorePlan       bool
	scorePotential  bool
	scoreOut        string
	scoreVerbose    bool
	scoreUseBrowser bool
	scoreAllowLocal bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume document")
	scoreCmd.Flags().StringVar(&scoreResumeText, "resume-text", "", "Resume text")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description file")
	scoreCmd.Flags().StringVar(&scoreJobText, "job-text", "", "Job description text")
	scoreCmd.Flags().StringVarP(&scoreJobURL, "job-url", "u", "", "URL of a job posting")
	scoreCmd.Flags().BoolVar(&scorePlan, "plan", false, "Print the prioritized action plan with --verbose")
	scoreCmd.Flags().BoolVar(&scorePotential, "potential", false, "Include the improvement potential estimate")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Write JSON to this file instead of stdout")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print formatted boxes instead of JSON")
	scoreCmd.Flags().BoolVar(&scoreUseBrowser, "use-browser", false, "Render job pages with headless Chrome when needed")
	scoreCmd.Flags().BoolVar(&scoreAllowLocal, "allow-private-urls", false, "Allow --job-url to reach loopback, private and link-local hosts")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if scoreUseBrowser {
		appConfig.UseBrowser = true
	}
	if scoreAllowLocal {
		appConfig.AllowPrivateURLs = true
	}

	if scoreResume == "" && scoreResumeText == "" {
		scoreResume = appConfig.Resume
	}
	if scoreJob == "" && scoreJobText == "" && scoreJobURL == "" {
		scoreJob, scoreJobURL = appConfig.Job, appConfig.JobURL
	}

	resume, err := readResume(scoreResume, scoreResumeText)
	if err != nil {
		return err
	}
	job, source, err := readJob(ctx, scoreJob, scoreJobText, scoreJobURL)
	if err != nil {
		return err
	}

	result := ats.Analyze(resume, job)
	if err := schemas.ValidateAnalysis(result); err != nil {
		return fmt.Errorf("analysis failed validation: %w", err)
	}
	logger.Debug().Int("score", result.Score).Str("source", source).Msg("resume scored")

	plan := ats.GenerateRecommendations(result)
	var potential *types.Potential
	if scorePotential {
		p := ats.Potential(result)
		potential = &p
	}

	if scoreVerbose || appConfig.Verbose {
		p := observability.NewPrinter(cmd.OutOrStdout())
		p.PrintAnalysis(result)
		p.PrintCategoryDetails(result.Breakdown)
		if scorePlan {
			p.PrintPlan(plan)
		}
		if potential != nil {
			p.PrintPotential(*potential)
		}
		if scoreOut == "" {
			return nil
		}
	}

	resp := types.ScoreResponse{
		Analysis:  result,
		Plan:      plan,
		Insights:  ats.Insights(result.Breakdown),
		Summary:   ats.Summary(result),
		Potential: potential,
		Source:    source,
	}
	if err := writeJSON(cmd.OutOrStdout(), scoreOut, resp); err != nil {
		return err
	}
	if scoreOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote analysis to %s\n", scoreOut)
	}
	return nil
}
