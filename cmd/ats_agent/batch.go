package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/ats"
	"github.com/jonathan/ats-matcher/internal/ingestion"
	"github.com/jonathan/ats-matcher/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score one resume against several job descriptions",
	Long: `Scores a resume against every job description given with --job (repeatable) or found
in --jobs-dir. Results are printed in input order; directory entries are sorted by name.`,
	RunE: runBatch,
}

var (
	batchResume      string
	batchJobs        []string
	batchJobsDir     string
	batchConcurrency int
	batchOut         string
)

// batchResult pairs an analysis with the file it was computed for.
type batchResult struct {
	Job      string                `json:"job"`
	Analysis *types.AnalysisResult `json:"analysis"`
}

func init() {
	batchCmd.Flags().StringVarP(&batchResume, "resume", "r", "", "Path to resume document")
	batchCmd.Flags().StringArrayVarP(&batchJobs, "job", "j", nil, "Path to a job description file (repeatable)")
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs-dir", "", "Directory of job description files")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Number of analyses to run at once (default from config)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write JSON to this file instead of stdout")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if batchResume == "" {
		batchResume = appConfig.Resume
	}
	resume, err := readResume(batchResume, "")
	if err != nil {
		return err
	}

	paths, err := batchJobPaths()
	if err != nil {
		return err
	}
	if len(paths) > types.MaxBatchJobs {
		return fmt.Errorf("too many job descriptions: %d (max %d)", len(paths), types.MaxBatchJobs)
	}

	jobs := make([]string, len(paths))
	for i, p := range paths {
		content, _, err := ingestion.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read job description %s: %w", p, err)
		}
		jobs[i] = content
	}

	concurrency := appConfig.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = batchConcurrency
	}

	results, err := ats.AnalyzeBatch(cmd.Context(), resume, jobs, concurrency)
	if err != nil {
		return err
	}

	out := make([]batchResult, len(results))
	for i, r := range results {
		out[i] = batchResult{Job: paths[i], Analysis: r}
	}
	return writeJSON(cmd.OutOrStdout(), batchOut, out)
}

func batchJobPaths() ([]string, error) {
	paths := append([]string(nil), batchJobs...)
	if batchJobsDir != "" {
		entries, err := os.ReadDir(batchJobsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read jobs directory: %w", err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			found = append(found, filepath.Join(batchJobsDir, e.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --job or a --jobs-dir must be provided")
	}
	return paths, nil
}
