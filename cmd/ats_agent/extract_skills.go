package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/skills"
	"github.com/jonathan/ats-matcher/internal/types"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "List the catalog skills mentioned in a resume",
	Long: "Reads a resume (pdf, docx, doc or txt) or inline text and prints the catalog skills it mentions, " +
		"in catalog order, as JSON.",
	RunE: runExtractSkills,
}

var (
	extractResume     string
	extractResumeText string
	extractPretty     bool
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to resume document")
	extractSkillsCmd.Flags().StringVar(&extractResumeText, "resume-text", "", "Resume text")
	extractSkillsCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Print a formatted box instead of JSON")

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	if extractResume == "" && extractResumeText == "" {
		extractResume = appConfig.Resume
	}
	text, err := readResume(extractResume, extractResumeText)
	if err != nil {
		return err
	}

	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	found := skills.Extract(cat, text)
	if extractPretty {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSkills(found)
		return nil
	}
	if found == nil {
		found = []string{}
	}
	return writeJSON(cmd.OutOrStdout(), "", types.SkillsResponse{Skills: found})
}
