package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON output file against a bundled schema",
	Long: `Validates a JSON file against one of the bundled schemas.

Output of "score" nests the analysis under "analysis" and output of "recommend" nests the
postings under "jobs"; use --field to validate that member instead of the whole document.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateSchema string
	validateField  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "analysis.schema.json",
		"Schema name: "+strings.Join(schemas.Names(), ", "))
	validateCmd.Flags().StringVarP(&validateField, "field", "f", "", "Validate only this top-level member")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if validateField == "" {
		if err := schemas.ValidateFile(validateSchema, path); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON file: %w", err)
		}
		member, ok := doc[validateField]
		if !ok {
			return fmt.Errorf("%s has no %q member", path, validateField)
		}
		if err := schemas.ValidateBytes(validateSchema, member); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid against %s\n", path, validateSchema)
	return nil
}
