package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/catalog"
	"github.com/jonathan/ats-matcher/internal/db"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and publish the job catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active catalog",
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file for structural errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

var catalogPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Replace the catalog stored in PostgreSQL",
	Long: `Loads the catalog from --catalog (or the built-in catalog), creates the catalog tables if
needed and replaces their contents in a single transaction. Requires --db-url or DATABASE_URL.`,
	RunE: runCatalogPublish,
}

var catalogListJSON bool

func init() {
	catalogListCmd.Flags().BoolVar(&catalogListJSON, "json", false, "Print the catalog as JSON")

	catalogCmd.AddCommand(catalogListCmd, catalogValidateCmd, catalogPublishCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if catalogListJSON {
		return writeJSON(out, "", cat)
	}

	fmt.Fprintf(out, "Roles (%d, %d distinct skills):\n", len(cat.Roles), cat.SkillCount())
	for _, r := range cat.Roles {
		fmt.Fprintf(out, "  %-28s %s\n", r.Name, strings.Join(r.Skills, ", "))
	}
	fmt.Fprintf(out, "\nJobs (%d):\n", len(cat.Jobs))
	for _, j := range cat.Jobs {
		fmt.Fprintf(out, "  %-4s %s at %s [%s]\n", j.ID, j.Title, j.Company, j.Role)
	}
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d roles, %d jobs)\n", args[0], len(cat.Roles), len(cat.Jobs))
	return nil
}

func runCatalogPublish(cmd *cobra.Command, _ []string) error {
	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required to publish")
	}
	ctx := cmd.Context()

	// Read from the file (or built-in) catalog, never the database being replaced.
	cat, err := catalog.Open(ctx, "", appConfig.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load job catalog: %w", err)
	}

	conn, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		return err
	}
	if err := catalog.Publish(ctx, conn, cat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published %d roles and %d jobs\n", len(cat.Roles), len(cat.Jobs))
	return nil
}
