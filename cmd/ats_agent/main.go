// Package main provides the ats_agent command line: ATS scoring, skill extraction,
// job recommendations and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/config"
	"github.com/jonathan/ats-matcher/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS resume scoring and job matching",
	Long: "ats_agent scores resumes against job descriptions the way an applicant tracking system would, " +
		"extracts catalog skills from resumes and recommends matching jobs. It can also serve the same features over HTTP.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var (
	configPath  string
	logLevel    string
	logFormat   string
	catalogPath string
	databaseURL string

	// appConfig is the merged configuration for the running command.
	appConfig config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: json or pretty")
	pf.StringVar(&catalogPath, "catalog", "", "Path to job catalog file (yaml or json)")
	pf.StringVar(&databaseURL, "db-url", "", "PostgreSQL URL to load the job catalog from")
}

// loadConfig merges, in increasing priority: defaults, config file, environment, flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Log)
	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
