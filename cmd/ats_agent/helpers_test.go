package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-matcher/internal/config"
)

const testResume = `Jane Doe
jane@example.com | (555) 123-4567

Summary
Senior software engineer with 6 years of experience building JavaScript and Python services.

Experience
- Built React and Node.js applications on AWS
- Led migration to Docker and Kubernetes

Skills
JavaScript, TypeScript, React, Node.js, Python, SQL, Git, AWS

Education
Bachelor of Science in Computer Science`

const testJob = `Senior Software Engineer. We need JavaScript, React, Node.js, AWS and SQL experience.
Bachelor degree in computer science preferred.`

var envKeys = []string{
	"ATS_RESUME", "ATS_JOB", "ATS_JOB_URL", "ATS_CATALOG", "DATABASE_URL", "ATS_ADDR",
	"ATS_LOG_LEVEL", "ATS_LOG_FORMAT", "ATS_USE_BROWSER", "ATS_MIN_SCORE", "ATS_CONCURRENCY",
	"ATS_BURST", "ATS_RATE_LIMIT", "ATS_ALLOW_PRIVATE_URLS",
}

// runCLI executes the root command in-process and returns what it wrote.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// A .env loaded by TestMain must not leak into commands under test.
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	resetFlags(rootCmd)
	appConfig = config.Config{}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so package-level flag variables
// do not carry over between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
