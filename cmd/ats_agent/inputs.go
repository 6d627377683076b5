package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-matcher/internal/catalog"
	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/jonathan/ats-matcher/internal/ingestion"
)

// readResume returns resume text from a document path or inline text.
func readResume(path, text string) (string, error) {
	switch {
	case path != "" && text != "":
		return "", fmt.Errorf("--resume and --resume-text are mutually exclusive; provide only one")
	case path != "":
		content, _, err := ingestion.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read resume: %w", err)
		}
		return content, nil
	case text != "":
		return text, nil
	default:
		return "", fmt.Errorf("either --resume or --resume-text must be provided")
	}
}

// readJob returns job description text from exactly one of a file, inline text or URL,
// plus a label for where it came from.
func readJob(ctx context.Context, path, text, url string) (string, string, error) {
	set := 0
	for _, v := range []string{path, text, url} {
		if v != "" {
			set++
		}
	}
	if set == 0 {
		return "", "", fmt.Errorf("one of --job, --job-text or --job-url must be provided")
	}
	if set > 1 {
		return "", "", fmt.Errorf("--job, --job-text and --job-url are mutually exclusive; provide only one")
	}

	switch {
	case path != "":
		content, _, err := ingestion.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read job description: %w", err)
		}
		return content, path, nil
	case url != "":
		content, _, err := ingestion.FromURL(ctx, url, &fetch.JobOptions{
			HTTP:       &fetch.Options{AllowPrivateNetworks: appConfig.AllowPrivateURLs},
			UseBrowser: appConfig.UseBrowser,
		})
		if err != nil {
			return "", "", err
		}
		return content, url, nil
	default:
		return text, "inline", nil
	}
}

func openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := catalog.Open(ctx, appConfig.DatabaseURL, appConfig.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load job catalog: %w", err)
	}
	return cat, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
