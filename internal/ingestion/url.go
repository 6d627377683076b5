package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/jonathan/ats-matcher/internal/logger"
)

// FromURL downloads a job posting and returns its cleaned description text.
func FromURL(ctx context.Context, rawURL string, opts *fetch.JobOptions) (string, *Metadata, error) {
	job, err := fetch.JobDescription(ctx, rawURL, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to import job description: %w", err)
	}

	text := CleanText(job.Text)
	if text == "" {
		return "", nil, &Error{Name: rawURL, Err: ErrEmptyDocument}
	}

	meta := NewMetadata(text, rawURL)
	meta.Board = string(job.Board)
	meta.Rendered = job.Rendered

	logger.Ctx(ctx).Info().
		Str("url", rawURL).
		Str("board", meta.Board).
		Int("words", meta.WordCount).
		Bool("rendered", job.Rendered).
		Msg("imported job description")
	return text, meta, nil
}
