package fetch

import (
	"context"
	"time"

	"github.com/jonathan/ats-matcher/internal/logger"
)

// JobOptions configures JobDescription.
type JobOptions struct {
	HTTP *Options
	// UseBrowser re-renders pages whose text is shorter than MinContentLength.
	UseBrowser    bool
	RenderTimeout time.Duration
}

// JobText is the plain text of a job posting page.
type JobText struct {
	URL      string `json:"url"`
	Board    Board  `json:"board"`
	Text     string `json:"text"`
	Rendered bool   `json:"rendered"`
}

// renderFunc is swapped in tests.
var renderFunc = Render

// JobDescription downloads a posting and extracts its description text using
// board-specific selectors. A failed browser render falls back to the HTTP text.
func JobDescription(ctx context.Context, rawURL string, opts *JobOptions) (*JobText, error) {
	if opts == nil {
		opts = &JobOptions{}
	}
	log := logger.Ctx(ctx)

	board := DetectBoard(rawURL)
	page, err := URL(ctx, rawURL, opts.HTTP)
	if err != nil {
		return nil, err
	}

	content, noise := ContentSelectors(board), NoiseSelectors(board)
	text, err := ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
	}
	log.Debug().Str("board", string(board)).Int("chars", len(text)).Msg("extracted job text")

	result := &JobText{URL: rawURL, Board: board, Text: text}
	if !opts.UseBrowser || !NeedsRendering(text) {
		return result, nil
	}

	timeout := opts.RenderTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	html, err := renderFunc(ctx, rawURL, timeout)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("browser rendering failed, using HTTP content")
		return result, nil
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil || len(rendered) <= len(text) {
		return result, nil
	}

	result.Text = rendered
	result.Rendered = true
	return result, nil
}
