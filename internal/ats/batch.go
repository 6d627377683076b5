package ats

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-matcher/internal/types"
)

// AnalyzeBatch scores one resume against many job descriptions.
// At most concurrency analyses run at once; a value <= 0 uses GOMAXPROCS.
// Results are returned in the order of jobs. The only error is ctx's.
func AnalyzeBatch(ctx context.Context, resume string, jobs []string, concurrency int) ([]*types.AnalysisResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*types.AnalysisResult, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("job %d not scored: %w", i, err)
			}
			// Each goroutine owns a distinct index, so no lock is needed.
			results[i] = Analyze(resume, job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
