package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/javalex/internal/logging"
	"github.com/yaklabco/javalex/pkg/fsutil"
)

// Runner orchestrates multi-file scanning.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run discovers files and scans them concurrently, one scan session per
// file. Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("scan complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldJobs, jobs,
	)

	return result, nil
}

// worker scans files from workCh with its own Scanner.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	logger := logging.FromContext(ctx)
	scanner := NewScanner(r.opts.Scan)

	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		var outcome FileOutcome
		src, err := fsutil.ReadSource(ctx, path, r.opts.MaxFileSize)
		if err != nil {
			logger.Warn("skipping file", logging.FieldPath, path, logging.FieldError, err)
			outcome = FileOutcome{Path: path, Error: err}
		} else {
			outcome = scanner.Scan(path, src.Content, src.BodyStart)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
