package catalog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"engage/internal/logging"
)

// PrefetchOptions selects what Prefetch materializes.
type PrefetchOptions struct {
	// Program limits the walk to one program; empty means every program.
	Program    string
	Thumbnails bool
	Full       bool
	Workers    int
	Logger     *slog.Logger
}

// PrefetchResult reports what a prefetch pass did.
type PrefetchResult struct {
	Items      int
	Thumbnails int
	Full       int
	Failed     int
	Elapsed    time.Duration
}

// Prefetch forces renditions to decode ahead of interactive use. Decode
// failures are logged and counted; only cancellation or an unknown program
// abort the pass.
func Prefetch(ctx context.Context, cat *Catalog, opts PrefetchOptions) (PrefetchResult, error) {
	logger := logging.NewComponentLogger(opts.Logger, "prefetch")
	start := time.Now()

	var items []*MediaItem
	if opts.Program != "" {
		program, err := cat.Program(opts.Program)
		if err != nil {
			return PrefetchResult{}, err
		}
		items = program.Items()
	} else {
		items = cat.Items()
	}

	result := PrefetchResult{Items: len(items)}
	if !opts.Thumbnails && !opts.Full {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var thumbs, fulls, failed atomic.Int64
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if opts.Thumbnails {
				if _, err := item.Thumbnail(); err != nil {
					failed.Add(1)
					logger.Warn("thumbnail prefetch failed", logging.String(logging.FieldPath, item.Path()), logging.Error(err))
				} else {
					thumbs.Add(1)
				}
			}
			if opts.Full {
				if _, err := item.Full(); err != nil {
					failed.Add(1)
					logger.Warn("full prefetch failed", logging.String(logging.FieldPath, item.Path()), logging.Error(err))
				} else {
					fulls.Add(1)
				}
			}
			return nil
		})
	}
	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}

	result.Thumbnails = int(thumbs.Load())
	result.Full = int(fulls.Load())
	result.Failed = int(failed.Load())
	result.Elapsed = time.Since(start)
	logger.Info("prefetch complete",
		logging.String(logging.FieldProgram, opts.Program),
		logging.Int("items", result.Items),
		logging.Int("thumbnails", result.Thumbnails),
		logging.Int("full", result.Full),
		logging.Int("failed", result.Failed),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, err
}
