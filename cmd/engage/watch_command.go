package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"engage/internal/catalog"
	"engage/internal/logging"
	"engage/internal/watch"
)

const watchLockName = "engage-watch.lock"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan the library and reconcile profiles whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Watch.Enabled && !force {
				return errors.New("watching is disabled (set watch.enabled = true or pass --force)")
			}
			lock := flock.New(filepath.Join(cfg.Paths.LogDir, watchLockName))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire watch lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another engage watch is already running (lock %s)", lock.Path())
			}
			defer func() { _ = lock.Unlock() }()

			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				return runWatch(c, sess)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Watch even when watch.enabled is false")
	return cmd
}

func runWatch(ctx context.Context, sess *session) error {
	cfg := sess.cfg
	logger := logging.NewComponentLogger(sess.logger, "watch")

	prefetch := func(ctx context.Context, cat *catalog.Catalog) {
		if !cfg.Prefetch.Enabled {
			return
		}
		_, err := catalog.Prefetch(ctx, cat, catalog.PrefetchOptions{
			Thumbnails: cfg.Prefetch.Thumbnails,
			Full:       cfg.Prefetch.Full,
			Workers:    cfg.Prefetch.Workers,
			Logger:     sess.logger,
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("prefetch failed", logging.Error(err))
		}
	}
	prefetch(ctx, sess.catalog)

	watcher, err := watch.New(cfg.Paths.LibraryDir, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, sess.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info("watching library", logging.String("root", cfg.Paths.LibraryDir))
	return watcher.Run(ctx, func(ctx context.Context) error {
		cat, err := catalog.Load(cfg.Paths.LibraryDir,
			catalog.WithLogger(sess.logger),
			catalog.WithDimensions(dimensionsFor(cfg)),
		)
		if err != nil {
			return err
		}
		if err := sess.store.Reload(ctx, cat); err != nil {
			return err
		}
		sess.catalog = cat
		prefetch(ctx, cat)
		return nil
	})
}
