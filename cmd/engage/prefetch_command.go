package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"engage/internal/catalog"
)

func newPrefetchCommand(ctx *commandContext) *cobra.Command {
	var thumbs, full bool
	var workers int

	cmd := &cobra.Command{
		Use:   "prefetch [program]",
		Short: "Decode renditions ahead of use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			opts := catalog.PrefetchOptions{
				Thumbnails: cfg.Prefetch.Thumbnails,
				Full:       cfg.Prefetch.Full,
				Workers:    cfg.Prefetch.Workers,
				Logger:     logger,
			}
			if len(args) == 1 {
				opts.Program = args[0]
			}
			if cmd.Flags().Changed("thumbnails") {
				opts.Thumbnails = thumbs
			}
			if cmd.Flags().Changed("full") {
				opts.Full = full
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			result, err := catalog.Prefetch(ctx.commandCtx(cmd), cat, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Prefetched %d items: %d thumbnails, %d full, %d failed in %s\n",
				result.Items, result.Thumbnails, result.Full, result.Failed, result.Elapsed.Round(1e6))
			return nil
		},
	}

	cmd.Flags().BoolVar(&thumbs, "thumbnails", true, "Decode thumbnail renditions")
	cmd.Flags().BoolVar(&full, "full", false, "Decode full renditions")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent decoders (defaults to prefetch.workers)")
	return cmd
}
