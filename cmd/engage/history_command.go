package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"engage/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var filter journal.Filter
	var kinds []string
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent profile changes from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled (journal.enabled = false)")
			}
			c := ctx.commandCtx(cmd)
			store, err := journal.Open(c, cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, kind := range kinds {
				filter.Kinds = append(filter.Kinds, journal.Kind(strings.TrimSpace(kind)))
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}
			events, err := store.List(c, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No journal entries")
				return nil
			}
			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.Time.Local().Format("2006-01-02 15:04:05"),
					string(event.Kind),
					event.Instructor,
					event.Program,
					event.Station,
					event.Detail,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Time", "Event", "Instructor", "Program", "Station", "Detail"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Instructor, "instructor", "", "Only show events for this instructor")
	cmd.Flags().StringVar(&filter.Program, "program", "", "Only show events for this program")
	cmd.Flags().StringVar(&filter.SessionID, "session", "", "Only show events recorded by this CLI session")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only show these event kinds (repeatable)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show events newer than this (e.g. 24h)")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 50, "Maximum number of events")
	return cmd
}
