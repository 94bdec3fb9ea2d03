package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"engage/internal/logging"
	"engage/internal/queue"
)

func newQueuesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues <instructor> <program>",
		Short: "Show an instructor's station queues for a program",
		Long: "Show an instructor's station queues for a program.\n\n" +
			"The lookup reconciles the instructor against the default profile and the library, " +
			"creating the instructor or seeding the program when missing, and saves any change.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				instructor, program := args[0], args[1]
				stations, err := sess.store.StationQueues(c, instructor, program)
				if stations == nil && err != nil {
					return err
				}
				if err != nil {
					sess.logger.Warn("station queues served but not saved",
						logging.String(logging.FieldInstructor, instructor),
						logging.String(logging.FieldProgram, program),
						logging.Error(err),
					)
				}
				writeStationQueues(cmd.OutOrStdout(), instructor, program, stations)
				return err
			})
		},
	}

	cmd.AddCommand(newQueuesRemoveStationCommand(ctx))
	cmd.AddCommand(newQueuesRemoveProgramCommand(ctx))
	return cmd
}

func writeStationQueues(out io.Writer, instructor, program string, stations []*queue.StationQueue) {
	writeHeading(out, fmt.Sprintf("%s / %s", instructor, program))
	if len(stations) == 0 {
		fmt.Fprintln(out, "No stations")
		return
	}
	var rows [][]string
	for _, station := range stations {
		groups := station.Groups()
		if len(groups) == 0 {
			rows = append(rows, []string{station.Name(), "", "", ""})
			continue
		}
		for _, group := range groups {
			paths := group.Paths()
			if len(paths) == 0 {
				rows = append(rows, []string{station.Name(), group.Name(), "", ""})
				continue
			}
			for i, path := range paths {
				rows = append(rows, []string{station.Name(), group.Name(), strconv.Itoa(i), path})
			}
		}
	}
	fmt.Fprintln(out, renderTable([]string{"Station", "Group", "#", "File"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
}

func newQueuesRemoveStationCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-station <instructor> <program> <station>",
		Short: "Drop a station queue from an instructor's program",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				if err := sess.store.RemoveStationQueue(c, args[0], args[1], args[2]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed station %s from %s/%s\n", args[2], args[0], args[1])
				return nil
			})
		},
	}
}

func newQueuesRemoveProgramCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-program <instructor> <program>",
		Short: "Drop a program from an instructor's profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				if err := sess.store.RemoveProgramQueue(c, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed program %s from %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func newInstructorsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructors",
		Short: "List instructors with saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				out := cmd.OutOrStdout()
				names := sess.store.Instructors()
				if len(names) == 0 {
					fmt.Fprintln(out, "No instructors")
					return nil
				}
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					profile, _ := sess.store.Profile(name)
					programs := 0
					if profile != nil {
						programs = len(profile.Programs())
					}
					rows = append(rows, []string{name, strconv.Itoa(programs)})
				}
				fmt.Fprintln(out, renderTable([]string{"Instructor", "Programs"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.AddCommand(newInstructorsRemoveCommand(ctx))
	return cmd
}

func newInstructorsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>...",
		Short: "Delete instructor profiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				out := cmd.OutOrStdout()
				var errs []error
				for _, name := range args {
					if err := sess.store.RemoveInstructor(c, name); err != nil {
						if errors.Is(err, queue.ErrNotFound) {
							fmt.Fprintf(out, "Instructor %s not found\n", name)
							continue
						}
						errs = append(errs, err)
						continue
					}
					fmt.Fprintf(out, "Removed instructor %s\n", name)
				}
				return errors.Join(errs...)
			})
		},
	}
}
