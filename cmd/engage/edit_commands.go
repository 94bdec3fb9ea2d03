package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// stationArgs are the leading positional arguments shared by edit commands.
const stationArgs = "<instructor> <program> <station>"

func newGroupCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Edit the groups of a station queue",
	}
	cmd.AddCommand(
		newStationEditCommand(ctx, "add "+stationArgs+" <group>", "Add an empty group", 4,
			func(c context.Context, sess *session, args []string) (string, error) {
				return fmt.Sprintf("Added group %s", args[3]),
					sess.store.AddGroup(c, args[0], args[1], args[2], args[3])
			}),
		newStationEditCommand(ctx, "rename "+stationArgs+" <old> <new>", "Rename a group", 5,
			func(c context.Context, sess *session, args []string) (string, error) {
				return fmt.Sprintf("Renamed group %s to %s", args[3], args[4]),
					sess.store.RenameGroup(c, args[0], args[1], args[2], args[3], args[4])
			}),
		newStationEditCommand(ctx, "remove "+stationArgs+" <group>", "Remove a group and its members", 4,
			func(c context.Context, sess *session, args []string) (string, error) {
				return fmt.Sprintf("Removed group %s", args[3]),
					sess.store.RemoveGroup(c, args[0], args[1], args[2], args[3])
			}),
		newStationEditCommand(ctx, "move "+stationArgs+" <group> <index>", "Move a group to a new position", 5,
			func(c context.Context, sess *session, args []string) (string, error) {
				index, err := parseIndex(args[4])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved group %s to %d", args[3], index),
					sess.store.MoveGroup(c, args[0], args[1], args[2], args[3], index)
			}),
	)
	return cmd
}

func newItemCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Edit the members of a group",
	}
	cmd.AddCommand(
		newStationEditCommand(ctx, "add "+stationArgs+" <group> <path>", "Append a media item to a group", 5,
			func(c context.Context, sess *session, args []string) (string, error) {
				return fmt.Sprintf("Added %s to %s", args[4], args[3]),
					sess.store.AddItem(c, args[0], args[1], args[2], args[3], args[4])
			}),
		newStationEditCommand(ctx, "remove "+stationArgs+" <group> <index>", "Remove the member at index", 5,
			func(c context.Context, sess *session, args []string) (string, error) {
				index, err := parseIndex(args[4])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed member %d from %s", index, args[3]),
					sess.store.RemoveItem(c, args[0], args[1], args[2], args[3], index)
			}),
		newStationEditCommand(ctx, "move "+stationArgs+" <from-group> <index> <to-group>", "Move a member to the end of another group", 6,
			func(c context.Context, sess *session, args []string) (string, error) {
				index, err := parseIndex(args[4])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved member %d from %s to %s", index, args[3], args[5]),
					sess.store.MoveItem(c, args[0], args[1], args[2], args[3], index, args[5])
			}),
	)
	return cmd
}

type stationEdit func(context.Context, *session, []string) (string, error)

func newStationEditCommand(ctx *commandContext, use, short string, nargs int, edit stationEdit) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(c context.Context, sess *session) error {
				message, err := edit(c, sess, args)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), message)
				return nil
			})
		},
	}
}
