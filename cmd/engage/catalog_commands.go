package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"engage/internal/catalog"
)

func newProgramsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List programs found in the media library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			programs := cat.Programs()
			if len(programs) == 0 {
				fmt.Fprintln(out, "No programs found")
				return nil
			}
			rows := make([][]string, 0, len(programs))
			for _, program := range programs {
				rows = append(rows, []string{
					program.Name(),
					strconv.Itoa(len(program.Stations())),
					strconv.Itoa(len(program.Items())),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Program", "Stations", "Items"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
			return nil
		},
	}
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [program]",
		Short: "Show the station/category/item tree of the library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			programs := cat.Programs()
			if len(args) == 1 {
				program, err := cat.Program(args[0])
				if err != nil {
					return err
				}
				programs = []*catalog.Program{program}
			}

			var rows [][]string
			for _, program := range programs {
				for _, station := range program.Stations() {
					for _, category := range station.Categories() {
						items := category.Items()
						if len(items) == 0 {
							rows = append(rows, []string{program.Name(), station.Name(), category.Name(), "(empty)", ""})
							continue
						}
						for _, item := range items {
							rows = append(rows, []string{program.Name(), station.Name(), category.Name(), item.Name(), item.DisplayName()})
						}
					}
				}
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No programs found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Program", "Station", "Category", "File", "Display"}, rows, nil))
			stats := cat.Stats()
			fmt.Fprintf(out, "%d programs, %d stations, %d categories, %d items\n", stats.Programs, stats.Stations, stats.Categories, stats.Items)
			return nil
		},
	}
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "resolve <program/station/category/file>",
		Short: "Resolve a media path against the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			item, err := cat.Resolve(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:    %s\n", item.Path())
			fmt.Fprintf(out, "Display: %s\n", item.DisplayName())
			fmt.Fprintf(out, "Kind:    %s\n", item.Kind())
			fmt.Fprintf(out, "Source:  %s\n", item.SourcePath())
			if !render {
				return nil
			}

			thumb, err := item.Thumbnail()
			if err != nil {
				return err
			}
			full, err := item.Full()
			if err != nil {
				return err
			}
			tb, fb := thumb.Bounds(), full.Bounds()
			fmt.Fprintf(out, "Thumb:   %dx%d\n", tb.Dx(), tb.Dy())
			fmt.Fprintf(out, "Full:    %dx%d\n", fb.Dx(), fb.Dy())
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Decode both renditions and print their sizes")
	return cmd
}
