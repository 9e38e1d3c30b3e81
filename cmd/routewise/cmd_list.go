package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/routewise/catalog"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <engines|domains|problems|formats>",
		Short: "List catalog registries",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: list needs one registry name", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries map[string]catalog.Entry
			switch args[0] {
			case "engines", "planners":
				entries = cat.Engines
			case "domains":
				entries = cat.Domains
			case "problems":
				entries = cat.Problems
			case "formats":
				entries = cat.Formats
			default:
				return fmt.Errorf("unknown registry %q", args[0])
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("catalog has no "+args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("Available "+args[0]))
			for _, key := range catalog.Keys(entries) {
				entry := entries[key]
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", key, entry.Name)
				if entry.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", dimStyle.Render(entry.Description))
				}
				if entry.File != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", dimStyle.Render("file: "+entry.File))
				}
			}
			return nil
		},
	}
	return cmd
}
