package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/routewise/engines"
)

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "Show which planning engines this environment supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := engines.DefaultRegistry(logger)
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("Planning engines"))
			for _, d := range registry.Detect(cmd.Context()) {
				marker := successStyle.Render("available")
				if !d.Available {
					marker = dimStyle.Render("unavailable")
				}
				desc := cat.Engines[d.Name].Description
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-12s %s\n", d.Name, marker, dimStyle.Render(desc))
			}
			return nil
		},
	}
}
