package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPickCmd() *cobra.Command {
	var timeoutSeconds int
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick an engine, domain, and problem, then solve",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			model := newPickerModel(ctx, cat, newFacade(timeoutSeconds))
			program := tea.NewProgram(model, tea.WithAltScreen())
			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(pickerModel); ok && m.failure != "" {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Engine time budget in seconds (0 = catalog value)")
	return cmd
}
