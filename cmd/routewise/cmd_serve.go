package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/routewise/server"
)

func newServeCmd() *cobra.Command {
	var timeoutSeconds int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve planning requests over JSON-RPC on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs go to stderr.
			svc := &server.PlanService{
				Facade:  newFacade(timeoutSeconds),
				Catalog: cat,
				Logger:  log.New(os.Stderr, "routewise-rpc ", log.LstdFlags),
			}
			return svc.ServeStdio(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Engine time budget in seconds (0 = catalog value)")
	return cmd
}
