package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexcodex/routewise/catalog"
	"github.com/lexcodex/routewise/engines"
)

var (
	flagCatalogPath string
	flagVerbose     bool

	cat    *catalog.Catalog
	logger *log.Logger
)

// Exit contract: 0 success, 1 planning/input failure, 2 missing
// invocation arguments.
var (
	errUsage    = errors.New("missing required arguments")
	errReported = errors.New("failure already reported")
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, errUsage):
			fmt.Fprintln(os.Stderr, errorStyle.Render("usage:")+" "+err.Error())
			os.Exit(2)
		case errors.Is(err, errReported):
			os.Exit(1)
		default:
			fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
			os.Exit(1)
		}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routewise",
		Short:         "Symbolic navigation planning for a single robot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagCatalogPath == "" {
				flagCatalogPath = catalog.DefaultPath(".")
			}
			loaded, err := catalog.Load(flagCatalogPath)
			if err != nil {
				return err
			}
			cat = loaded
			logger = log.New(io.Discard, "", log.LstdFlags)
			if flagVerbose {
				logger = log.New(os.Stderr, "routewise ", log.LstdFlags)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagCatalogPath, "catalog", "", "Path to routewise.yaml")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log engine activity to stderr")

	root.AddCommand(newSolveCmd(), newEnginesCmd(), newListCmd(), newServeCmd(), newPickCmd())
	return root
}

// newFacade wires a facade from the loaded catalog; a positive
// timeoutSeconds overrides the catalog budget.
func newFacade(timeoutSeconds int) *engines.Facade {
	timeout := cat.Timeout()
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return engines.NewFacade(engines.DefaultRegistry(logger), timeout, cat.LabelTable(), logger)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
