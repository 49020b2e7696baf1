// Command salita is the Filipino-English vocabulary trainer. `salita serve`
// runs the REST API; the other subcommands work on the same store directly.
//
// Configuration comes from config.yaml (or --config / CONFIG_PATH), a .env
// file and the environment.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called above
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "salita",
		Short:         "Filipino-English vocabulary flashcards and quizzes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv("CONFIG_PATH", configPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (overrides CONFIG_PATH)")

	root.AddCommand(
		newServeCmd(),
		newWordsCmd(),
		newFavCmd(),
		newQuizCmd(),
		newSearchCmd(),
		newImportCmd(),
		newExportCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)
	return root
}
