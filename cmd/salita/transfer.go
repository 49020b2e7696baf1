package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/salita/internal/app"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/transfer"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from an .xlsx, .csv or .json file",
		Long: "Column A (or the filipino field) is the Filipino text and column B " +
			"(or the english field) the English text. A header row is skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := a.Transfer.Import(ctx, args[0])
				printImportResult(cmd.OutOrStdout(), res)
				return err
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the vocabulary and favourites",
		Long:  "The format is taken from the file extension unless --format is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := exportFormat(path, format)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Transfer.Export(ctx, path, f); err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "exported %d words to %s\n", len(a.Vocabulary.Snapshot()), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "xlsx, json or yaml")
	return cmd
}

func exportFormat(path, flag string) (domain.ExportFormat, error) {
	if flag == "" {
		return transfer.FormatFromPath(path)
	}
	f := domain.ExportFormat(strings.ToLower(flag))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q: %w", flag, domain.ErrValidation)
	}
	return f, nil
}

func printImportResult(w io.Writer, res transfer.ImportResult) {
	fmt.Fprintf(w, "processed %d, ", res.Processed)
	okColor.Fprintf(w, "created %d", res.Created)
	fmt.Fprint(w, ", ")
	dimColor.Fprintf(w, "skipped %d", res.Skipped)
	fmt.Fprintln(w)
	for _, e := range res.Errors {
		errColor.Fprintf(w, "  row %d: %s\n", e.Row, e.Message)
	}
}
