package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/salita/internal/app"
	"github.com/heartmarshall/salita/internal/config"
	"github.com/heartmarshall/salita/internal/domain"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgHiRed)
	titleColor = color.New(color.FgHiCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
	markColor  = color.New(color.FgHiYellow, color.Bold)
)

// withApp loads the configuration, opens the store and runs fn. CLI commands
// log warnings and errors only, to stderr.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Log.Level = cliLogLevel(cfg.Log.Level)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, app.NewLogger(cfg.Log))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.Log.Error("close store", slog.String("error", cerr.Error()))
		}
	}()

	return fn(ctx, a)
}

func cliLogLevel(level string) string {
	if level == "debug" || level == "error" {
		return level
	}
	return "warn"
}

func entryArgs(args []string) domain.WordEntry {
	return domain.NewWordEntry(args[0], args[1])
}

func printEntries(w io.Writer, entries []domain.WordEntry, mark func(domain.WordEntry) string) {
	if len(entries) == 0 {
		dimColor.Fprintln(w, "(empty)")
		return
	}
	width := len(strconv.Itoa(len(entries)))
	for i, e := range entries {
		fmt.Fprintf(w, "%*d. %s %s %s", width, i+1, e.Source, dimColor.Sprint("-"), e.Target)
		if mark != nil {
			if m := mark(e); m != "" {
				fmt.Fprint(w, " ", m)
			}
		}
		fmt.Fprintln(w)
	}
}
