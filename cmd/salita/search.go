package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/salita/internal/app"
	"github.com/heartmarshall/salita/internal/service/search"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the vocabulary, falling back to translation",
		Long: "With a query, prints its suggestions. Without one, reads queries " +
			"line by line and prints the suggestions of the latest one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				if len(args) > 0 {
					query := strings.Join(args, " ")
					found, err := a.Search.Search(ctx, query)
					if err != nil {
						return err
					}
					printSuggestions(out, query, found)
					return nil
				}
				return interactiveSearch(ctx, a.Search.Search, a.Config.Search.Debounce, cmd.InOrStdin(), out)
			})
		},
	}
}

// interactiveSearch feeds every input line to a Debouncer and prints only
// results that are still current when they arrive. After the input ends it
// waits for the last query's result.
func interactiveSearch(ctx context.Context, fn search.SearchFunc, delay time.Duration, in io.Reader, out io.Writer) error {
	var (
		d        *search.Debouncer
		mu       sync.Mutex
		shown    uint64
		final    uint64
		finished = make(chan struct{})
	)
	d = search.NewDebouncer(delay, fn, func(r search.Result) {
		mu.Lock()
		defer mu.Unlock()

		if d.IsCurrent(r.Generation) {
			if r.Err != nil {
				errColor.Fprintf(out, "search %q: %v\n", r.Query, r.Err)
			} else {
				printSuggestions(out, r.Query, r.Suggestions)
			}
		}
		shown = max(shown, r.Generation)
		if final != 0 && r.Generation == final {
			close(finished)
		}
	})
	defer d.Stop()

	var last uint64
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		last = d.Trigger(ctx, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return err
	}

	mu.Lock()
	final = last
	done := last == 0 || shown >= last
	mu.Unlock()
	if done {
		return nil
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func printSuggestions(out io.Writer, query string, found []search.Suggestion) {
	if len(found) == 0 {
		dimColor.Fprintf(out, "no matches for %q\n", query)
		return
	}
	for _, s := range found {
		line := fmt.Sprintf("%s %s %s", highlight(s.Entry.Source, query), dimColor.Sprint("-"), highlight(s.Entry.Target, query))
		switch {
		case s.IsExternal && s.InVocabulary:
			line += dimColor.Sprint(" [translation, already saved]")
		case s.IsExternal:
			line += warnColor.Sprint(" [translation]")
		}
		fmt.Fprintln(out, line)
	}
}

// highlight wraps query matches in the mark colour. Without colour support
// matches are bracketed instead.
func highlight(text, query string) string {
	segments := search.Highlight(text, query)
	if color.NoColor {
		return search.Mark(segments, "[", "]")
	}
	open, end, _ := strings.Cut(markColor.Sprint("\x00"), "\x00")
	return search.Mark(segments, open, end)
}
