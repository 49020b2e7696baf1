package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/salita/internal/app"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/favourites"
	"github.com/heartmarshall/salita/internal/service/vocabulary"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and the backup scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List, add and delete vocabulary words",
	}

	var userOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List the vocabulary, built-in words first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				words := a.Vocabulary.Snapshot()
				if userOnly {
					words = a.Vocabulary.UserWords()
				}
				printEntries(cmd.OutOrStdout(), words, func(e domain.WordEntry) string {
					var m string
					if a.Vocabulary.IsUserWord(e) {
						m += dimColor.Sprint("[user]")
					}
					if a.Favourites.Contains(e) {
						m += markColor.Sprint("★")
					}
					return m
				})
				return nil
			})
		},
	}
	list.Flags().BoolVar(&userOnly, "user", false, "only words you added")

	add := &cobra.Command{
		Use:   "add <filipino> <english>",
		Short: "Add a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				stored, err := a.Vocabulary.AddUserWord(ctx, entryArgs(args))
				if errors.Is(err, domain.ErrAlreadyExists) {
					warnColor.Fprintf(cmd.OutOrStdout(), "%s is already in the vocabulary\n", entryArgs(args))
					return nil
				}
				if err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "added %s\n", stored)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <filipino> <english>",
		Short: "Delete a word you added (also removes it from favourites)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				entry := entryArgs(args)
				if err := a.Vocabulary.DeleteUserWord(ctx, entry); err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return fmt.Errorf("%s is not one of your words: %w", entry, err)
					}
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "deleted %s\n", entry)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func newFavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favourite words",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favourites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				printEntries(cmd.OutOrStdout(), a.Favourites.List(), nil)
				return nil
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <filipino> <english>",
		Short: "Mark a vocabulary word as favourite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				words := a.Vocabulary.Snapshot()
				idx := domain.IndexOf(words, entryArgs(args))
				if idx < 0 {
					return fmt.Errorf("%s: %w", entryArgs(args), domain.ErrNotFound)
				}
				if err := a.Favourites.Add(ctx, words[idx]); err != nil {
					if errors.Is(err, domain.ErrAlreadyExists) {
						warnColor.Fprintf(cmd.OutOrStdout(), "%s is already a favourite\n", words[idx])
						return nil
					}
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "★ %s\n", words[idx])
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove the favourite with the number shown by `fav list`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("number must be an integer: %w", err)
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Favourites.Remove(ctx, n-1); err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "removed favourite %d\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [key]",
		Short: "Show saved versions of a stored list (postgres only)",
		Long:  "Keys are " + vocabulary.StorageKey + " (default) and " + favourites.StorageKey + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := vocabulary.StorageKey
			if len(args) == 1 {
				key = args[0]
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				revs, err := a.Revisions(ctx, key, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(revs) == 0 {
					dimColor.Fprintln(out, "(no history)")
				}
				for _, rev := range revs {
					entries, err := domain.UnmarshalEntries(rev.Value)
					if err != nil {
						warnColor.Fprintf(out, "%s  unreadable: %v\n", rev.SavedAt.Format("2006-01-02 15:04:05"), err)
						continue
					}
					titleColor.Fprintf(out, "%s  %d words\n", rev.SavedAt.Local().Format("2006-01-02 15:04:05"), len(entries))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of versions to show")
	return cmd
}
