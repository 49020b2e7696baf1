package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/salita/internal/app"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/quiz"
)

func newQuizCmd() *cobra.Command {
	var favouritesOnly bool
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a multiple-choice quiz on the terminal",
		Long:  "Answer with the option number, q stops early.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := domain.QuizSourceAll
			if favouritesOnly {
				source = domain.QuizSourceFavourites
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return playQuiz(ctx, a.NewQuiz(), source, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().BoolVar(&favouritesOnly, "favourites", false, "quiz on favourites only")
	return cmd
}

// playQuiz runs sessions until the player declines another round or input
// ends.
func playQuiz(ctx context.Context, eng *quiz.Engine, source domain.QuizSource, in io.Reader, out io.Writer) error {
	defer eng.Close()
	sc := bufio.NewScanner(in)

	q, err := eng.Start(ctx, source)
	for {
		if err != nil {
			return err
		}
		if err := playRound(ctx, eng, q, sc, out); err != nil {
			return err
		}
		printSummary(eng, out)

		fmt.Fprint(out, "Play again? [y/N] ")
		if !sc.Scan() || !strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
			return sc.Err()
		}
		q, err = eng.Restart(ctx)
	}
}

func playRound(ctx context.Context, eng *quiz.Engine, q *quiz.Question, sc *bufio.Scanner, out io.Writer) error {
	for q != nil {
		titleColor.Fprintf(out, "\n[%d/%d] %s\n", q.Number, q.Total, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		choice, stop, err := readChoice(sc, out, len(q.Options))
		if err != nil {
			return err
		}
		if stop {
			return eng.StopEarly(ctx)
		}

		outcome, err := eng.Answer(q.Options[choice])
		if err != nil {
			return err
		}
		if outcome.Correct {
			okColor.Fprintln(out, "Tama! Correct.")
		} else {
			errColor.Fprintf(out, "Mali. The answer is %s.\n", outcome.CorrectAnswer)
		}

		if _, q, err = eng.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// readChoice prompts until a valid option number or q. End of input stops
// the round.
func readChoice(sc *bufio.Scanner, out io.Writer, n int) (choice int, stop bool, err error) {
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return 0, true, sc.Err()
		}
		text := strings.TrimSpace(sc.Text())
		if strings.EqualFold(text, "q") {
			return 0, true, nil
		}
		if i, err := strconv.Atoi(text); err == nil && i >= 1 && i <= n {
			return i - 1, false, nil
		}
		warnColor.Fprintf(out, "enter 1-%d or q\n", n)
	}
}

func printSummary(eng *quiz.Engine, out io.Writer) {
	s := eng.Summary()
	label := "Score"
	if s.StoppedEarly {
		label = "Stopped early, score"
	}
	titleColor.Fprintf(out, "\n%s: %s\n", label, s)

	mistakes, err := eng.MistakesReview()
	if err != nil || len(mistakes) == 0 {
		return
	}
	fmt.Fprintln(out, "Review:")
	printEntries(out, mistakes, nil)
}
