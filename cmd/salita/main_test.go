package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/quiz"
	"github.com/heartmarshall/salita/internal/service/search"
	"github.com/heartmarshall/salita/internal/service/transfer"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type wordsStub []domain.WordEntry

func (w wordsStub) Snapshot() []domain.WordEntry { return w }
func (w wordsStub) List() []domain.WordEntry     { return w }

var quizWords = wordsStub{
	{Source: "Kain", Target: "Eat"},
	{Source: "Inom", Target: "Drink"},
	{Source: "Tulog", Target: "Sleep"},
	{Source: "Takbo", Target: "Run"},
}

func newTestEngine() *quiz.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rng := rand.New(rand.NewSource(3)) //nolint:gosec // deterministic test seed
	return quiz.NewEngine(logger, quizWords, quizWords, rng, quiz.Options{DistinctOptions: true})
}

func TestPlayQuiz_StopImmediately(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := playQuiz(context.Background(), newTestEngine(), domain.QuizSourceAll, strings.NewReader("q\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "[1/4]")
	assert.Contains(t, out.String(), "Stopped early, score: 0/0")
	assert.NotContains(t, out.String(), "Review:")
}

func TestPlayQuiz_FullRoundThenAgain(t *testing.T) {
	t.Parallel()

	// Four answers, play again, then stop on the first question.
	in := strings.NewReader("1\n1\n1\n1\ny\nq\n")
	var out bytes.Buffer
	err := playQuiz(context.Background(), newTestEngine(), domain.QuizSourceAll, in, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[4/4]")
	assert.Regexp(t, `Score: \d/4`, text)
	assert.Equal(t, 2, strings.Count(text, "Play again?"), "both rounds end with the prompt")
	assert.Contains(t, text, "Stopped early, score: 0/0")
}

func TestPlayQuiz_RejectsBadChoice(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := playQuiz(context.Background(), newTestEngine(), domain.QuizSourceAll, strings.NewReader("9\nabc\nq\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), "enter 1-4 or q"))
}

func TestPlayQuiz_InsufficientWords(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := quiz.NewEngine(logger, quizWords[:2], quizWords[:2], rand.New(rand.NewSource(1)), quiz.Options{}) //nolint:gosec // deterministic test seed

	err := playQuiz(context.Background(), eng, domain.QuizSourceAll, strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, domain.ErrInsufficientWords)
}

func TestInteractiveSearch_OnlyLastQueryPrinted(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		queries []string
	)
	fn := func(_ context.Context, q string) ([]search.Suggestion, error) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		return []search.Suggestion{{Entry: domain.WordEntry{Source: "Kain", Target: "Eat"}}}, nil
	}

	var out bytes.Buffer
	err := interactiveSearch(context.Background(), fn, 30*time.Millisecond, strings.NewReader("k\nka\nkain\n"), &out)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"kain"}, queries)
	assert.Equal(t, "[Kain] - Eat\n", out.String())
}

func TestInteractiveSearch_EmptyInput(t *testing.T) {
	t.Parallel()

	fn := func(context.Context, string) ([]search.Suggestion, error) {
		t.Error("search must not run")
		return nil, nil
	}
	err := interactiveSearch(context.Background(), fn, time.Millisecond, strings.NewReader(""), io.Discard)
	assert.NoError(t, err)
}

func TestInteractiveSearch_ErrorPrinted(t *testing.T) {
	t.Parallel()

	fn := func(context.Context, string) ([]search.Suggestion, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	err := interactiveSearch(context.Background(), fn, time.Millisecond, strings.NewReader("x\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `search "x": boom`)
}

func TestPrintSuggestions(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printSuggestions(&out, "ta", []search.Suggestion{
		{Entry: domain.WordEntry{Source: "Takbo", Target: "Run"}},
		{Entry: domain.WordEntry{Source: "Bata", Target: "Child"}, IsExternal: true},
		{Entry: domain.WordEntry{Source: "Tama", Target: "Correct"}, IsExternal: true, InVocabulary: true},
	})

	assert.Equal(t,
		"[Ta]kbo - Run\n"+
			"Ba[ta] - Child [translation]\n"+
			"[Ta]ma - Correct [translation, already saved]\n",
		out.String())

	out.Reset()
	printSuggestions(&out, "zzz", nil)
	assert.Equal(t, "no matches for \"zzz\"\n", out.String())
}

func TestPrintEntries(t *testing.T) {
	t.Parallel()

	words := make([]domain.WordEntry, 10)
	for i := range words {
		words[i] = domain.WordEntry{Source: "s", Target: "t"}
	}
	words[9] = domain.WordEntry{Source: "Kain", Target: "Eat"}

	var out bytes.Buffer
	printEntries(&out, words, func(e domain.WordEntry) string {
		if e.Source == "Kain" {
			return "★"
		}
		return ""
	})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, " 1. s - t", lines[0])
	assert.Equal(t, "10. Kain - Eat ★", lines[9])

	out.Reset()
	printEntries(&out, nil, nil)
	assert.Equal(t, "(empty)\n", out.String())
}

func TestExportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		flag    string
		want    domain.ExportFormat
		wantErr bool
	}{
		{name: "from extension", path: "words.yaml", want: domain.ExportFormatYAML},
		{name: "flag wins", path: "words.out", flag: "JSON", want: domain.ExportFormatJSON},
		{name: "unknown flag", path: "words.xlsx", flag: "csv", wantErr: true},
		{name: "unknown extension", path: "words.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := exportFormat(tt.path, tt.flag)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintImportResult(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printImportResult(&out, transfer.ImportResult{
		Processed: 3,
		Created:   1,
		Skipped:   1,
		Errors:    []transfer.RowError{{Row: 4, Message: "english: is required"}},
	})
	assert.Equal(t, "processed 3, created 1, skipped 1\n  row 4: english: is required\n", out.String())
}

func TestCLILogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "debug", cliLogLevel("debug"))
	assert.Equal(t, "error", cliLogLevel("error"))
	assert.Equal(t, "warn", cliLogLevel("info"))
	assert.Equal(t, "warn", cliLogLevel(""))
}
