package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/heartmarshall/salita/internal/domain"
)

// MinWords is the smallest collection a quiz can be started from: one correct
// answer plus three distractors.
const MinWords = OptionCount

type wordSource interface {
	Snapshot() []domain.WordEntry
}

type favouritesSource interface {
	List() []domain.WordEntry
}

// Options tunes question generation.
type Options struct {
	// DistinctOptions avoids visibly duplicate choices when the collection
	// has enough distinct target texts.
	DistinctOptions bool
}

// Engine runs one quiz session at a time: IDLE -> IN_PROGRESS -> FINISHED.
// It reads from its sources but never writes to them. Not safe for
// concurrent use.
type Engine struct {
	log             *slog.Logger
	words           wordSource
	favourites      favouritesSource
	rng             *rand.Rand
	distinctOptions bool

	state        domain.QuizState
	source       domain.QuizSource
	started      bool
	set          []domain.WordEntry
	cursor       int
	score        int
	total        int
	mistakes     []domain.WordEntry
	answered     bool
	stoppedEarly bool
	question     *Question
}

// NewEngine creates an idle Engine.
func NewEngine(log *slog.Logger, words wordSource, favourites favouritesSource, rng *rand.Rand, opts Options) *Engine {
	return &Engine{
		log:             log.With("service", "quiz"),
		words:           words,
		favourites:      favourites,
		rng:             rng,
		distinctOptions: opts.DistinctOptions,
		state:           domain.QuizStateIdle,
	}
}

// Start begins a new session over a shuffled copy of the chosen collection
// and returns its first question. On error the engine is left unchanged.
func (e *Engine) Start(ctx context.Context, source domain.QuizSource) (*Question, error) {
	var words []domain.WordEntry
	switch source {
	case domain.QuizSourceAll:
		words = e.words.Snapshot()
	case domain.QuizSourceFavourites:
		words = e.favourites.List()
	default:
		return nil, domain.NewValidationError("source", "must be ALL or FAVOURITES")
	}
	if len(words) < MinWords {
		return nil, fmt.Errorf("%s has %d words, need %d: %w",
			source, len(words), MinWords, domain.ErrInsufficientWords)
	}

	set := slices.Clone(words)
	Shuffle(e.rng, set)

	e.source = source
	e.started = true
	e.set = set
	e.cursor = 0
	e.score = 0
	e.total = len(set)
	e.mistakes = nil
	e.answered = false
	e.stoppedEarly = false
	e.state = domain.QuizStateInProgress
	e.question = e.buildQuestion()

	e.log.InfoContext(ctx, "quiz started",
		slog.String("source", source.String()),
		slog.Int("questions", len(set)),
	)
	return e.question, nil
}

// Restart starts a fresh session from the source used last time.
func (e *Engine) Restart(ctx context.Context) (*Question, error) {
	if !e.started {
		return nil, fmt.Errorf("restart before start: %w", domain.ErrInvalidState)
	}
	return e.Start(ctx, e.source)
}

// CurrentQuestion returns the question at the cursor. Repeated calls return
// the same question with the same option order.
func (e *Engine) CurrentQuestion() (*Question, bool) {
	if e.state != domain.QuizStateInProgress {
		return nil, false
	}
	return e.question, true
}

// Answer scores the current question once. Further answers to the same
// question report AlreadyAnswered.
func (e *Engine) Answer(option string) (AnswerOutcome, error) {
	if e.state != domain.QuizStateInProgress {
		return AnswerOutcome{}, fmt.Errorf("answer in state %s: %w", e.state, domain.ErrInvalidState)
	}
	q := e.question
	if e.answered {
		return AnswerOutcome{CorrectAnswer: q.Correct, AlreadyAnswered: true}, nil
	}

	e.answered = true
	correct := option == q.Correct
	if correct {
		e.score++
	} else {
		e.mistakes = append(e.mistakes, q.Entry)
	}
	return AnswerOutcome{Correct: correct, CorrectAnswer: q.Correct}, nil
}

// Advance moves to the next question, or finishes the session after the
// last one. It returns the new state and, while in progress, the question.
func (e *Engine) Advance() (domain.QuizState, *Question, error) {
	if e.state != domain.QuizStateInProgress {
		return e.state, nil, fmt.Errorf("advance in state %s: %w", e.state, domain.ErrInvalidState)
	}
	if e.cursor+1 >= len(e.set) {
		e.state = domain.QuizStateFinished
		e.question = nil
		e.log.Info("quiz finished", slog.String("score", e.Summary().String()))
		return e.state, nil, nil
	}

	e.cursor++
	e.answered = false
	e.question = e.buildQuestion()
	return e.state, e.question, nil
}

// StopEarly finishes an in-progress session. The summary total counts the
// questions passed, plus the current one when it was answered.
func (e *Engine) StopEarly(ctx context.Context) error {
	if e.state != domain.QuizStateInProgress {
		return fmt.Errorf("stop in state %s: %w", e.state, domain.ErrInvalidState)
	}
	e.total = e.cursor
	if e.answered {
		e.total++
	}
	e.stoppedEarly = true
	e.state = domain.QuizStateFinished
	e.question = nil

	e.log.InfoContext(ctx, "quiz stopped early", slog.String("score", e.Summary().String()))
	return nil
}

// Close discards the session and returns to IDLE. The last source is kept
// for Restart.
func (e *Engine) Close() {
	e.state = domain.QuizStateIdle
	e.set = nil
	e.cursor = 0
	e.score = 0
	e.total = 0
	e.mistakes = nil
	e.answered = false
	e.stoppedEarly = false
	e.question = nil
}

// MistakesReview returns the wrongly answered entries in answer order.
func (e *Engine) MistakesReview() ([]domain.WordEntry, error) {
	if e.state != domain.QuizStateFinished {
		return nil, fmt.Errorf("mistakes in state %s: %w", e.state, domain.ErrInvalidState)
	}
	return slices.Clone(e.mistakes), nil
}

func (e *Engine) Summary() Summary {
	return Summary{Score: e.score, Total: e.total, StoppedEarly: e.stoppedEarly}
}

func (e *Engine) State() domain.QuizState { return e.state }

// Source returns the collection of the current or last session.
func (e *Engine) Source() domain.QuizSource { return e.source }

// Answered reports whether the current question has been answered.
func (e *Engine) Answered() bool { return e.answered }
