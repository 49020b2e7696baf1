package quiz

import (
	"fmt"

	"github.com/heartmarshall/salita/internal/domain"
)

// OptionCount is the number of choices offered per question.
const OptionCount = 4

// Question is one multiple-choice prompt. Options always holds Correct.
type Question struct {
	Number  int
	Total   int
	Prompt  string
	Options []string
	Correct string
	Entry   domain.WordEntry
}

// AnswerOutcome reports the result of Answer. When AlreadyAnswered is set the
// score was left untouched.
type AnswerOutcome struct {
	Correct         bool
	CorrectAnswer   string
	AlreadyAnswered bool
}

// Summary is the score report of a session.
type Summary struct {
	Score        int
	Total        int
	StoppedEarly bool
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d", s.Score, s.Total)
}

// buildQuestion draws distractors from every entry except the one at cursor.
func (e *Engine) buildQuestion() *Question {
	entry := e.set[e.cursor]

	others := make([]string, 0, len(e.set)-1)
	for i, x := range e.set {
		if i != e.cursor {
			others = append(others, x.Target)
		}
	}
	Shuffle(e.rng, others)

	options := pickDistractors(others, entry.Target, OptionCount-1, e.distinctOptions)
	options = append(options, entry.Target)
	Shuffle(e.rng, options)

	return &Question{
		Number:  e.cursor + 1,
		Total:   len(e.set),
		Prompt:  entry.Source,
		Options: options,
		Correct: entry.Target,
		Entry:   entry,
	}
}

// pickDistractors takes the first n of the shuffled candidates. With distinct
// set it skips texts that fold-equal the correct answer or an earlier pick,
// then tops up from the skipped ones if too few remain.
func pickDistractors(candidates []string, correct string, n int, distinct bool) []string {
	if !distinct {
		return append([]string(nil), candidates[:min(n, len(candidates))]...)
	}

	picked := make([]string, 0, n)
	used := make([]bool, len(candidates))
	seen := map[string]bool{domain.NormalizeText(correct): true}
	for i, c := range candidates {
		if len(picked) == n {
			break
		}
		key := domain.NormalizeText(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		used[i] = true
		picked = append(picked, c)
	}
	for i, c := range candidates {
		if len(picked) == n {
			break
		}
		if !used[i] {
			picked = append(picked, c)
		}
	}
	return picked
}
