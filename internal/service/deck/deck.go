// Package deck implements the flashcard browser over the vocabulary.
package deck

import (
	"math/rand"

	"github.com/heartmarshall/salita/internal/domain"
)

type wordSource interface {
	Snapshot() []domain.WordEntry
}

// Deck is a cursor over the live vocabulary. Navigation wraps around at both
// ends. Every call re-reads the vocabulary, so the cursor is clamped when
// words were deleted in between.
type Deck struct {
	words wordSource
	rng   *rand.Rand
	index int
}

func New(words wordSource, rng *rand.Rand) *Deck {
	return &Deck{words: words, rng: rng}
}

// Current returns the card under the cursor. ok is false for an empty
// vocabulary.
func (d *Deck) Current() (entry domain.WordEntry, index int, ok bool) {
	snap := d.words.Snapshot()
	if len(snap) == 0 {
		d.index = 0
		return domain.WordEntry{}, 0, false
	}
	d.index = min(d.index, len(snap)-1)
	return snap[d.index], d.index, true
}

// Show moves the cursor to index modulo the vocabulary size.
func (d *Deck) Show(index int) (domain.WordEntry, int, bool) {
	n := len(d.words.Snapshot())
	if n == 0 {
		return d.Current()
	}
	d.index = ((index % n) + n) % n
	return d.Current()
}

func (d *Deck) Next() (domain.WordEntry, int, bool) {
	return d.Show(d.index + 1)
}

func (d *Deck) Previous() (domain.WordEntry, int, bool) {
	return d.Show(d.index - 1)
}

// Random jumps to a uniformly chosen card, possibly the current one.
func (d *Deck) Random() (domain.WordEntry, int, bool) {
	n := len(d.words.Snapshot())
	if n == 0 {
		return d.Current()
	}
	return d.Show(d.rng.Intn(n))
}

// Last moves to the most recently added word.
func (d *Deck) Last() (domain.WordEntry, int, bool) {
	return d.Show(-1)
}

// Locate moves the cursor to the entry equal to entry. It reports false and
// leaves the cursor alone when there is none.
func (d *Deck) Locate(entry domain.WordEntry) (domain.WordEntry, int, bool) {
	idx := domain.IndexOf(d.words.Snapshot(), entry)
	if idx < 0 {
		return domain.WordEntry{}, -1, false
	}
	return d.Show(idx)
}
