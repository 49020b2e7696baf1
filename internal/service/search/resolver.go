package search

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/heartmarshall/salita/internal/domain"
)

// AutoLanguage asks the translator to detect the source language itself.
const AutoLanguage = "auto"

type vocabulary interface {
	Snapshot() []domain.WordEntry
	Contains(entry domain.WordEntry) bool
}

type translator interface {
	Translate(ctx context.Context, query, sourceLang, targetLang string) (string, error)
}

type detector interface {
	Detect(text string) domain.Language
}

// Options configures a Resolver.
type Options struct {
	MinQueryLength int
	SourceLang     string
	TargetLang     string
}

// Suggestion is one search result. InVocabulary tells callers whether adding
// it would be a duplicate.
type Suggestion struct {
	Entry        domain.WordEntry
	IsExternal   bool
	InVocabulary bool
}

// Resolver answers search queries from the vocabulary first and falls back to
// the external translator. It never mutates the vocabulary.
type Resolver struct {
	log        *slog.Logger
	vocab      vocabulary
	translator translator
	detector   detector
	opts       Options
}

// NewResolver creates a Resolver.
func NewResolver(log *slog.Logger, vocab vocabulary, tr translator, det detector, opts Options) *Resolver {
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = 1
	}
	return &Resolver{
		log:        log.With("service", "search"),
		vocab:      vocab,
		translator: tr,
		detector:   det,
		opts:       opts,
	}
}

// Search resolves query in three passes: prefix match, substring match, then
// translation. Translator failures yield an empty result; the only error
// returned is a cancelled or expired ctx.
func (r *Resolver) Search(ctx context.Context, query string) ([]Suggestion, error) {
	raw := strings.TrimSpace(query)
	q := domain.NormalizeText(raw)
	if q == "" || utf8.RuneCountInString(q) < r.opts.MinQueryLength {
		return nil, nil
	}

	snapshot := r.vocab.Snapshot()

	if found := matchLocal(snapshot, q, strings.HasPrefix); len(found) > 0 {
		return found, nil
	}
	if found := matchLocal(snapshot, q, strings.Contains); len(found) > 0 {
		return found, nil
	}
	return r.external(ctx, raw, q)
}

func matchLocal(entries []domain.WordEntry, q string, match func(s, substr string) bool) []Suggestion {
	found := lo.Filter(entries, func(e domain.WordEntry, _ int) bool {
		return match(domain.NormalizeText(e.Source), q) || match(domain.NormalizeText(e.Target), q)
	})
	found = lo.UniqBy(found, domain.WordEntry.Key)
	return lo.Map(found, func(e domain.WordEntry, _ int) Suggestion {
		return Suggestion{Entry: e, InVocabulary: true}
	})
}

func (r *Resolver) external(ctx context.Context, raw, q string) ([]Suggestion, error) {
	lang := r.detector.Detect(raw)

	sourceLang, targetLang := AutoLanguage, r.opts.TargetLang
	switch lang {
	case domain.LanguageSource:
		sourceLang, targetLang = r.opts.SourceLang, r.opts.TargetLang
	case domain.LanguageTarget:
		sourceLang, targetLang = r.opts.TargetLang, r.opts.SourceLang
	}

	translated, err := r.translator.Translate(ctx, raw, sourceLang, targetLang)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.log.WarnContext(ctx, "translation lookup failed",
			slog.String("query", raw),
			slog.String("language", lang.String()),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	translated = strings.TrimSpace(translated)
	if translated == "" || domain.NormalizeText(translated) == q {
		r.log.DebugContext(ctx, "translation not usable", slog.String("query", raw))
		return nil, nil
	}

	entry := domain.WordEntry{Source: raw, Target: translated}
	if lang == domain.LanguageTarget {
		entry = domain.WordEntry{Source: translated, Target: raw}
	}
	return []Suggestion{{
		Entry:        entry,
		IsExternal:   true,
		InVocabulary: r.vocab.Contains(entry),
	}}, nil
}

// SuggestManualEntry prefills a new entry from free text: text detected as the
// target language goes into Target, anything else into Source.
func (r *Resolver) SuggestManualEntry(text string) domain.WordEntry {
	text = strings.TrimSpace(text)
	if r.detector.Detect(text) == domain.LanguageTarget {
		return domain.WordEntry{Target: text}
	}
	return domain.WordEntry{Source: text}
}
