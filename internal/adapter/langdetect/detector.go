// Package langdetect guesses whether a short query is Filipino or English.
//
// Each word scores points for one side: vocabulary hits weigh most, then
// function words, then affixes. The higher total wins; ties are undetermined.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/salita/internal/domain"
)

const (
	vocabularyWeight = 3
	markerWeight     = 2
	affixWeight      = 1
	minAffixedLength = 6
)

type vocabulary interface {
	Snapshot() []domain.WordEntry
}

var filipinoMarkers = wordSet(
	"ang", "ng", "mga", "sa", "ay", "si", "ni", "kay", "na", "at", "po", "opo",
	"ako", "ikaw", "ka", "siya", "kami", "tayo", "kayo", "sila", "ko", "mo",
	"niya", "namin", "natin", "ninyo", "nila", "ito", "iyan", "iyon", "dito",
	"diyan", "doon", "hindi", "oo", "huwag", "wala", "may", "mayroon", "ba",
	"pa", "din", "rin", "lang", "lamang", "naman", "kasi", "pero", "kung",
	"para", "ano", "sino", "saan", "kailan", "bakit", "paano", "ilan",
	"kumusta", "salamat", "magandang", "maganda", "mahal",
)

var englishMarkers = wordSet(
	"the", "a", "an", "and", "or", "but", "of", "to", "in", "on", "at", "for",
	"with", "from", "by", "is", "are", "was", "were", "be", "been", "am",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us",
	"them", "my", "your", "his", "its", "our", "their", "this", "that",
	"these", "those", "what", "who", "where", "when", "why", "how", "not",
	"no", "yes", "do", "does", "did", "have", "has", "had", "will", "can",
	"good", "morning", "thank", "thanks", "hello", "please",
)

var (
	filipinoPrefixes = []string{"mag", "nag", "pag", "naka", "maka", "ipa", "pinag", "ika"}
	filipinoInfixes  = []string{"um", "in"}
	englishSuffixes  = []string{"ing", "tion", "ness", "ment", "ly", "ed", "ful", "less"}
)

// Detector classifies text using the current vocabulary plus fixed word lists.
type Detector struct {
	vocab vocabulary
}

// New creates a Detector. vocab may be nil.
func New(vocab vocabulary) *Detector {
	return &Detector{vocab: vocab}
}

// Detect returns SOURCE for Filipino, TARGET for English and UNDETERMINED when
// neither side scores higher.
func (d *Detector) Detect(text string) domain.Language {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.LanguageUndetermined
	}

	var srcWords, tgtWords map[string]struct{}
	if d.vocab != nil {
		srcWords, tgtWords = vocabularyWords(d.vocab.Snapshot())
	}

	var src, tgt int
	for _, tok := range tokens {
		_, inSrc := srcWords[tok]
		_, inTgt := tgtWords[tok]
		if inSrc && !inTgt {
			src += vocabularyWeight
		}
		if inTgt && !inSrc {
			tgt += vocabularyWeight
		}

		if _, ok := filipinoMarkers[tok]; ok {
			src += markerWeight
		}
		if _, ok := englishMarkers[tok]; ok {
			tgt += markerWeight
		}

		if len(tok) >= minAffixedLength {
			if hasFilipinoAffix(tok) {
				src += affixWeight
			}
			if hasAnySuffix(tok, englishSuffixes) {
				tgt += affixWeight
			}
		}
	}

	switch {
	case src > tgt:
		return domain.LanguageSource
	case tgt > src:
		return domain.LanguageTarget
	default:
		return domain.LanguageUndetermined
	}
}

func hasFilipinoAffix(tok string) bool {
	for _, p := range filipinoPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	// kumain, sinulat: consonant followed by an infix.
	for _, in := range filipinoInfixes {
		if len(tok) > 3 && !isVowel(rune(tok[0])) && tok[1:3] == in {
			return true
		}
	}
	// Reduplicated first syllable: "kakain", "tatakbo".
	if len(tok) > 4 && tok[:2] == tok[2:4] {
		return true
	}
	return false
}

func hasAnySuffix(tok string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(tok, s) {
			return true
		}
	}
	return false
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", r)
}

func vocabularyWords(entries []domain.WordEntry) (src, tgt map[string]struct{}) {
	src = make(map[string]struct{}, len(entries))
	tgt = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		for _, tok := range tokenize(e.Source) {
			src[tok] = struct{}{}
		}
		for _, tok := range tokenize(e.Target) {
			tgt[tok] = struct{}{}
		}
	}
	return src, tgt
}

// tokenize splits folded text into letter runs. Apostrophes and hyphens stay
// inside words ("i'm", "araw-araw").
func tokenize(text string) []string {
	folded := domain.NormalizeText(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '-'
	})
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
