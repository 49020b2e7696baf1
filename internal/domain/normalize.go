package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for comparison:
//   - trims leading/trailing whitespace
//   - applies Unicode case folding
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = FoldKey(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FoldKey returns the comparison key of s: NFC-normalized and case-folded.
// Whitespace is left untouched.
func FoldKey(s string) string {
	// cases.Caser is stateful, so a fresh one is needed per call.
	return cases.Fold().String(norm.NFC.String(s))
}
