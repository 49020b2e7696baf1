package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WordEntry is a paired vocabulary unit: a Filipino term and its English gloss.
// It has no surrogate id; two entries are the same word when Equal reports so.
// JSON field names match the blobs written by the browser client.
type WordEntry struct {
	Source string `json:"filipino"`
	Target string `json:"english"`
}

// NewWordEntry builds an entry with both fields trimmed.
func NewWordEntry(source, target string) WordEntry {
	return WordEntry{
		Source: strings.TrimSpace(source),
		Target: strings.TrimSpace(target),
	}
}

// Trimmed returns a copy of e with surrounding whitespace removed.
func (e WordEntry) Trimmed() WordEntry {
	return NewWordEntry(e.Source, e.Target)
}

// Validate checks that both fields are non-empty after trimming.
func (e WordEntry) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(e.Source) == "" {
		errs = append(errs, FieldError{Field: "filipino", Message: "required"})
	}
	if strings.TrimSpace(e.Target) == "" {
		errs = append(errs, FieldError{Field: "english", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Key is the case-folded comparison key of the entry. Entries with equal keys
// are equal.
func (e WordEntry) Key() string {
	return NormalizeText(e.Source) + "\x00" + NormalizeText(e.Target)
}

// Equal compares both fields case-insensitively.
func (e WordEntry) Equal(other WordEntry) bool {
	return e.Key() == other.Key()
}

func (e WordEntry) String() string {
	return fmt.Sprintf("%s - %s", e.Source, e.Target)
}

// IndexOf returns the position of the first entry equal to e, or -1.
func IndexOf(entries []WordEntry, e WordEntry) int {
	key := e.Key()
	for i, x := range entries {
		if x.Key() == key {
			return i
		}
	}
	return -1
}

// ContainsEntry reports whether entries holds an entry equal to e.
func ContainsEntry(entries []WordEntry, e WordEntry) bool {
	return IndexOf(entries, e) >= 0
}

// MarshalEntries encodes entries as a JSON array. A nil slice encodes as [].
func MarshalEntries(entries []WordEntry) ([]byte, error) {
	if entries == nil {
		entries = []WordEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}
	return data, nil
}

// UnmarshalEntries decodes a JSON array of entries. Empty input yields nil.
func UnmarshalEntries(data []byte) ([]WordEntry, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var entries []WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal entries: %w", err)
	}
	return entries, nil
}
