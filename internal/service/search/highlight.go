package search

import "strings"

// Segment is a run of text; Match marks runs equal to the query ignoring case.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Highlight splits text into segments around every case-insensitive,
// non-overlapping occurrence of query.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	q := []rune(strings.TrimSpace(query))
	if len(q) == 0 {
		return []Segment{{Text: text}}
	}
	needle := string(q)

	runes := []rune(text)
	var segments []Segment
	start := 0
	for i := 0; i+len(q) <= len(runes); {
		if !strings.EqualFold(string(runes[i:i+len(q)]), needle) {
			i++
			continue
		}
		if i > start {
			segments = append(segments, Segment{Text: string(runes[start:i])})
		}
		segments = append(segments, Segment{Text: string(runes[i : i+len(q)]), Match: true})
		i += len(q)
		start = i
	}
	if start < len(runes) {
		segments = append(segments, Segment{Text: string(runes[start:])})
	}
	return segments
}

// Mark renders segments with matches wrapped in openTag and closeTag.
func Mark(segments []Segment, openTag, closeTag string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Match {
			b.WriteString(openTag)
			b.WriteString(s.Text)
			b.WriteString(closeTag)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
