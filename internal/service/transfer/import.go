package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/salita/internal/adapter/spreadsheet"
	"github.com/heartmarshall/salita/internal/domain"
)

// RowError describes a rejected import row. Row is 1-based.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises an import.
type ImportResult struct {
	Processed int        `json:"processed"`
	Created   int        `json:"created"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors"`
}

var (
	sourceHeaders = []string{"filipino", "tagalog", "source"}
	targetHeaders = []string{"english", "target"}
)

// Import adds every row of the file at path as a user word. Column A is the
// Filipino text and column B the English text; a header row is detected and
// skipped. Duplicates are counted as skipped and invalid rows are reported
// in the result. A storage failure stops the import and is returned together
// with the partial result.
func (s *Service) Import(ctx context.Context, path string) (ImportResult, error) {
	rows, err := readRows(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}

	result := ImportResult{Errors: []RowError{}}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if isBlank(row) || (i == 0 && isHeader(row)) {
			continue
		}

		result.Processed++
		entry := domain.NewWordEntry(cell(row, 0), cell(row, 1))

		_, err := s.vocab.AddUserWord(ctx, entry)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, domain.ErrAlreadyExists):
			result.Skipped++
		case errors.Is(err, domain.ErrValidation):
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
		default:
			return result, fmt.Errorf("import row %d: %w", i+1, err)
		}
	}

	s.log.InfoContext(ctx, "import finished",
		slog.String("file", filepath.Base(path)),
		slog.Int("processed", result.Processed),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return jsonRows(data)
	}
	return spreadsheet.ReadRows(path)
}

// jsonRows accepts a bare array of {filipino, english} objects or an export
// document, whose user_words are read.
func jsonRows(data []byte) ([][]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %w", domain.ErrValidation)
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("user_words")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("expected an array of words: %w", domain.ErrValidation)
	}

	var rows [][]string
	list.ForEach(func(_, item gjson.Result) bool {
		rows = append(rows, []string{item.Get("filipino").String(), item.Get("english").String()})
		return true
	})
	return rows, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	return matchesAny(cell(row, 0), sourceHeaders) && matchesAny(cell(row, 1), targetHeaders)
}

func matchesAny(s string, names []string) bool {
	s = domain.NormalizeText(s)
	for _, n := range names {
		if s == n {
			return true
		}
	}
	return false
}
