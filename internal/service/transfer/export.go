package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itchyny/json2yaml"
	"github.com/tidwall/sjson"

	"github.com/heartmarshall/salita/internal/adapter/spreadsheet"
	"github.com/heartmarshall/salita/internal/domain"
)

const (
	originBuiltIn = "built-in"
	originUser    = "user"
)

type exportDocument struct {
	Words      []domain.WordEntry `json:"words"`
	UserWords  []domain.WordEntry `json:"user_words"`
	Favourites []domain.WordEntry `json:"favourites"`
}

// FormatFromPath infers the export format from the file extension.
func FormatFromPath(path string) (domain.ExportFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = "yaml"
	}
	f := domain.ExportFormat(ext)
	if !f.IsValid() {
		return "", domain.NewValidationError("format", fmt.Sprintf("unsupported export format %q", ext))
	}
	return f, nil
}

// Export writes the whole vocabulary and the favourites to path.
func (s *Service) Export(ctx context.Context, path string, format domain.ExportFormat) error {
	if !format.IsValid() {
		return domain.NewValidationError("format", fmt.Sprintf("unsupported export format %q", format))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := exportDocument{
		Words:      nonNil(s.vocab.Snapshot()),
		UserWords:  nonNil(s.vocab.UserWords()),
		Favourites: nonNil(s.favourites.List()),
	}

	var err error
	switch format {
	case domain.ExportFormatXLSX:
		err = s.writeWorkbook(path, doc)
	case domain.ExportFormatJSON:
		var data []byte
		if data, err = s.encodeJSON(doc); err == nil {
			err = writeFile(path, data)
		}
	case domain.ExportFormatYAML:
		var data []byte
		if data, err = s.encodeYAML(doc); err == nil {
			err = writeFile(path, data)
		}
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	s.log.InfoContext(ctx, "export written",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("words", len(doc.Words)),
		slog.Int("favourites", len(doc.Favourites)),
	)
	return nil
}

func (s *Service) encodeJSON(doc exportDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	data, err = sjson.SetBytes(data, "meta.generated_at", s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("stamp: %w", err)
	}
	data, err = sjson.SetBytes(data, "meta.count", len(doc.Words))
	if err != nil {
		return nil, fmt.Errorf("stamp: %w", err)
	}
	return data, nil
}

func (s *Service) encodeYAML(doc exportDocument) ([]byte, error) {
	data, err := s.encodeJSON(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json2yaml.Convert(&buf, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) writeWorkbook(path string, doc exportDocument) error {
	words := make([][]string, len(doc.Words))
	for i, e := range doc.Words {
		origin := originBuiltIn
		if s.vocab.IsUserWord(e) {
			origin = originUser
		}
		words[i] = []string{e.Source, e.Target, origin}
	}

	favs := make([][]string, len(doc.Favourites))
	for i, e := range doc.Favourites {
		favs[i] = []string{e.Source, e.Target}
	}

	return spreadsheet.WriteWorkbook(path, []spreadsheet.Sheet{
		{Name: "Words", Header: []string{"Filipino", "English", "Origin"}, Rows: words},
		{Name: "Favourites", Header: []string{"Filipino", "English"}, Rows: favs},
	})
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func nonNil(entries []domain.WordEntry) []domain.WordEntry {
	if entries == nil {
		return []domain.WordEntry{}
	}
	return entries
}
