package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tair/wordbook/internal/word/domain"
)

const utf8BOM = "\ufeff"

// readTable parses a two-column table whose header names domain.TermColumn
// and domain.MeaningColumn. Columns are located by name; extra columns are
// ignored and short rows are padded with empty strings. A quote inside an
// unquoted field is kept as a literal character.
func readTable(r io.Reader, path string) ([]domain.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &domain.FormatError{Path: path, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, parseError(path, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	termIdx, meaningIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case domain.TermColumn:
			if termIdx < 0 {
				termIdx = i
			}
		case domain.MeaningColumn:
			if meaningIdx < 0 {
				meaningIdx = i
			}
		}
	}
	if termIdx < 0 || meaningIdx < 0 {
		return nil, &domain.FormatError{
			Path: path,
			Line: 1,
			Err:  fmt.Errorf("header must name %q and %q columns, got %q", domain.TermColumn, domain.MeaningColumn, header),
		}
	}

	entries := []domain.Entry{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(path, err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &domain.FormatError{
				Path: path,
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(record)),
			}
		}
		entries = append(entries, domain.Entry{
			Term:    field(record, termIdx),
			Meaning: field(record, meaningIdx),
		})
	}
	return entries, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func parseError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.FormatError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("read %s: %w", path, err)
}

// writeTable writes the header and rows with minimal quoting
func writeTable(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{domain.TermColumn, domain.MeaningColumn}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Term, e.Meaning}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTableFile replaces path with the full table through a temp file in the
// same directory, so readers never observe a partial write.
func writeTableFile(path string, entries []domain.Entry) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = writeTable(tmp, entries); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
