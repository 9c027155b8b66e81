package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupported = errors.New("fileio: unsupported file type")
	ErrHeaderRow   = errors.New("fileio: bad header row")
)

// Table: прочитанный лист: заголовки в исходном порядке и строки данных.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"-"`
}

// Row: одна непустая строка данных. Line: номер строки в файле (1-based).
type Row struct {
	Line  int
	Cells map[string]string
}

// Cell returns the value under header, "" when absent.
func (r Row) Cell(header string) string { return r.Cells[header] }

// ReadTable выбирает парсер по расширению. headerRow: номер строки заголовков (1-based).
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	if headerRow <= 0 {
		return Table{}, ErrHeaderRow
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv", ".txt":
		return readCSV(r, headerRow)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupported, filename)
	}
}

// Supported reports whether ReadTable knows the extension of filename.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".csv", ".txt":
		return true
	}
	return false
}

// normalizeCell: обрезает пробелы, NBSP/NNBSP/thin space превращает в обычный пробел.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ", "\r\n", "\n").Replace(s)
	return strings.TrimSpace(s)
}

// pickHeader: берёт строку заголовков, пустые и повторные получают Column N.
func pickHeader(rows [][]string, headerRow int) []string {
	h := rows[headerRow-1]
	out := make([]string, len(h))
	seen := make(map[string]bool, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" || seen[v] {
			v = fmt.Sprintf("Column %d", i+1)
		}
		seen[v] = true
		out[i] = v
	}
	return out
}

// toTable: AoA в Table по заголовкам, полностью пустые строки пропускаются.
// Строка заголовков за концом листа: ErrHeaderRow.
func toTable(rows [][]string, headerRow int) (Table, error) {
	if len(rows) == 0 {
		return Table{}, nil
	}
	if headerRow > len(rows) {
		return Table{}, fmt.Errorf("%w: row %d, sheet has %d", ErrHeaderRow, headerRow, len(rows))
	}
	headers := pickHeader(rows, headerRow)
	t := Table{Headers: headers}
	for r := headerRow; r < len(rows); r++ { // первая строка после заголовков
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			t.Rows = append(t.Rows, Row{Line: r + 1, Cells: m})
		}
	}
	return t, nil
}
