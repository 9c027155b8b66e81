package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// xlsCharsets: старые выгрузки обычно в cp1251, реже UTF-8 или latin1.
var xlsCharsets = []string{"windows-1251", "utf-8", "iso-8859-1"}

// xlsProbeCols bounds the width scan; Row.LastCol is unreliable on legacy files.
const xlsProbeCols = 512

var errXLSOpen = errors.New("fileio: cannot open xls workbook")

func readXLS(r io.Reader, headerRow int) (Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	wb, err := openXLS(b)
	if err != nil {
		return Table{}, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Table{}, nil
	}

	last := int(sheet.MaxRow)
	grid := make([][]string, last+1)
	width := 1
	for i := 0; i <= last; i++ {
		grid[i] = xlsRow(sheet.Row(i), &width)
	}
	// выравниваем строки по самой широкой
	for i, row := range grid {
		if len(row) < width {
			grid[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return toTable(grid, headerRow)
}

// xlsRow reads cells up to the last non-empty one and widens *width to fit.
func xlsRow(row *xls.Row, width *int) []string {
	if row == nil {
		return nil
	}
	var cells []string
	for j := 0; j < xlsProbeCols; j++ {
		v := normalizeCell(row.Col(j))
		if v == "" {
			continue
		}
		for len(cells) < j {
			cells = append(cells, "")
		}
		cells = append(cells, v)
	}
	*width = max(*width, len(cells))
	return cells
}

func openXLS(b []byte) (*xls.WorkBook, error) {
	errs := []error{errXLSOpen}
	for _, cs := range xlsCharsets {
		wb, err := xls.OpenReader(bytes.NewReader(b), cs)
		if err == nil && wb != nil {
			return wb, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return nil, errors.Join(errs...)
}
