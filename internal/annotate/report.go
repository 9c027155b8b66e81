package annotate

import (
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	resultsSheet = "Results"
	totalsSheet  = "Totals"
)

var (
	resultsHeader = []any{"Line", "Column", "Text", "Kind", "Value", "Unit", "ISO"}
	totalsHeader  = []any{"Kind", "Unit", "ISO", "Sum", "Count"}
)

// WriteXLSX пишет отчёт в xlsx: лист Results (по одной строке на величину) и лист Totals.
func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	title := cases.Title(language.English)

	rows := [][]any{resultsHeader}
	for _, c := range rep.Cells {
		for _, e := range c.Entities {
			rows = append(rows, []any{
				c.Line, c.Column, e.Text, title.String(e.TypeName),
				e.Resolution.Value, e.Resolution.Unit, e.Resolution.ISOCurrency,
			})
		}
	}
	if err := writeRows(f, resultsSheet, rows, bold); err != nil {
		return err
	}

	rows = [][]any{totalsHeader}
	for _, t := range rep.Totals {
		rows = append(rows, []any{title.String(t.Kind), t.Unit, t.ISOCurrency, t.Sum, t.Count})
	}
	if err := writeRows(f, totalsSheet, rows, bold); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "C", 24)
}
