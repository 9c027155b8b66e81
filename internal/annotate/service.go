package annotate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"numunit-service/internal/fileio"
	"numunit-service/internal/numberunit"
	"numunit-service/internal/recognizer"
)

var ErrNoColumns = errors.New("annotate: no column matches the filter")

// Recognizer is the part of *recognizer.Recognizer the annotator needs.
type Recognizer interface {
	CultureFor(requested string) (string, error)
	Recognize(ctx context.Context, text, culture string, kinds ...numberunit.Kind) (recognizer.Result, error)
}

// Annotate распознаёт величины в каждой непустой ячейке выбранных колонок
// и считает итоги по единицам.
func Annotate(ctx context.Context, rec Recognizer, tbl fileio.Table, opt Options) (Report, error) {
	culture, err := rec.CultureFor(opt.Culture)
	if err != nil {
		return Report{}, err
	}
	cols := selectColumns(tbl.Headers, opt.Columns)
	if len(cols) == 0 && len(tbl.Headers) > 0 {
		return Report{}, noColumns(tbl.Headers, opt.Columns)
	}

	rep := Report{Culture: culture, Columns: cols, Rows: len(tbl.Rows), Cells: []Cell{}}
	for _, row := range tbl.Rows {
		for _, col := range cols {
			text := row.Cell(col)
			if text == "" {
				continue
			}
			res, err := rec.Recognize(ctx, text, culture, opt.Kinds...)
			switch {
			case errors.Is(err, recognizer.ErrTextTooLong):
				rep.Skipped++
				continue
			case errors.Is(err, recognizer.ErrEmptyText):
				continue
			case err != nil:
				return Report{}, err
			}
			if len(res.Entities) == 0 {
				continue
			}
			rep.Cells = append(rep.Cells, Cell{Line: row.Line, Column: col, Text: text, Entities: res.Entities})
		}
	}
	rep.Totals = aggregate(rep.Cells)
	return rep, nil
}

func noColumns(headers []string, filter string) error {
	for _, alt := range strings.Split(filter, "|") {
		if s := suggest(headers, alt); s != "" {
			return fmt.Errorf("%w: %q, did you mean %q?", ErrNoColumns, filter, s)
		}
	}
	return fmt.Errorf("%w: %q", ErrNoColumns, filter)
}

// aggregate складывает значения по ключу (вид, единица, ISO).
// Результаты без единицы или без числа в итоги не попадают.
func aggregate(cells []Cell) []Total {
	type key struct{ kind, unit, iso string }
	agg := map[key]*Total{}
	for _, c := range cells {
		for _, e := range c.Entities {
			if e.Resolution.Unit == "" || e.Resolution.Value == "" {
				continue
			}
			v, err := strconv.ParseFloat(e.Resolution.Value, 64)
			if err != nil {
				continue
			}
			k := key{e.TypeName, e.Resolution.Unit, e.Resolution.ISOCurrency}
			t, ok := agg[k]
			if !ok {
				t = &Total{Kind: k.kind, Unit: k.unit, ISOCurrency: k.iso}
				agg[k] = t
			}
			t.Sum += v
			t.Count++
		}
	}
	out := make([]Total, 0, len(agg))
	for _, t := range agg {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b Total) int {
		if c := cmp.Compare(kindOrder(a.Kind), kindOrder(b.Kind)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Unit, b.Unit); c != 0 {
			return c
		}
		return cmp.Compare(a.ISOCurrency, b.ISOCurrency)
	})
	return out
}

func kindOrder(name string) int {
	k, err := numberunit.ParseKind(name)
	if err != nil {
		return len(numberunit.Kinds)
	}
	return int(k)
}
