package annotate

import (
	"numunit-service/internal/numberunit"
)

// Options: что распознавать в таблице.
type Options struct {
	Culture string
	Kinds   []numberunit.Kind // пусто: все виды
	Columns string            // фильтр заголовков "Цена|Price"; пусто: все колонки
}

// Cell: распознанные величины одной ячейки.
type Cell struct {
	Line     int                      `json:"line"` // строка в файле (1-based)
	Column   string                   `json:"column"`
	Text     string                   `json:"text"`
	Entities []numberunit.ModelResult `json:"results"`
}

// Total: сумма по (вид, единица, ISO).
type Total struct {
	Kind        string  `json:"kind"`
	Unit        string  `json:"unit"`
	ISOCurrency string  `json:"isoCurrency,omitempty"`
	Sum         float64 `json:"sum"`
	Count       int     `json:"count"`
}

type Report struct {
	Culture string   `json:"culture"`
	Columns []string `json:"columns"` // колонки, которые реально смотрели
	Rows    int      `json:"rows"`
	Cells   []Cell   `json:"cells"`
	Totals  []Total  `json:"totals"`
	Skipped int      `json:"skipped"` // ячейки длиннее лимита
}
