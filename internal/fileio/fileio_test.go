package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadTable_CSV(t *testing.T) {
	src := "Item;Price;\nLamp;$30;\n;;\nRope;12 meters;\n"
	tbl, err := ReadTable(strings.NewReader(src), "goods.CSV", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Item", "Price", "Column 3"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, "$30", tbl.Rows[0].Cell("Price"))
	assert.Equal(t, 4, tbl.Rows[1].Line)
	assert.Equal(t, "12 meters", tbl.Rows[1].Cell("Price"))
	assert.Equal(t, "", tbl.Rows[1].Cell("missing"))
}

func TestReadTable_HeaderIsLastRow(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader("x,1\nname,value\n"), "r.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value"}, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestReadTable_CSVHeaderRow(t *testing.T) {
	src := "report,2026\nname,value\nx,5 km\n"
	tbl, err := ReadTable(strings.NewReader(src), "r.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, 3, tbl.Rows[0].Line)
	assert.Equal(t, "5 km", tbl.Rows[0].Cell("value"))
}

func TestReadTable_CSVWithBOM(t *testing.T) {
	src := "\xEF\xBB\xBFname,value\na, 12 kg \n"
	tbl, err := ReadTable(strings.NewReader(src), "bom.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "12 kg", tbl.Rows[0].Cell("value"))
}

func TestReadTable_CSVWindows1251(t *testing.T) {
	text := "Наименование;Описание\n" +
		"Лампа настольная;Стоимость тридцать долларов за штуку, доставка отдельно\n" +
		"Верёвка альпинистская;Длина двенадцать метров, производство в России\n"
	enc, err := charmap.Windows1251.NewEncoder().String(text)
	require.NoError(t, err)

	tbl, err := ReadTable(strings.NewReader(enc), "win.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Наименование", "Описание"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Лампа настольная", tbl.Rows[0].Cell("Наименование"))
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "Item", "B1": "Note",
		"A2": "Tent", "B2": "weighs 3 kg",
		"A4": "Stove", "B4": "costs 20 euros",
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := ReadTable(bytes.NewReader(buf.Bytes()), "list.xlsx", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Note"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "weighs 3 kg", tbl.Rows[0].Cell("Note"))
	assert.Equal(t, 4, tbl.Rows[1].Line)
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x"), "notes.pdf", 1)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = ReadTable(strings.NewReader("x"), "a.csv", 0)
	assert.ErrorIs(t, err, ErrHeaderRow)

	// заголовок за концом листа
	_, err = ReadTable(strings.NewReader("name,value\nx,5 km\n"), "a.csv", 3)
	assert.ErrorIs(t, err, ErrHeaderRow)
	assert.Contains(t, err.Error(), "row 3, sheet has 2")

	_, err = ReadTable(strings.NewReader("not a zip"), "a.xlsx", 1)
	assert.Error(t, err)

	_, err = ReadTable(strings.NewReader("not an ole2 file"), "old.XLS", 1)
	assert.ErrorIs(t, err, errXLSOpen)

	tbl, err := ReadTable(strings.NewReader(""), "empty.csv", 1)
	require.NoError(t, err)
	assert.Empty(t, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestXLSRow_Nil(t *testing.T) {
	width := 3
	assert.Nil(t, xlsRow(nil, &width))
	assert.Equal(t, 3, width)
}

func TestSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"a.csv": true, "B.XLSX": true, "c.xls": true, "d.txt": true, "e.json": false, "noext": false,
	} {
		assert.Equal(t, want, Supported(name), name)
	}
}

func TestSniffComma(t *testing.T) {
	assert.Equal(t, ';', sniffComma([]byte("a;b;c\n1,2")))
	assert.Equal(t, '\t', sniffComma([]byte("a\tb\tc")))
	assert.Equal(t, ',', sniffComma([]byte("single")))
}

func TestValidUTF8Prefix(t *testing.T) {
	s := []byte("años")
	assert.True(t, validUTF8Prefix(s[:2])) // ñ обрезана пополам
	assert.False(t, validUTF8Prefix([]byte{'a', 0xE0, 'b', 'c', 'd'}))
}
