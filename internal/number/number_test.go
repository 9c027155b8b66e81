package number_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numunit-service/internal/number"
)

func english(t *testing.T) (*number.Extractor, *number.Parser) {
	t.Helper()
	opts := number.Options{
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		Connectors:       []string{"and"},
		Words: map[string]float64{
			"one": 1, "two": 2, "three": 3, "five": 5, "twenty": 20, "fifty": 50,
		},
		Multipliers: map[string]float64{"hundred": 100, "thousand": 1000},
	}
	ex, err := number.NewExtractor(opts)
	require.NoError(t, err)
	p, err := number.NewParser(opts)
	require.NoError(t, err)
	return ex, p
}

func TestExtractor_Digits(t *testing.T) {
	t.Parallel()
	ex, _ := english(t)

	tests := []struct {
		name string
		text string
		want []number.Result
	}{
		{"integer", "I am 25 years old", []number.Result{{Start: 5, Length: 2, Text: "25", Kind: number.Integer}}},
		{"grouped double", "pay 1,234.56 now", []number.Result{{Start: 4, Length: 8, Text: "1,234.56", Kind: number.Double}}},
		{"fraction", "3/4 cup", []number.Result{{Start: 0, Length: 3, Text: "3/4", Kind: number.Fraction}}},
		{"negative", "it is -5 degrees", []number.Result{{Start: 6, Length: 2, Text: "-5", Kind: number.Integer}}},
		{"glued to letters", "abc123", nil},
		{"glued unit", "5km", []number.Result{{Start: 0, Length: 1, Text: "5", Kind: number.Integer}}},
		{"no numbers", "no units here", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ex.Extract(tt.text))
		})
	}
}

func TestExtractor_Words(t *testing.T) {
	t.Parallel()
	ex, p := english(t)

	tests := []struct {
		text  string
		texts []string
		value []string
	}{
		{"twenty five dollars", []string{"twenty five"}, []string{"25"}},
		{"one hundred and five", []string{"one hundred and five"}, []string{"105"}},
		{"two thousand twenty", []string{"two thousand twenty"}, []string{"2020"}},
		{"five twenty", []string{"five", "twenty"}, []string{"5", "20"}},
		{"twenty-two", []string{"twenty-two"}, []string{"22"}},
		{"hundred", nil, nil},
		{"someone", nil, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got := ex.Extract(tt.text)
			require.Len(t, got, len(tt.texts))
			for i, r := range got {
				assert.Equal(t, tt.texts[i], r.Text)
				v, ok := p.Parse(r)
				require.True(t, ok)
				assert.Equal(t, tt.value[i], v.Text)
			}
		})
	}
}

func TestParser_Separators(t *testing.T) {
	t.Parallel()
	opts := number.Options{DecimalSeparator: ",", GroupSeparator: "."}
	ex, err := number.NewExtractor(opts)
	require.NoError(t, err)
	p, err := number.NewParser(opts)
	require.NoError(t, err)

	got := ex.Extract("cuesta 1.234,5 euros")
	require.Len(t, got, 1)
	assert.Equal(t, "1.234,5", got[0].Text)
	assert.Equal(t, number.Double, got[0].Kind)

	v, ok := p.Parse(got[0])
	require.True(t, ok)
	assert.Equal(t, 1234.5, v.Number)
	assert.Equal(t, "1234.5", v.Text)
}

func TestParser_Invalid(t *testing.T) {
	t.Parallel()
	_, p := english(t)

	_, ok := p.Parse(number.Result{Text: ""})
	assert.False(t, ok)
	_, ok = p.Parse(number.Result{Text: "apples"})
	assert.False(t, ok)
	_, ok = p.Parse(number.Result{Text: "1/0"})
	assert.False(t, ok)
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()
	_, err := number.NewExtractor(number.Options{})
	assert.ErrorIs(t, err, number.ErrNoDecimalSeparator)

	_, err = number.NewParser(number.Options{DecimalSeparator: ".", GroupSeparator: "."})
	assert.ErrorIs(t, err, number.ErrSameSeparators)
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "integer", number.Integer.String())
	assert.Equal(t, "double", number.Double.String())
	assert.Equal(t, "fraction", number.Fraction.String())
}
